package domain

import (
	"sort"
	"time"

	memberdomain "campus_lost_found/internal/member/domain"
)

// Conversation 由訊息聚合而成, 不落地
type Conversation struct {
	OtherUserID   string    `json:"other_user_id"`
	OtherUserName string    `json:"other_user_name"`
	ItemID        *string   `json:"item_id"`
	ItemTitle     *string   `json:"item_title"`
	LastMessage   string    `json:"last_message"`
	LastMessageAt time.Time `json:"last_message_at"`
	UnreadCount   int       `json:"unread_count"`
}

// noItem grouping value of messages without item, never a valid uuid
const noItem = "\x00no-item"

// ConversationKey grouping key (counterpart, item or none)
type ConversationKey struct {
	OtherUserID string
	Item        string
}

// KeyOf build the grouping key
func KeyOf(otherUserID string, itemID *string) ConversationKey {
	if itemID == nil || *itemID == "" {
		return ConversationKey{OtherUserID: otherUserID, Item: noItem}
	}
	return ConversationKey{OtherUserID: otherUserID, Item: *itemID}
}

// Key grouping key of the conversation
func (c Conversation) Key() ConversationKey {
	return KeyOf(c.OtherUserID, c.ItemID)
}

// AggregateConversations group messages touching viewerID into conversations.
// Each group keeps the newest message by CreatedAt regardless of input order,
// on equal timestamps the first seen wins. Output is newest first.
func AggregateConversations(viewerID string, msgs []Message) []Conversation {
	groups := make(map[ConversationKey]*Conversation)

	for _, m := range msgs {
		if !m.Involves(viewerID) {
			continue
		}
		other := m.Counterpart(viewerID)
		key := KeyOf(other, m.ItemID)

		conv, ok := groups[key]
		if !ok {
			conv = &Conversation{
				OtherUserID:   other,
				OtherUserName: other,
				ItemID:        cloneStr(normalizeItem(m.ItemID)),
				ItemTitle:     cloneStr(m.ItemTitle),
				LastMessage:   m.Content,
				LastMessageAt: m.CreatedAt,
			}
			groups[key] = conv
		} else if m.CreatedAt.After(conv.LastMessageAt) {
			conv.LastMessage = m.Content
			conv.LastMessageAt = m.CreatedAt
		}
		if conv.ItemTitle == nil && m.ItemTitle != nil {
			conv.ItemTitle = cloneStr(m.ItemTitle)
		}

		if m.IsUnreadFor(viewerID) {
			conv.UnreadCount++
		}
	}

	out := make([]Conversation, 0, len(groups))
	for _, c := range groups {
		out = append(out, *c)
	}
	SortConversations(out)
	return out
}

// SortConversations last_message_at desc, tie by counterpart then item
func SortConversations(convs []Conversation) {
	sort.Slice(convs, func(i, j int) bool {
		a, b := convs[i], convs[j]
		if !a.LastMessageAt.Equal(b.LastMessageAt) {
			return a.LastMessageAt.After(b.LastMessageAt)
		}
		if a.OtherUserID != b.OtherUserID {
			return a.OtherUserID < b.OtherUserID
		}
		return a.Key().Item < b.Key().Item
	})
}

// CounterpartIDs distinct counterpart ids, sorted
func CounterpartIDs(convs []Conversation) []string {
	seen := make(map[string]struct{}, len(convs))
	ids := make([]string, 0, len(convs))
	for _, c := range convs {
		if _, ok := seen[c.OtherUserID]; ok {
			continue
		}
		seen[c.OtherUserID] = struct{}{}
		ids = append(ids, c.OtherUserID)
	}
	sort.Strings(ids)
	return ids
}

// ApplyDisplayNames overlay full name → email → id
func ApplyDisplayNames(convs []Conversation, profiles []memberdomain.Profile) {
	byID := make(map[string]memberdomain.Profile, len(profiles))
	for _, p := range profiles {
		byID[p.UserID] = p
	}
	for i := range convs {
		id := convs[i].OtherUserID
		if p, ok := byID[id]; ok {
			convs[i].OtherUserName = memberdomain.DisplayName(p.FullName, p.Email, id)
			continue
		}
		convs[i].OtherUserName = id
	}
}

func normalizeItem(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	return id
}

func cloneStr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
