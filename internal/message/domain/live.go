package domain

import "time"

// ChangeKind what happened to the message table
type ChangeKind string

const (
	// ChangeInsert new message
	ChangeInsert ChangeKind = "insert"
	// ChangeUpdate read flag changed
	ChangeUpdate ChangeKind = "update"
)

// ChangeEvent pure invalidation signal, payload is informational only
type ChangeEvent struct {
	Kind      ChangeKind `json:"kind"`
	MessageID string     `json:"message_id,omitempty"`
	At        time.Time  `json:"at"`
}

// ChannelPrefix redis channel of a member
const ChannelPrefix = "lostfound:messages:"

// ChannelOf redis channel name for userID
func ChannelOf(userID string) string {
	return ChannelPrefix + userID
}

// Action websocket action
type Action string

const (
	// ActionConversations full conversation snapshot
	ActionConversations Action = "conversations"
	// ActionUnread unread counter
	ActionUnread Action = "unread_count"
	// ActionSendMessage websocket action send_message
	ActionSendMessage Action = "send_message"
	// ActionMarkRead websocket action mark_read
	ActionMarkRead Action = "mark_read"
	// ActionThread websocket action get_thread
	ActionThread Action = "get_thread"
	// ActionError error push
	ActionError Action = "error"
)

// LiveUpdate server push
type LiveUpdate struct {
	Action        Action         `json:"action"`
	Success       bool           `json:"success"`
	Conversations []Conversation `json:"conversations,omitempty"`
	UnreadCount   *int           `json:"unread_count,omitempty"`
	Messages      []Message      `json:"messages,omitempty"`
	Message       *Message       `json:"message,omitempty"`
	Updated       *int64         `json:"updated,omitempty"`
	Error         string         `json:"error,omitempty"`
}

// WSRequest websocket Request
type WSRequest struct {
	Action     string   `json:"action"`
	ReceiverID string   `json:"receiver_id"`
	OtherID    string   `json:"other_user_id"`
	ItemID     *string  `json:"item_id"`
	Content    string   `json:"content"`
	MessageIDs []string `json:"message_ids"`
}
