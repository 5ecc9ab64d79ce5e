package domain

import (
	"time"
)

// Message 一則訊息, 建立後只有 IsRead 會由 false 變 true
type Message struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	SenderID   string    `gorm:"type:text;index;not null" json:"sender_id"`
	ReceiverID string    `gorm:"type:text;index;not null" json:"receiver_id"`
	ItemID     *string   `gorm:"type:uuid;index" json:"item_id"`
	Content    string    `gorm:"not null" json:"content"`
	IsRead     bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`

	// items.title from LEFT JOIN, read only
	ItemTitle *string `gorm:"->;-:migration" json:"item_title,omitempty"`
}

// Counterpart the other party relative to viewerID
func (m Message) Counterpart(viewerID string) string {
	if m.SenderID == viewerID {
		return m.ReceiverID
	}
	return m.SenderID
}

// Involves viewer is sender or receiver
func (m Message) Involves(viewerID string) bool {
	return m.SenderID == viewerID || m.ReceiverID == viewerID
}

// IsUnreadFor only the receiver side counts
func (m Message) IsUnreadFor(viewerID string) bool {
	return m.ReceiverID == viewerID && !m.IsRead
}

// SendMessageReq usecase send message request
type SendMessageReq struct {
	ReceiverID string  `json:"receiver_id"`
	Content    string  `json:"content"`
	ItemID     *string `json:"item_id"`
}

// MarkReadReq usecase mark read request
type MarkReadReq struct {
	MessageIDs []string `json:"message_ids"`
}

// MaxContentLength 訊息長度上限 (rune)
const MaxContentLength = 2000
