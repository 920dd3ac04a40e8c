package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:120;uniqueIndex;not null" json:"name"`
	Email        string    `gorm:"size:190;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

const (
	ItemStatusAvailable = "available"
	ItemStatusSold      = "sold"
)

type Item struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	Title       string    `gorm:"size:190;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Price       float64   `gorm:"not null" json:"price"`
	Category    string    `gorm:"size:60;not null" json:"category"`
	ImageURL    string    `gorm:"size:500" json:"image_url"`
	Status      string    `gorm:"size:20;not null;default:available" json:"status"`
	ListedAt    time.Time `gorm:"autoCreateTime;index" json:"listed_at"`
}

// Conversation binds exactly two users, optionally around one item.
// The pair is stored canonically (UserAID < UserBID) and the composite
// unique index is what serializes concurrent first-contact creates.
// ItemID 0 means "no item context" and is still part of the key, so a
// pair's item-less thread stays distinct from their per-item threads.
type Conversation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserAID   uint      `gorm:"not null;uniqueIndex:idx_conversation_key,priority:1" json:"user_a_id"`
	UserBID   uint      `gorm:"not null;uniqueIndex:idx_conversation_key,priority:2" json:"user_b_id"`
	ItemID    uint      `gorm:"not null;default:0;uniqueIndex:idx_conversation_key,priority:3" json:"item_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PeerOf returns the other participant of the conversation, or false when
// userID is not a participant at all.
func (c *Conversation) PeerOf(userID uint) (uint, bool) {
	switch userID {
	case c.UserAID:
		return c.UserBID, true
	case c.UserBID:
		return c.UserAID, true
	}
	return 0, false
}

// Message rows are append-only; IsRead is the only mutable column and it
// only ever goes false -> true.
type Message struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ConversationID uint      `gorm:"index;not null" json:"conversation_id"`
	SenderID       uint      `gorm:"index;not null" json:"sender_id"`
	ReceiverID     uint      `gorm:"index;not null" json:"receiver_id"`
	Body           string    `gorm:"type:text;not null" json:"body"`
	SentAt         time.Time `gorm:"index;not null" json:"sent_at"`
	IsRead         bool      `gorm:"not null;default:false" json:"is_read"`
}
