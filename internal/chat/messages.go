package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/20groyer/Sattler-Marketplace-Final-Project/internal/models"
)

// SendMessage appends a message to the conversation and bumps its activity
// time with the same timestamp. The body is trimmed first and must not end up
// empty; sender and receiver must be exactly the conversation's two
// participants. If the activity bump fails after a successful insert the
// message stands, a delivered message is not taken back over bookkeeping.
func (s *Service) SendMessage(ctx context.Context, conversationID, senderID, receiverID uint, body string) (*models.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyBody
	}

	conv, err := s.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	peer, ok := conv.PeerOf(senderID)
	if !ok || peer != receiverID {
		return nil, ErrNotParticipant
	}

	msg := models.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Body:           body,
		SentAt:         time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&msg).Error; err != nil {
		return nil, fmt.Errorf("%w: insert message: %v", ErrStoreUnavailable, err)
	}

	if err := s.touchConversation(ctx, conv.ID, msg.SentAt); err != nil {
		s.logger.Warn("failed to bump conversation activity",
			"conversation_id", conv.ID, "message_id", msg.ID, "error", err)
	}

	return &msg, nil
}

// ListMessages returns the conversation's full log, oldest first. Ties on
// sent_at are broken by insertion id so the order is total and stable.
func (s *Service) ListMessages(ctx context.Context, conversationID uint) ([]models.Message, error) {
	var msgs []models.Message
	err := s.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("sent_at ASC, id ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list messages: %v", ErrStoreUnavailable, err)
	}
	return msgs, nil
}
