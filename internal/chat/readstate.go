package chat

import (
	"context"
	"fmt"

	"github.com/20groyer/Sattler-Marketplace-Final-Project/internal/models"
)

// MarkConversationRead flips every unread message addressed to viewerID in
// the conversation to read, returning how many were flipped. It only ever
// sets the flag, so read state stays a one-way transition, and running it
// with nothing unread is a no-op.
func (s *Service) MarkConversationRead(ctx context.Context, conversationID, viewerID uint) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("conversation_id = ? AND receiver_id = ? AND is_read = ?", conversationID, viewerID, false).
		Update("is_read", true)
	if res.Error != nil {
		return 0, fmt.Errorf("%w: mark read: %v", ErrStoreUnavailable, res.Error)
	}
	return res.RowsAffected, nil
}

// UnreadCount counts unread messages addressed to the user across all
// conversations. Backs the navigation badge.
func (s *Service) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("receiver_id = ? AND is_read = ?", userID, false).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("%w: unread count: %v", ErrStoreUnavailable, err)
	}
	return n, nil
}

// UnreadCountInConversation is UnreadCount scoped to one conversation.
func (s *Service) UnreadCountInConversation(ctx context.Context, conversationID, viewerID uint) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("conversation_id = ? AND receiver_id = ? AND is_read = ?", conversationID, viewerID, false).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("%w: unread count: %v", ErrStoreUnavailable, err)
	}
	return n, nil
}
