package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/20groyer/Sattler-Marketplace-Final-Project/internal/models"
)

// GetOrCreateConversation resolves the single conversation for the given user
// pair and optional item, creating it on first contact. Two concurrent first
// contacts may both miss the lookup and both insert; the unique index on the
// canonical key lets only one through, and the loser re-reads the winner's
// row. A second miss after the conflict is a store fault, not a race, so
// there is no retry loop.
func (s *Service) GetOrCreateConversation(ctx context.Context, userID, otherID, itemID uint) (*models.Conversation, error) {
	key, err := CanonicalKey(userID, otherID, itemID)
	if err != nil {
		return nil, err
	}

	conv, err := s.findByKey(ctx, key)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: lookup: %v", ErrStoreUnavailable, err)
	}

	now := time.Now().UTC()
	fresh := models.Conversation{
		UserAID:   key.UserAID,
		UserBID:   key.UserBID,
		ItemID:    key.ItemID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	createErr := s.db.WithContext(ctx).Create(&fresh).Error
	if createErr == nil {
		return &fresh, nil
	}
	if !errors.Is(createErr, gorm.ErrDuplicatedKey) {
		return nil, fmt.Errorf("%w: insert: %v", ErrStoreUnavailable, createErr)
	}

	// Lost the first-contact race; the surviving row must be there now.
	conv, err = s.findByKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: re-query after conflict: %v", ErrStoreUnavailable, err)
	}
	return conv, nil
}

// GetConversation loads a conversation by id.
func (s *Service) GetConversation(ctx context.Context, id uint) (*models.Conversation, error) {
	var conv models.Conversation
	err := s.db.WithContext(ctx).First(&conv, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return &conv, nil
}

func (s *Service) findByKey(ctx context.Context, key ConversationKey) (*models.Conversation, error) {
	var conv models.Conversation
	err := s.db.WithContext(ctx).
		Where("user_a_id = ? AND user_b_id = ? AND item_id = ?", key.UserAID, key.UserBID, key.ItemID).
		First(&conv).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// touchConversation bumps updated_at to exactly the given time.
// UpdateColumn bypasses gorm's own timestamp hook so the bump matches the
// message's sent_at.
func (s *Service) touchConversation(ctx context.Context, id uint, at time.Time) error {
	return s.db.WithContext(ctx).
		Model(&models.Conversation{}).
		Where("id = ?", id).
		UpdateColumn("updated_at", at).Error
}
