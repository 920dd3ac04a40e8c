package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/20groyer/Sattler-Marketplace-Final-Project/internal/models"
)

// ConversationSummary is one row of a user's conversation feed: the peer,
// the optional item, the newest message and the viewer's unread count.
type ConversationSummary struct {
	ConversationID  uint       `json:"conversation_id"`
	PeerID          uint       `json:"peer_id"`
	PeerName        string     `json:"peer_name"`
	ItemID          uint       `json:"item_id,omitempty"`
	ItemTitle       string     `json:"item_title,omitempty"`
	LastMessageBody string     `json:"last_message_body,omitempty"`
	LastMessageAt   *time.Time `json:"last_message_at,omitempty"`
	UnreadCount     int64      `json:"unread_count"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ListConversations builds the feed for a user, most recently active first.
// Read-only: it never touches read state. A conversation whose item was
// deleted keeps its item_id and simply shows no title.
func (s *Service) ListConversations(ctx context.Context, userID uint) ([]ConversationSummary, error) {
	var convs []models.Conversation
	err := s.db.WithContext(ctx).
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Order("updated_at DESC").
		Find(&convs).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list conversations: %v", ErrStoreUnavailable, err)
	}
	if len(convs) == 0 {
		return []ConversationSummary{}, nil
	}

	peerIDs := make([]uint, 0, len(convs))
	itemIDs := make([]uint, 0, len(convs))
	for _, c := range convs {
		peer, _ := c.PeerOf(userID)
		peerIDs = append(peerIDs, peer)
		if c.ItemID != 0 {
			itemIDs = append(itemIDs, c.ItemID)
		}
	}

	peerNames, err := s.userNames(ctx, peerIDs)
	if err != nil {
		return nil, err
	}
	itemTitles, err := s.itemTitles(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	out := make([]ConversationSummary, 0, len(convs))
	for _, c := range convs {
		peer, _ := c.PeerOf(userID)

		row := ConversationSummary{
			ConversationID: c.ID,
			PeerID:         peer,
			PeerName:       peerNames[peer],
			ItemID:         c.ItemID,
			ItemTitle:      itemTitles[c.ItemID],
			UpdatedAt:      c.UpdatedAt,
		}

		last, err := s.lastMessage(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		if last != nil {
			row.LastMessageBody = last.Body
			t := last.SentAt
			row.LastMessageAt = &t
		}

		unread, err := s.UnreadCountInConversation(ctx, c.ID, userID)
		if err != nil {
			return nil, err
		}
		row.UnreadCount = unread

		out = append(out, row)
	}
	return out, nil
}

func (s *Service) lastMessage(ctx context.Context, conversationID uint) (*models.Message, error) {
	var msg models.Message
	err := s.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("sent_at DESC, id DESC").
		First(&msg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: last message: %v", ErrStoreUnavailable, err)
	}
	return &msg, nil
}

func (s *Service) userNames(ctx context.Context, ids []uint) (map[uint]string, error) {
	names := map[uint]string{}
	if len(ids) == 0 {
		return names, nil
	}
	var users []models.User
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("%w: load users: %v", ErrStoreUnavailable, err)
	}
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names, nil
}

func (s *Service) itemTitles(ctx context.Context, ids []uint) (map[uint]string, error) {
	titles := map[uint]string{}
	if len(ids) == 0 {
		return titles, nil
	}
	var items []models.Item
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("%w: load items: %v", ErrStoreUnavailable, err)
	}
	for _, it := range items {
		titles[it.ID] = it.Title
	}
	return titles, nil
}
