package chat

import (
	"context"
	"testing"

	"github.com/20groyer/Sattler-Marketplace-Final-Project/internal/models"
)

func TestListConversationsOrdersByRecency(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	createUser(t, db, 1, "ana")
	createUser(t, db, 2, "bruno")
	createUser(t, db, 3, "carla")

	older, err := svc.GetOrCreateConversation(ctx, 1, 2, 0)
	if err != nil {
		t.Fatalf("GetOrCreateConversation failed: %v", err)
	}
	newer, err := svc.GetOrCreateConversation(ctx, 1, 3, 0)
	if err != nil {
		t.Fatalf("GetOrCreateConversation failed: %v", err)
	}

	if _, err := svc.SendMessage(ctx, older.ID, 2, 1, "first"); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if _, err := svc.SendMessage(ctx, newer.ID, 3, 1, "second"); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	feed, err := svc.ListConversations(ctx, 1)
	if err != nil {
		t.Fatalf("ListConversations failed: %v", err)
	}
	if len(feed) != 2 {
		t.Fatalf("Expected 2 feed rows, got %d", len(feed))
	}
	if feed[0].ConversationID != newer.ID || feed[1].ConversationID != older.ID {
		t.Errorf("Expected order [%d, %d], got [%d, %d]",
			newer.ID, older.ID, feed[0].ConversationID, feed[1].ConversationID)
	}

	// New activity in the older conversation moves it to the front.
	if _, err := svc.SendMessage(ctx, older.ID, 1, 2, "bump"); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	feed, err = svc.ListConversations(ctx, 1)
	if err != nil {
		t.Fatalf("ListConversations failed: %v", err)
	}
	if feed[0].ConversationID != older.ID {
		t.Errorf("Expected conversation %d first after new activity, got %d", older.ID, feed[0].ConversationID)
	}
}

func TestListConversationsDoesNotTouchReadState(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	createUser(t, db, 1, "ana")
	createUser(t, db, 2, "bruno")

	conv, err := svc.GetOrCreateConversation(ctx, 1, 2, 0)
	if err != nil {
		t.Fatalf("GetOrCreateConversation failed: %v", err)
	}
	if _, err := svc.SendMessage(ctx, conv.ID, 2, 1, "hello"); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		feed, err := svc.ListConversations(ctx, 1)
		if err != nil {
			t.Fatalf("ListConversations failed: %v", err)
		}
		if feed[0].UnreadCount != 1 {
			t.Errorf("Pass %d: expected unread to stay 1, got %d", i, feed[0].UnreadCount)
		}
	}
}

func TestListConversationsItemTitles(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	createUser(t, db, 1, "ana")
	createUser(t, db, 2, "bruno")

	bike := models.Item{UserID: 2, Title: "City bike", Description: "barely used", Price: 120, Category: "Sports"}
	if err := db.Create(&bike).Error; err != nil {
		t.Fatalf("Failed to create item: %v", err)
	}

	conv, err := svc.GetOrCreateConversation(ctx, 1, 2, bike.ID)
	if err != nil {
		t.Fatalf("GetOrCreateConversation failed: %v", err)
	}
	if _, err := svc.SendMessage(ctx, conv.ID, 1, 2, "is it still available?"); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	feed, err := svc.ListConversations(ctx, 1)
	if err != nil {
		t.Fatalf("ListConversations failed: %v", err)
	}
	if feed[0].ItemID != bike.ID || feed[0].ItemTitle != "City bike" {
		t.Errorf("Expected item (%d, City bike), got (%d, %s)", bike.ID, feed[0].ItemID, feed[0].ItemTitle)
	}

	// The listing disappears; the conversation keeps its reference and the
	// feed just shows no title.
	if err := db.Delete(&models.Item{}, bike.ID).Error; err != nil {
		t.Fatalf("Failed to delete item: %v", err)
	}
	feed, err = svc.ListConversations(ctx, 1)
	if err != nil {
		t.Fatalf("ListConversations failed: %v", err)
	}
	if feed[0].ItemID != bike.ID {
		t.Errorf("Expected dangling item id %d to survive, got %d", bike.ID, feed[0].ItemID)
	}
	if feed[0].ItemTitle != "" {
		t.Errorf("Expected empty title for deleted item, got %q", feed[0].ItemTitle)
	}
}

func TestListConversationsEmptyConversationHasNoLastMessage(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	createUser(t, db, 1, "ana")
	createUser(t, db, 2, "bruno")

	if _, err := svc.GetOrCreateConversation(ctx, 1, 2, 0); err != nil {
		t.Fatalf("GetOrCreateConversation failed: %v", err)
	}

	feed, err := svc.ListConversations(ctx, 1)
	if err != nil {
		t.Fatalf("ListConversations failed: %v", err)
	}
	if len(feed) != 1 {
		t.Fatalf("Expected 1 feed row, got %d", len(feed))
	}
	if feed[0].LastMessageBody != "" || feed[0].LastMessageAt != nil {
		t.Errorf("Expected no last message, got %q at %v", feed[0].LastMessageBody, feed[0].LastMessageAt)
	}
	if feed[0].UnreadCount != 0 {
		t.Errorf("Expected 0 unread, got %d", feed[0].UnreadCount)
	}
}
