package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/20groyer/Sattler-Marketplace-Final-Project/internal/chat"
	"github.com/20groyer/Sattler-Marketplace-Final-Project/internal/http/middleware"
	"github.com/20groyer/Sattler-Marketplace-Final-Project/internal/models"
	"github.com/20groyer/Sattler-Marketplace-Final-Project/internal/ws"
)

type ChatHandler struct {
	DB   *gorm.DB
	Chat *chat.Service
	Hub  *ws.Hub
}

type openConversationReq struct {
	OtherUserID uint `json:"other_user_id" binding:"required"`
	ItemID      uint `json:"item_id"`
}

// OpenConversation resolves (or lazily creates) the single conversation for
// the caller, the other user and the optional item.
func (h *ChatHandler) OpenConversation(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var req openConversationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body", "error": err.Error()})
		return
	}

	var other models.User
	if err := h.DB.First(&other, req.OtherUserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load user"})
		return
	}

	conv, err := h.Chat.GetOrCreateConversation(c.Request.Context(), userID, req.OtherUserID, req.ItemID)
	if err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversation_id": conv.ID})
}

// ListConversations returns the caller's feed, most recently active first.
// Read-only; viewing the list does not mark anything read.
func (h *ChatHandler) ListConversations(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	feed, err := h.Chat.ListConversations(c.Request.Context(), userID)
	if err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": feed})
}

// ListMessages renders the chat view: the caller's unread messages in the
// conversation flip to read, then the full log comes back oldest first.
func (h *ChatHandler) ListMessages(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	conv, ok := h.participantConversation(c, userID)
	if !ok {
		return
	}

	marked, err := h.Chat.MarkConversationRead(c.Request.Context(), conv.ID, userID)
	if err != nil {
		respondChatError(c, err)
		return
	}
	if marked > 0 {
		// Other devices of the same user can drop their badge.
		h.Hub.BroadcastToUsers([]uint{userID}, ws.Event{
			Type: "conversation:read",
			Data: gin.H{"conversation_id": conv.ID},
		})
	}

	msgs, err := h.Chat.ListMessages(c.Request.Context(), conv.ID)
	if err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": msgs})
}

type sendMessageReq struct {
	Body string `json:"body" binding:"required"`
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	conv, ok := h.participantConversation(c, userID)
	if !ok {
		return
	}

	var req sendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body", "error": err.Error()})
		return
	}

	receiverID, _ := conv.PeerOf(userID)
	msg, err := h.Chat.SendMessage(c.Request.Context(), conv.ID, userID, receiverID, req.Body)
	if err != nil {
		respondChatError(c, err)
		return
	}

	h.Hub.BroadcastToUsers([]uint{msg.SenderID, msg.ReceiverID}, ws.Event{
		Type: "message:new",
		Data: msg,
	})

	c.JSON(http.StatusCreated, gin.H{"data": msg})
}

// UnreadCount backs the navigation badge: unread messages addressed to the
// caller across all conversations.
func (h *ChatHandler) UnreadCount(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	n, err := h.Chat.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread_count": n})
}

// participantConversation loads the :id conversation and enforces that the
// caller is one of its two participants. On failure the response has already
// been written.
func (h *ChatHandler) participantConversation(c *gin.Context, userID uint) (*models.Conversation, bool) {
	convID64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || convID64 == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid conversation id"})
		return nil, false
	}

	conv, err := h.Chat.GetConversation(c.Request.Context(), uint(convID64))
	if err != nil {
		respondChatError(c, err)
		return nil, false
	}

	if _, ok := conv.PeerOf(userID); !ok {
		c.JSON(http.StatusForbidden, gin.H{"message": "not a participant of this conversation"})
		return nil, false
	}

	return conv, true
}

// respondChatError maps the core's error taxonomy to HTTP statuses. Store
// failures stay 500, they are never disguised as not-found.
func respondChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, chat.ErrSelfConversation):
		c.JSON(http.StatusBadRequest, gin.H{"message": "you cannot start a conversation with yourself"})
	case errors.Is(err, chat.ErrEmptyBody):
		c.JSON(http.StatusBadRequest, gin.H{"message": "message cannot be empty"})
	case errors.Is(err, chat.ErrNotParticipant):
		c.JSON(http.StatusForbidden, gin.H{"message": "not a participant of this conversation"})
	case errors.Is(err, chat.ErrConversationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "conversation not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "temporary storage problem, please try again"})
	}
}
