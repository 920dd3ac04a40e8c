package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/20groyer/Sattler-Marketplace-Final-Project/internal/http/middleware"
	"github.com/20groyer/Sattler-Marketplace-Final-Project/internal/models"
)

type ItemHandler struct {
	DB *gorm.DB
}

type createItemReq struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Price       float64 `json:"price" binding:"required"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"image_url"`
}

func (h *ItemHandler) CreateItem(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var req createItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body", "error": err.Error()})
		return
	}
	if req.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "price must be positive"})
		return
	}
	if req.Category == "" {
		req.Category = "Other"
	}

	item := models.Item{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Status:      models.ItemStatusAvailable,
	}
	if err := h.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list item"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": item})
}

// ListItems returns available items from other sellers, newest first.
func (h *ItemHandler) ListItems(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var items []models.Item
	err := h.DB.
		Where("status = ? AND user_id != ?", models.ItemStatusAvailable, userID).
		Order("listed_at DESC").
		Find(&items).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

// ListMyItems returns the caller's own listings, newest first.
func (h *ItemHandler) ListMyItems(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var items []models.Item
	err := h.DB.
		Where("user_id = ?", userID).
		Order("listed_at DESC").
		Find(&items).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

// DeleteItem removes a listing owned by the caller. Conversations that
// reference the item keep their item_id; their feed rows just lose the title.
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	itemID64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || itemID64 == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid item id"})
		return
	}

	res := h.DB.Where("id = ? AND user_id = ?", uint(itemID64), userID).Delete(&models.Item{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete item"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "item not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "item deleted"})
}
