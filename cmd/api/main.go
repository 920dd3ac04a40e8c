package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/20groyer/Sattler-Marketplace-Final-Project/internal/chat"
	"github.com/20groyer/Sattler-Marketplace-Final-Project/internal/config"
	"github.com/20groyer/Sattler-Marketplace-Final-Project/internal/database"
	"github.com/20groyer/Sattler-Marketplace-Final-Project/internal/http/handlers"
	"github.com/20groyer/Sattler-Marketplace-Final-Project/internal/http/middleware"
	"github.com/20groyer/Sattler-Marketplace-Final-Project/internal/models"
	"github.com/20groyer/Sattler-Marketplace-Final-Project/internal/ws"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.DBDSN == "" || cfg.JWTSecret == "" {
		log.Fatal("DB_DSN and JWT_SECRET must be set")
	}

	db, err := database.Connect(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatal("failed to connect db:", err)
	}

	// Auto-migrate tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Item{},
		&models.Conversation{},
		&models.Message{},
	); err != nil {
		log.Fatal("failed to migrate:", err)
	}

	hub := ws.NewHub()
	chatSvc := chat.NewService(db)

	r := gin.Default()

	// Auth
	authH := &handlers.AuthHandler{DB: db, JWTSecret: cfg.JWTSecret}
	r.POST("/api/v1/auth/register", authH.Register)
	r.POST("/api/v1/auth/login", authH.Login)

	// WebSocket endpoint
	wsH := &handlers.WSHandler{
		Hub:                  hub,
		JWTSecret:            cfg.JWTSecret,
		WSInsecureSkipVerify: cfg.WSInsecureSkipVerify,
	}
	r.GET("/ws", wsH.Handle)

	// Protected routes
	authed := r.Group("/api/v1")
	authed.Use(middleware.AuthMiddleware(cfg.JWTSecret))

	itemH := &handlers.ItemHandler{DB: db}
	authed.GET("/items", itemH.ListItems)
	authed.POST("/items", itemH.CreateItem)
	authed.GET("/items/mine", itemH.ListMyItems)
	authed.DELETE("/items/:id", itemH.DeleteItem)

	chatH := &handlers.ChatHandler{DB: db, Chat: chatSvc, Hub: hub}
	authed.POST("/conversations", chatH.OpenConversation)
	authed.GET("/conversations", chatH.ListConversations)
	authed.GET("/conversations/:id/messages", chatH.ListMessages)
	authed.POST("/conversations/:id/messages", chatH.SendMessage)
	authed.GET("/me/unread", chatH.UnreadCount)

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Println("listening on", addr)
	log.Fatal(r.Run(addr))
}
