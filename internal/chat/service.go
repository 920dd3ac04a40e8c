package chat

import (
	"log/slog"

	"gorm.io/gorm"
)

// Service is the conversation and message core. All coordination goes through
// the store; the service itself holds no mutable state and is safe for
// concurrent use.
type Service struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		db:     db,
		logger: slog.Default(),
	}
}
