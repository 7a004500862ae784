package repository

import (
	"context"
	"database/sql"
	"time"

	"noteshare/internal/models"
	"noteshare/internal/repository/db"
)

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.User, error)
}

// Items persists notes and answers the expiration-filtered queries.
type Items interface {
	Create(ctx context.Context, item models.Item) (int, error)
	GetByID(ctx context.Context, id int) (*models.Item, error)
	ListActive(ctx context.Context, now time.Time, skip, limit int) ([]models.Item, error)
	DeleteOwned(ctx context.Context, id, ownerID int) (bool, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type Repository struct {
	Auth  Authorization
	Items Items
}

func NewRepository(sqlDB *sql.DB) *Repository {
	return &Repository{
		Auth:  NewUserRepository(sqlDB),
		Items: NewItemRepository(sqlDB),
	}
}

// InitDB re-exports the db bootstrap so callers wire everything through repository.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}
