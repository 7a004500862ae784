package service

import (
	"context"
	"time"

	"noteshare/internal/logger"
	"noteshare/internal/models"
	"noteshare/internal/repository"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (string, error)
	RevokeToken(accessToken string)
	Authenticate(accessToken string) (*models.User, error)
}

// Items exposes note lifecycle operations. Listing is public; create and
// delete are scoped to the authenticated owner.
type Items interface {
	Create(ctx context.Context, owner *models.User, in ItemInput) (models.Item, error)
	List(ctx context.Context, skip, limit int) ([]models.Item, error)
	Get(ctx context.Context, id int) (models.Item, error)
	Delete(ctx context.Context, id, ownerID int) error
}

// Sweeper runs the background loop that deletes expired items.
// Stop via context cancellation in main() for graceful shutdown.
type Sweeper interface {
	Run(ctx context.Context, interval time.Duration)
}

// Config carries the process-wide knobs the services need.
type Config struct {
	SigningKey string        // JWT HMAC secret, fixed for process lifetime
	TokenTTL   time.Duration // access token lifetime; zero means the default
	BaseURL    string        // prefix for derived item short URLs
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Authorization
	Items
	Sweeper
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, cfg Config, log *logger.Logger) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Auth, cfg.SigningKey, cfg.TokenTTL, NewRevocationSet()),
		Items:         NewItemService(repos.Items, cfg.BaseURL),
		Sweeper:       NewSweeperService(repos.Items, log),
	}
}
