package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"noteshare/internal/models"
	"noteshare/internal/repository"
)

// Listing defaults when the caller leaves skip/limit unset.
const (
	DefaultListLimit = 10
	MaxListLimit     = 100
)

// ItemInput is the caller-supplied part of a new item.
type ItemInput struct {
	Title          string
	Content        string
	ExpirationDate *time.Time // nil means never expires
}

// ItemService owns note lifecycle logic and derives the shareable URL.
type ItemService struct {
	itemRepo repository.Items
	baseURL  string
}

func NewItemService(itemRepo repository.Items, baseURL string) *ItemService {
	return &ItemService{
		itemRepo: itemRepo,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

// Create persists a new item owned by owner and returns the full
// representation including the derived short URL and the owner's username.
func (s *ItemService) Create(ctx context.Context, owner *models.User, in ItemInput) (models.Item, error) {
	item := models.Item{
		Title:          in.Title,
		Content:        in.Content,
		UserID:         owner.ID,
		ExpirationDate: in.ExpirationDate,
	}
	id, err := s.itemRepo.Create(ctx, item)
	if err != nil {
		return models.Item{}, err
	}
	item.ID = id
	item.OwnerUsername = owner.Username
	item.ShortURL = s.shortURL(id)
	return item, nil
}

// List returns non-expired items in insertion order. No ownership filter:
// the listing is public.
func (s *ItemService) List(ctx context.Context, skip, limit int) ([]models.Item, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	items, err := s.itemRepo.ListActive(ctx, time.Now().UTC(), skip, limit)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].ShortURL = s.shortURL(items[i].ID)
	}
	return items, nil
}

// Get fetches an item by id. Expired items are still returned here: only the
// public listing hides them, until the sweeper removes the row.
func (s *ItemService) Get(ctx context.Context, id int) (models.Item, error) {
	it, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return models.Item{}, err
	}
	if it == nil {
		return models.Item{}, ErrNotFound
	}
	it.ShortURL = s.shortURL(it.ID)
	return *it, nil
}

// Delete removes the item when it belongs to ownerID. A missing item and an
// item owned by somebody else both come back as ErrNotFound, so callers
// cannot probe for existence.
func (s *ItemService) Delete(ctx context.Context, id, ownerID int) error {
	deleted, err := s.itemRepo.DeleteOwned(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// shortURL computes the shareable URL from the stored id and the configured
// base URL. Never persisted, so a base URL change cannot go stale.
func (s *ItemService) shortURL(id int) string {
	return fmt.Sprintf("%s/%d", s.baseURL, id)
}
