package models

import "time"

// Item is a shared note with an optional expiration.
type Item struct {
	ID             int        `json:"id"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	ShortURL       string     `json:"short_url"` // derived from base URL + id, never persisted
	UserID         int        `json:"user_id"`
	ExpirationDate *time.Time `json:"expiration_date"` // nil means the item never expires
	OwnerUsername  string     `json:"owner_username"`
}
