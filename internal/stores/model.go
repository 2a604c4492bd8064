package stores

import "time"

// Store is a managed storefront. A store belongs to at most one owner
// identity; owner_id stays null until an admin assigns one. Stores are never
// hard-deleted.
type Store struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	URL       *string   `json:"url,omitempty"`
	Category  *string   `json:"category,omitempty"`
	OwnerID   *string   `json:"owner_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
