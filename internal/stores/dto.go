package stores

// AssignStoreRequest is the admin assign/unassign payload. UserID is only
// required when assigning; UserName/UserEmail are a pass-through profile
// hint, not re-derived from the identity provider.
type AssignStoreRequest struct {
	StoreID   string `json:"storeId" validate:"required"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
	Action    string `json:"action"`
}

// CreateStoreRequest is the admin store-creation payload.
type CreateStoreRequest struct {
	Name       string `json:"name" validate:"required"`
	Slug       string `json:"slug"`
	URL        string `json:"url"`
	Category   string `json:"category"`
	OwnerID    string `json:"owner_id" validate:"required"`
	OwnerName  string `json:"owner_name"`
	OwnerEmail string `json:"owner_email"`
}

// AssignWebsiteRequest updates the URL of a user's store, creating a
// default-named store when the user has none.
type AssignWebsiteRequest struct {
	UserID string `json:"userId" validate:"required"`
	URL    string `json:"url" validate:"required"`
}

// ListStoresRequest carries repository-level list filters. OwnerID nil means
// unrestricted (admin scope).
type ListStoresRequest struct {
	OwnerID *string
	Limit   int
	Offset  int
}
