package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account is the persisted identity of a Person: credentials plus the
// person and the wallet it owns.
type Account struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string // Never expose
	Person       *Person
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CatalogEntry is a persisted Product.
type CatalogEntry struct {
	ID        uuid.UUID
	Product   *Product
	CreatedAt time.Time
	UpdatedAt time.Time
}
