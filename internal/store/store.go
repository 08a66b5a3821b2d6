package store

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/ajitpratap0/legacyloop/internal/models"
)

// ErrNotFound is returned when no asset has the requested id or name.
var ErrNotFound = errors.New("asset not found")

// ErrValidation is returned when a mutation would produce an invalid asset.
// The store is left unchanged.
var ErrValidation = errors.New("invalid asset")

// Invalidator is notified synchronously after every successful mutation,
// before the mutating call returns.
type Invalidator interface {
	InvalidateAll()
}

// Store defines the portfolio operations of one session.
type Store interface {
	// Add creates an asset with a freshly assigned id and appends it.
	Add(name string, value decimal.Decimal, assetType models.AssetType, symbol, description string) (models.Asset, error)

	// Update applies the non-nil fields of patch to the asset with id.
	Update(id int, patch models.AssetPatch) (models.Asset, error)

	// Delete removes and returns the asset with id. Remaining order is preserved.
	Delete(id int) (models.Asset, error)

	// List returns all assets in insertion order.
	List() []models.Asset

	// Get returns the asset with id.
	Get(id int) (models.Asset, error)

	// GetByName returns the first asset, in insertion order, named name.
	GetByName(name string) (models.Asset, error)

	// TotalValue is the exact sum of all asset values.
	TotalValue() decimal.Decimal

	// DistinctTypeCount is the number of distinct asset types present.
	DistinctTypeCount() int

	// Len is the number of assets.
	Len() int

	// Revision increases with every successful mutation.
	Revision() uint64
}
