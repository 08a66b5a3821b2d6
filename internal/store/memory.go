package store

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ajitpratap0/legacyloop/internal/models"
)

// MemoryStore is the in-memory Store backing one session.
//
// MemoryStore does no locking of its own: a session owns exactly one store
// and serializes access to it.
type MemoryStore struct {
	assets []models.Asset
	// highWater is the largest id ever assigned, so deleting the newest
	// asset never frees its id for reuse.
	highWater int
	revision  uint64
	inv       Invalidator
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a store seeded with a copy of seed. inv may be nil.
func NewMemoryStore(inv Invalidator, seed ...models.Asset) *MemoryStore {
	s := &MemoryStore{
		assets: slices.Clone(seed),
		inv:    inv,
	}
	for i := range s.assets {
		s.highWater = max(s.highWater, s.assets[i].ID)
	}
	return s
}

// nextID is one past the larger of the current maximum id and every id
// ever handed out.
func (s *MemoryStore) nextID() int {
	next := s.highWater
	for i := range s.assets {
		next = max(next, s.assets[i].ID)
	}
	return next + 1
}

// validate checks presence and type rules shared by Add and Update.
func validate(a models.Asset) error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", ErrValidation)
	}
	if a.Value.IsNegative() {
		return fmt.Errorf("%w: value must not be negative (got %s)", ErrValidation, a.Value)
	}
	if !a.Type.IsValid() {
		return fmt.Errorf("%w: unknown asset type %q", ErrValidation, a.Type)
	}
	return nil
}

// mutated bumps the revision and clears dependent caches.
func (s *MemoryStore) mutated() {
	s.revision++
	if s.inv != nil {
		s.inv.InvalidateAll()
	}
}

func (s *MemoryStore) indexOf(id int) int {
	return slices.IndexFunc(s.assets, func(a models.Asset) bool { return a.ID == id })
}

// Add creates an asset with a freshly assigned id and appends it.
func (s *MemoryStore) Add(name string, value decimal.Decimal, assetType models.AssetType, symbol, description string) (models.Asset, error) {
	a := models.Asset{
		Name:        strings.TrimSpace(name),
		Value:       value,
		Type:        assetType,
		Symbol:      strings.TrimSpace(symbol),
		Description: description,
	}
	if err := validate(a); err != nil {
		return models.Asset{}, err
	}
	a.ID = s.nextID()
	s.highWater = a.ID
	s.assets = append(s.assets, a)
	s.mutated()
	return a, nil
}

// Update applies the non-nil fields of patch. The whole patched record is
// validated before anything is written.
func (s *MemoryStore) Update(id int, patch models.AssetPatch) (models.Asset, error) {
	i := s.indexOf(id)
	if i < 0 {
		return models.Asset{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	updated := patch.Apply(s.assets[i])
	updated.Name = strings.TrimSpace(updated.Name)
	updated.Symbol = strings.TrimSpace(updated.Symbol)
	if err := validate(updated); err != nil {
		return models.Asset{}, err
	}
	s.assets[i] = updated
	// A rename changes the cache key, so the whole cache goes, not just one entry.
	s.mutated()
	return updated, nil
}

// Delete removes and returns the asset with id.
func (s *MemoryStore) Delete(id int) (models.Asset, error) {
	i := s.indexOf(id)
	if i < 0 {
		return models.Asset{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	removed := s.assets[i]
	s.assets = slices.Delete(s.assets, i, i+1)
	s.mutated()
	return removed, nil
}

// List returns a copy of all assets in insertion order.
func (s *MemoryStore) List() []models.Asset {
	out := make([]models.Asset, len(s.assets))
	copy(out, s.assets)
	return out
}

// Get returns the asset with id.
func (s *MemoryStore) Get(id int) (models.Asset, error) {
	i := s.indexOf(id)
	if i < 0 {
		return models.Asset{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return s.assets[i], nil
}

// GetByName returns the first asset named name. Names are not unique.
func (s *MemoryStore) GetByName(name string) (models.Asset, error) {
	i := slices.IndexFunc(s.assets, func(a models.Asset) bool { return a.Name == name })
	if i < 0 {
		return models.Asset{}, fmt.Errorf("%w: name %q", ErrNotFound, name)
	}
	return s.assets[i], nil
}

// TotalValue is recomputed from the records on every call.
func (s *MemoryStore) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for i := range s.assets {
		total = total.Add(s.assets[i].Value)
	}
	return total
}

// DistinctTypeCount returns the number of distinct asset types present.
func (s *MemoryStore) DistinctTypeCount() int {
	seen := make(map[models.AssetType]struct{}, len(models.ValidAssetTypes))
	for i := range s.assets {
		seen[s.assets[i].Type] = struct{}{}
	}
	return len(seen)
}

// Len returns the number of assets.
func (s *MemoryStore) Len() int { return len(s.assets) }

// Revision increases with every successful mutation.
func (s *MemoryStore) Revision() uint64 { return s.revision }

// Summary bundles the aggregate figures.
func (s *MemoryStore) Summary() models.PortfolioSummary {
	return models.PortfolioSummary{
		TotalValue:   s.TotalValue(),
		AssetClasses: s.DistinctTypeCount(),
		Holdings:     s.Len(),
	}
}
