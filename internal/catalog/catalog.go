// Package catalog holds the read-only reference data every session starts
// from: the default family portfolio and the three user profiles.
package catalog

import (
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/ajitpratap0/legacyloop/internal/models"
)

//go:embed defaults.toml
var defaultsTOML []byte

// dataset mirrors the layout of defaults.toml.
type dataset struct {
	Assets   []models.Asset       `toml:"assets"`
	Profiles []models.UserProfile `toml:"profiles"`
}

var loadDefaults = sync.OnceValues(func() (*dataset, error) {
	return parse(defaultsTOML)
})

// parse decodes and checks a dataset document.
func parse(data []byte) (*dataset, error) {
	var ds dataset
	if err := toml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("catalog: parsing defaults: %w", err)
	}

	seen := make(map[int]bool, len(ds.Assets))
	for i := range ds.Assets {
		a := &ds.Assets[i]
		if a.ID <= 0 || seen[a.ID] {
			return nil, fmt.Errorf("catalog: asset %q has invalid or duplicate id %d", a.Name, a.ID)
		}
		seen[a.ID] = true
		if !a.Type.IsValid() {
			return nil, fmt.Errorf("catalog: asset %q has unknown type %q", a.Name, a.Type)
		}
		if a.Value.IsNegative() {
			return nil, fmt.Errorf("catalog: asset %q has negative value", a.Name)
		}
	}
	for _, r := range models.ValidRoles {
		if !slices.ContainsFunc(ds.Profiles, func(p models.UserProfile) bool { return p.Role == r }) {
			return nil, fmt.Errorf("catalog: missing profile for role %q", r)
		}
	}
	return &ds, nil
}

func mustDefaults() *dataset {
	ds, err := loadDefaults()
	if err != nil {
		// The document is embedded at build time; a parse failure is a programming error.
		panic(err)
	}
	return ds
}

// DefaultPortfolio returns a fresh deep copy of the default holdings.
// Asset has no reference fields other than immutable decimals, so a slice
// clone is enough.
func DefaultPortfolio() []models.Asset {
	return slices.Clone(mustDefaults().Assets)
}

// Profiles returns a copy of all user profiles in role order.
func Profiles() []models.UserProfile {
	out := make([]models.UserProfile, 0, len(models.ValidRoles))
	for _, r := range models.ValidRoles {
		p, _ := Profile(r)
		out = append(out, p)
	}
	return out
}

// Profile returns the profile for role.
func Profile(role models.Role) (models.UserProfile, bool) {
	for _, p := range mustDefaults().Profiles {
		if p.Role == role {
			p.Interests = slices.Clone(p.Interests)
			return p, true
		}
	}
	return models.UserProfile{}, false
}

// Heir returns the heir profile.
func Heir() models.UserProfile {
	p, _ := Profile(models.RoleHeir)
	return p
}

// PrimaryClient returns the primary client profile.
func PrimaryClient() models.UserProfile {
	p, _ := Profile(models.RolePrimary)
	return p
}

// Advisor returns the advisor profile.
func Advisor() models.UserProfile {
	p, _ := Profile(models.RoleAdvisor)
	return p
}
