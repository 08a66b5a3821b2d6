package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AssetType classifies a portfolio holding.
type AssetType string

const (
	AssetTypeEquities     AssetType = "Equities"
	AssetTypeIndexFund    AssetType = "Index Fund"
	AssetTypeBonds        AssetType = "Bonds"
	AssetTypeRealEstate   AssetType = "Real Estate"
	AssetTypeCrypto       AssetType = "Cryptocurrency"
	AssetTypePrivateEq    AssetType = "Private Equity"
	AssetTypeCash         AssetType = "Cash/Savings"
	AssetTypeAlternatives AssetType = "Alternative Investments"
)

// ValidAssetTypes is the asset catalog in display order.
var ValidAssetTypes = []AssetType{
	AssetTypeEquities,
	AssetTypeIndexFund,
	AssetTypeBonds,
	AssetTypeRealEstate,
	AssetTypeCrypto,
	AssetTypePrivateEq,
	AssetTypeCash,
	AssetTypeAlternatives,
}

var assetTypeIcons = map[AssetType]string{
	AssetTypeEquities:     "📈",
	AssetTypeIndexFund:    "📊",
	AssetTypeBonds:        "💵",
	AssetTypeRealEstate:   "🏠",
	AssetTypeCrypto:       "🪙",
	AssetTypePrivateEq:    "🏢",
	AssetTypeCash:         "💰",
	AssetTypeAlternatives: "💎",
}

// IsValid returns true if the asset type is part of the catalog.
func (at AssetType) IsValid() bool {
	for i := range ValidAssetTypes {
		if at == ValidAssetTypes[i] {
			return true
		}
	}
	return false
}

// Icon returns the display glyph for the asset type.
func (at AssetType) Icon() string {
	if icon, ok := assetTypeIcons[at]; ok {
		return icon
	}
	return "📦"
}

// ParseAssetType matches s against the catalog, ignoring case and
// surrounding whitespace.
func ParseAssetType(s string) (AssetType, error) {
	s = strings.TrimSpace(s)
	for _, at := range ValidAssetTypes {
		if strings.EqualFold(s, string(at)) {
			return at, nil
		}
	}
	return "", fmt.Errorf("unknown asset type %q", s)
}

// Asset is one portfolio holding.
type Asset struct {
	ID          int             `json:"id" toml:"id" yaml:"id"`
	Name        string          `json:"name" toml:"name" yaml:"name"`
	Value       decimal.Decimal `json:"value" toml:"value" yaml:"value"`
	Type        AssetType       `json:"type" toml:"type" yaml:"type"`
	Symbol      string          `json:"symbol" toml:"symbol" yaml:"symbol"`
	Description string          `json:"description" toml:"description" yaml:"description"`
}

// AssetPatch is a partial update. Nil fields are left unchanged.
type AssetPatch struct {
	Name        *string          `json:"name,omitempty"`
	Value       *decimal.Decimal `json:"value,omitempty"`
	Type        *AssetType       `json:"type,omitempty"`
	Symbol      *string          `json:"symbol,omitempty"`
	Description *string          `json:"description,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p AssetPatch) IsEmpty() bool {
	return p.Name == nil && p.Value == nil && p.Type == nil && p.Symbol == nil && p.Description == nil
}

// Apply returns a copy of a with the patch fields applied. The ID is never touched.
func (p AssetPatch) Apply(a Asset) Asset {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Value != nil {
		a.Value = *p.Value
	}
	if p.Type != nil {
		a.Type = *p.Type
	}
	if p.Symbol != nil {
		a.Symbol = *p.Symbol
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	return a
}

// PortfolioSummary holds the aggregate figures shown above the holdings list.
type PortfolioSummary struct {
	TotalValue   decimal.Decimal `json:"total_value"`
	AssetClasses int             `json:"asset_classes"`
	Holdings     int             `json:"holdings"`
}
