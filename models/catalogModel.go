package models

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// The host speaks plain JSON numbers for every money field.
	decimal.MarshalJSONWithoutQuotes = true
}

type CatalogItem struct {
	Index string          `json:"index" validate:"required"`
	Label string          `json:"label"`
	Type  string          `json:"type"`
	Price decimal.Decimal `json:"price"`
}

// ErrNegativePrice is returned by Validate for items priced below zero.
var ErrNegativePrice = errors.New("catalog item price must not be negative")

// Validate checks the tagged fields and the price, which the validator cannot inspect.
func (i CatalogItem) Validate() error {
	if err := Validate.Struct(i); err != nil {
		return err
	}
	if i.Price.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}

// categoryAliases folds tags used by older hosts.
var categoryAliases = map[string]string{
	"utils": "utility",
}

// NormalizeCategory lowercases a category tag and resolves aliases.
func NormalizeCategory(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if canonical, ok := categoryAliases[tag]; ok {
		return canonical
	}
	return tag
}

// HasType reports whether the item belongs to the given category tag, ignoring case.
func (i CatalogItem) HasType(category string) bool {
	return NormalizeCategory(i.Type) == NormalizeCategory(category)
}

// ParseCatalog decodes the catalog carried by an openPanel event. Hosts send either a
// JSON array or a string holding the encoded array.
func ParseCatalog(raw json.RawMessage) ([]CatalogItem, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	if raw[0] == '"' {
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return nil, err
		}
		raw = json.RawMessage(encoded)
	}
	var items []CatalogItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}
