package panel

import (
	"strings"

	"go.uber.org/zap"

	"go-order-panel/models"
)

const (
	ModeRestaurant = "restaurant"
	ModeUtility    = "utility"
)

// FilterAll shows every catalog item.
const FilterAll = ""

var restaurantFilters = []string{FilterAll, "food", "drink", "candy"}

// NormalizeMode folds the legacy mode names. An empty mode means restaurant.
func NormalizeMode(mode string) string {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", ModeRestaurant:
		return ModeRestaurant
	case ModeUtility, "utils":
		return ModeUtility
	default:
		return mode
	}
}

// filtersFor returns the filters a mode offers and the one selected on open.
func filtersFor(mode string) ([]string, string) {
	switch mode {
	case ModeRestaurant:
		return append([]string(nil), restaurantFilters...), FilterAll
	case ModeUtility:
		return []string{ModeUtility}, ModeUtility
	default:
		return nil, FilterAll
	}
}

// LoadCatalog replaces the catalog and clears the cart and pending order name.
// Invalid items are dropped; on duplicate indexes the first one wins.
func (s *Session) LoadCatalog(items []models.CatalogItem) {
	catalog := s.sanitizeCatalog(items)

	s.mu.Lock()
	s.catalog = catalog
	s.cart = nil
	s.orderName = ""
	s.mu.Unlock()

	s.emit(ChangeCatalog, ChangeCart)
}

func (s *Session) sanitizeCatalog(items []models.CatalogItem) []models.CatalogItem {
	seen := make(map[string]bool, len(items))
	catalog := make([]models.CatalogItem, 0, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			s.logger.Warn("dropping invalid catalog item", zap.String("index", item.Index), zap.Error(err))
			continue
		}
		if seen[item.Index] {
			s.logger.Warn("dropping duplicate catalog item", zap.String("index", item.Index))
			continue
		}
		seen[item.Index] = true
		catalog = append(catalog, item)
	}
	return catalog
}

func (s *Session) Catalog() []models.CatalogItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.CatalogItem(nil), s.catalog...)
}

// FilteredCatalog returns the items matching the active filter.
func (s *Session) FilteredCatalog() []models.CatalogItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filteredCatalogLocked()
}

func (s *Session) filteredCatalogLocked() []models.CatalogItem {
	if s.filter == FilterAll {
		return append([]models.CatalogItem(nil), s.catalog...)
	}
	var out []models.CatalogItem
	for _, item := range s.catalog {
		if item.HasType(s.filter) {
			out = append(out, item)
		}
	}
	return out
}

// Filters returns the filters offered by the current mode and the active one.
func (s *Session) Filters() ([]string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.filters...), s.filter
}

func (s *Session) SetFilter(filter string) error {
	s.mu.Lock()
	if !s.offersLocked(filter) {
		s.mu.Unlock()
		return ErrUnknownFilter
	}
	s.filter = filter
	s.mu.Unlock()

	s.emit(ChangeCatalog)
	return nil
}

func (s *Session) offersLocked(filter string) bool {
	if filter == FilterAll && len(s.filters) == 0 {
		return true
	}
	for _, f := range s.filters {
		if f == filter {
			return true
		}
	}
	return false
}

func (s *Session) findItemLocked(index string) (models.CatalogItem, bool) {
	for _, item := range s.catalog {
		if item.Index == index {
			return item, true
		}
	}
	return models.CatalogItem{}, false
}
