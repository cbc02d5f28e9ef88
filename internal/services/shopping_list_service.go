package services

import (
	"bytes"
	"fmt"

	"foodgram/internal/metrics"
	"foodgram/internal/models"
	"foodgram/internal/repositories"
)

// ShoppingListHeader is the first line of a rendered shopping list.
const ShoppingListHeader = "Shopping list"

// ShoppingListService folds a user's shopping cart into a downloadable list.
type ShoppingListService struct {
	lists repositories.ShoppingListRepository
}

// NewShoppingListService creates a new ShoppingListService.
func NewShoppingListService(lists repositories.ShoppingListRepository) *ShoppingListService {
	return &ShoppingListService{lists: lists}
}

// Build sums the ingredient amounts of every recipe in the user's cart by
// (name, measurement unit), ordered by name then unit.
func (s *ShoppingListService) Build(userID string) ([]models.ShoppingListItem, error) {
	items, err := s.lists.Aggregate(userID)
	if err != nil {
		metrics.ShoppingListBuilds.WithLabelValues("error").Inc()
		return nil, translate(err, "failed to build shopping list")
	}
	// Cart recipes always carry at least one line, so no rows means no recipes.
	if len(items) == 0 {
		metrics.ShoppingListBuilds.WithLabelValues("empty").Inc()
		return nil, fmt.Errorf("%w: user %s", ErrEmptyCart, userID)
	}
	metrics.ShoppingListBuilds.WithLabelValues("ok").Inc()
	return items, nil
}

// Render formats items as a plain text document.
func (s *ShoppingListService) Render(items []models.ShoppingListItem) []byte {
	var buf bytes.Buffer
	buf.WriteString(ShoppingListHeader)
	buf.WriteString("\n\n")
	for _, item := range items {
		fmt.Fprintf(&buf, "%s (%s) - %d\n", item.Name, item.MeasurementUnit, item.Amount)
	}
	return buf.Bytes()
}

// FileName is the download name of a user's shopping list.
func (s *ShoppingListService) FileName(username string) string {
	return username + "_shopping_cart.txt"
}
