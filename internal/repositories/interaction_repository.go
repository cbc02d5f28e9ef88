package repositories

// InteractionKind names a per-user membership set over recipes.
type InteractionKind string

const (
	KindFavorite     InteractionKind = "favorite"
	KindShoppingCart InteractionKind = "shopping_cart"
)

// InteractionRepository defines membership operations for favorites and
// shopping carts. Add returns ErrDuplicate when the pair already exists and
// Remove returns ErrNotFound when it does not.
type InteractionRepository interface {
	Add(kind InteractionKind, userID, recipeID string) error
	Remove(kind InteractionKind, userID, recipeID string) error
	Exists(kind InteractionKind, userID, recipeID string) (bool, error)
	Members(kind InteractionKind, userID string, recipeIDs []string) (map[string]bool, error)
}
