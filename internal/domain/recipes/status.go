package recipes

// RecipeStatus is a closed enumeration. Archived rows are only ever created
// as copies during archival; no live row transitions into archived.
type RecipeStatus string

const (
	RecipeStatusDraft    RecipeStatus = "draft"
	RecipeStatusActive   RecipeStatus = "active"
	RecipeStatusArchived RecipeStatus = "archived"
)

func (s RecipeStatus) IsValid() bool {
	switch s {
	case RecipeStatusDraft, RecipeStatusActive, RecipeStatusArchived:
		return true
	}
	return false
}

// IsLive reports whether the row is the current mutable instance.
func (s RecipeStatus) IsLive() bool {
	return s == RecipeStatusDraft || s == RecipeStatusActive
}

// CanTransitionTo permits draft<->active only. Archived is terminal and is
// never a transition target for a live row.
func (s RecipeStatus) CanTransitionTo(next RecipeStatus) bool {
	switch s {
	case RecipeStatusDraft:
		return next == RecipeStatusActive
	case RecipeStatusActive:
		return next == RecipeStatusDraft
	}
	return false
}
