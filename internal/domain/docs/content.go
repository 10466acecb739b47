package docs

// Structured section types serialized into ProcedureDocument.Content and
// PrintMetadata. Downstream print/export consumers read these shapes only.

type DocumentHeader struct {
	Title   string  `json:"title"`
	Code    string  `json:"code"`
	Version float64 `json:"version"`
	Status  string  `json:"status"`
	Author  string  `json:"author"`
	Type    string  `json:"type"`
	Yield   string  `json:"yield"`
}

type IngredientRow struct {
	Name      string   `json:"name"`
	Quantity  float64  `json:"quantity"`
	Unit      string   `json:"unit"`
	Supplier  string   `json:"supplier"`
	Allergens []string `json:"allergens"`
}

type StorageInfo struct {
	Instructions  string `json:"instructions"`
	ShelfLifeDays int    `json:"shelf_life_days"`
}

type DocumentContent struct {
	Header      DocumentHeader  `json:"header"`
	SafetyNotes []string        `json:"safety_notes"`
	Ingredients []IngredientRow `json:"ingredients"`
	Storage     StorageInfo     `json:"storage"`
	Allergens   []string        `json:"allergens"`
}

// PrintMetadata is the print-ready snapshot attached next to the content.
// Equipment and method are left empty for later manual entry.
type PrintMetadata struct {
	RecipeSummary  string   `json:"recipe_summary"`
	IngredientList []string `json:"ingredient_list"`
	Equipment      []string `json:"equipment"`
	Method         []string `json:"method"`
}
