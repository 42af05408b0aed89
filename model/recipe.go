package model

import (
	"encoding/json"
)

// Recipe is a single corpus record. Every field is optional: a nil pointer or
// nil slice means the field was absent (or null) in the source document.
// A recipe is identified only by its position in the corpus.
type Recipe struct {
	Title       *string  `json:"title,omitempty"`
	Categories  []string `json:"categories,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
	Directions  []string `json:"directions,omitempty"`
	Calories    *float64 `json:"calories,omitempty"`
	Protein     *float64 `json:"protein,omitempty"`
	Fat         *float64 `json:"fat,omitempty"`

	// Extra keeps the remaining source fields (rating, desc, date...) for display.
	Extra map[string]json.RawMessage `json:"-"`
}

// GetTitle returns the title if present.
func (r Recipe) GetTitle() (string, bool) {
	if r.Title == nil {
		return "", false
	}
	return *r.Title, true
}

// GetNutrition returns calories, protein and fat when all three are present.
func (r Recipe) GetNutrition() (calories, protein, fat float64, ok bool) {
	if r.Calories == nil || r.Protein == nil || r.Fat == nil {
		return 0, 0, 0, false
	}
	return *r.Calories, *r.Protein, *r.Fat, true
}

// UnmarshalJSON decodes a recipe, treating null or wrongly typed known fields
// as absent instead of failing the whole corpus.
func (r *Recipe) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = Recipe{}
	r.Title = decodeOptional[string](raw, "title")
	r.Categories = decodeStrings(raw, "categories")
	r.Ingredients = decodeStrings(raw, "ingredients")
	r.Directions = decodeStrings(raw, "directions")
	r.Calories = decodeOptional[float64](raw, "calories")
	r.Protein = decodeOptional[float64](raw, "protein")
	r.Fat = decodeOptional[float64](raw, "fat")

	for _, known := range []string{"title", "categories", "ingredients", "directions", "calories", "protein", "fat"} {
		delete(raw, known)
	}
	if len(raw) > 0 {
		r.Extra = raw
	}
	return nil
}

// MarshalJSON writes the known fields followed by the preserved extra fields.
func (r Recipe) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(r.Extra)+7)
	for k, v := range r.Extra {
		out[k] = v
	}
	if r.Title != nil {
		out["title"] = *r.Title
	}
	if r.Categories != nil {
		out["categories"] = r.Categories
	}
	if r.Ingredients != nil {
		out["ingredients"] = r.Ingredients
	}
	if r.Directions != nil {
		out["directions"] = r.Directions
	}
	if r.Calories != nil {
		out["calories"] = *r.Calories
	}
	if r.Protein != nil {
		out["protein"] = *r.Protein
	}
	if r.Fat != nil {
		out["fat"] = *r.Fat
	}
	return json.Marshal(out)
}

func decodeOptional[T any](raw map[string]json.RawMessage, key string) *T {
	value, ok := raw[key]
	if !ok || string(value) == "null" {
		return nil
	}
	var v T
	if err := json.Unmarshal(value, &v); err != nil {
		return nil
	}
	return &v
}

// decodeStrings reads a list of strings; non-string items are skipped.
func decodeStrings(raw map[string]json.RawMessage, key string) []string {
	value, ok := raw[key]
	if !ok || string(value) == "null" {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(value, &items); err != nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			out = append(out, s)
		}
	}
	return out
}
