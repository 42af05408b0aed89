// Package testing provides fixtures and helpers shared by the recipe search tests.
package testing

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/recipe-search/model"
)

// Str returns a pointer to s.
func Str(s string) *string { return &s }

// Num returns a pointer to f.
func Num(f float64) *float64 { return &f }

// Recipes returns a small corpus with known section contents.
//
//	0 Apple Pie            title/ingredients/directions contain "apple"
//	1 Banana Cheese Pie    5 ingredients x 3 steps = 15
//	2 Cheesy Banana Bread  4 ingredients x 5 steps = 20
//	3 (no title)           only reachable through categories/ingredients
//	4 Fish and Chips       no nutrition
//	5 Honey Apple Salad    nutrition close to one ideal serving
func Recipes() []model.Recipe {
	return []model.Recipe{
		{
			Title:       Str("Apple Pie"),
			Categories:  []string{"Dessert", "Bake"},
			Ingredients: []string{"3 apples, peeled", "1 cup flour", "1/2 cup sugar"},
			Directions:  []string{"Slice the apple.", "Bake for 40 minutes."},
			Calories:    Num(420),
			Protein:     Num(4),
			Fat:         Num(18),
		},
		{
			Title:       Str("Banana Cheese Pie"),
			Categories:  []string{"Dessert", "Cheese"},
			Ingredients: []string{"2 bananas", "1 cup cream cheese", "1 pie crust", "1/4 cup sugar", "1 egg"},
			Directions:  []string{"Mash the banana.", "Mix with cheese.", "Bake."},
			Calories:    Num(800),
			Protein:     Num(20),
			Fat:         Num(45),
		},
		{
			Title:       Str("Cheesy Banana Bread"),
			Categories:  []string{"Bread"},
			Ingredients: []string{"banana", "cheese", "flour", "egg"},
			Directions:  []string{"Mix.", "Rest.", "Shape.", "Bake.", "Cool."},
			Calories:    Num(1200),
			Protein:     Num(30),
			Fat:         Num(60),
		},
		{
			Categories:  []string{"Banana", "Snack"},
			Ingredients: []string{"1 banana", "peanut butter"},
			Directions:  []string{"Spread and eat."},
		},
		{
			Title:       Str("Fish and Chips"),
			Categories:  []string{"Fish", "Fried"},
			Ingredients: []string{"1 lb white fish", "4 potatoes", "oil"},
			Directions:  []string{"Fry the chips.", "Fry the fish."},
		},
		{
			Title:       Str("Honey Apple Salad"),
			Categories:  []string{"Salad"},
			Ingredients: []string{"1 apple", "honey", "greens"},
			Directions:  []string{"Toss everything."},
			Calories:    Num(510),
			Protein:     Num(18),
			Fat:         Num(150),
		},
	}
}

// WriteCorpus writes recipes as a JSON array into dir and returns the file path.
func WriteCorpus(t testing.TB, dir string, recipes []model.Recipe) string {
	t.Helper()
	data, err := json.Marshal(recipes)
	require.NoError(t, err, "Failed to encode corpus")

	path := filepath.Join(dir, "recipes.json")
	require.NoError(t, os.WriteFile(path, data, 0o600), "Failed to write corpus")
	return path
}
