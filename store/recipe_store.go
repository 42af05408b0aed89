package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	internalErrors "github.com/gcbaptista/recipe-search/internal/errors"
	"github.com/gcbaptista/recipe-search/model"
)

// RecipeStore is the immutable, ordered corpus. A recipe's document id is its
// position in Recipes.
type RecipeStore struct {
	recipes []model.Recipe
	digest  string
}

// NewRecipeStore wraps an already parsed corpus. digest identifies the corpus
// for index cache validation and may be empty.
func NewRecipeStore(recipes []model.Recipe, digest string) *RecipeStore {
	if recipes == nil {
		recipes = []model.Recipe{}
	}
	return &RecipeStore{recipes: recipes, digest: digest}
}

// LoadRecipes reads a JSON array of recipes from filePath.
func LoadRecipes(filePath string) (*RecipeStore, error) {
	data, err := os.ReadFile(filePath) // #nosec G304 -- filePath is controlled by application config
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus %s: %w", filePath, err)
	}
	return ParseRecipes(data)
}

// ParseRecipes decodes a JSON array of recipes. The digest is the SHA-256 of data.
func ParseRecipes(data []byte) (*RecipeStore, error) {
	var recipes []model.Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		return nil, fmt.Errorf("failed to decode corpus: %w", err)
	}
	sum := sha256.Sum256(data)
	return NewRecipeStore(recipes, hex.EncodeToString(sum[:])), nil
}

// Len returns the number of recipes in the corpus.
func (rs *RecipeStore) Len() int {
	return len(rs.recipes)
}

// Digest returns the corpus fingerprint.
func (rs *RecipeStore) Digest() string {
	return rs.digest
}

// All returns the corpus in document id order. The slice must not be modified.
func (rs *RecipeStore) All() []model.Recipe {
	return rs.recipes
}

// Get returns the recipe with the given document id.
func (rs *RecipeStore) Get(docID int) (model.Recipe, error) {
	if err := rs.CheckID(docID); err != nil {
		return model.Recipe{}, err
	}
	return rs.recipes[docID], nil
}

// CheckID fails with an InvalidDocumentIDError when docID is outside the corpus.
func (rs *RecipeStore) CheckID(docID int) error {
	if docID < 0 || docID >= len(rs.recipes) {
		return internalErrors.NewInvalidDocumentIDError(docID, len(rs.recipes))
	}
	return nil
}
