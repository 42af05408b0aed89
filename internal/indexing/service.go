package indexing

import (
	"github.com/gcbaptista/recipe-search/index"
	"github.com/gcbaptista/recipe-search/internal/tokenizer"
	"github.com/gcbaptista/recipe-search/model"
)

// Build constructs the inverted index for an ordered corpus in a single pass.
// The result is deterministic for a given corpus and is never modified afterwards.
// digest is stored on the index to recognise the corpus when reloading a cached copy.
func Build(recipes []model.Recipe, digest string) *index.InvertedIndex {
	sections := make(map[index.Section]index.SectionIndex, len(index.Sections))
	for _, s := range index.Sections {
		sections[s] = make(index.SectionIndex)
	}

	for docID, recipe := range recipes {
		// A recipe without a title is still indexed through its other sections.
		if title, ok := recipe.GetTitle(); ok {
			indexText(sections[index.SectionTitle], docID, title, index.SectionTitle.Weight())
		}
		indexTexts(sections[index.SectionCategories], docID, recipe.Categories, index.SectionCategories.Weight())
		indexTexts(sections[index.SectionIngredients], docID, recipe.Ingredients, index.SectionIngredients.Weight())
		indexTexts(sections[index.SectionDirections], docID, recipe.Directions, index.SectionDirections.Weight())
	}

	return index.New(sections, len(recipes), digest)
}

// indexTexts tokenizes each entry of a list section independently.
func indexTexts(si index.SectionIndex, docID int, texts []string, weight int) {
	for _, text := range texts {
		indexText(si, docID, text, weight)
	}
}

// indexText adds weight once per token occurrence.
func indexText(si index.SectionIndex, docID int, text string, weight int) {
	for _, word := range tokenizer.Tokenize(text) {
		si.Add(word, docID, weight)
	}
}
