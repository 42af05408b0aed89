package search

import (
	"github.com/gcbaptista/recipe-search/index"
	internalErrors "github.com/gcbaptista/recipe-search/internal/errors"
)

// Resolve returns the documents that contain every query word in at least one section.
// A word matches a document if it appears in its title, categories, ingredients or
// directions. A word that matches nothing empties the result.
func Resolve(ii *index.InvertedIndex, query []string) (CandidateSet, error) {
	if len(query) == 0 {
		return nil, internalErrors.ErrEmptyQuery
	}

	var candidates CandidateSet
	seen := make(map[string]struct{}, len(query))
	for _, word := range query {
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}

		matches := documentsContaining(ii, word)
		if len(matches) == 0 {
			return CandidateSet{}, nil
		}
		if candidates == nil {
			candidates = matches
			continue
		}
		candidates = intersect(candidates, matches)
		if len(candidates) == 0 {
			return candidates, nil
		}
	}
	return candidates, nil
}

// documentsContaining unions the postings of word across all sections.
func documentsContaining(ii *index.InvertedIndex, word string) CandidateSet {
	docs := make(CandidateSet)
	for _, s := range index.Sections {
		for docID := range ii.Section(s)[word] {
			docs[docID] = struct{}{}
		}
	}
	return docs
}

func intersect(a, b CandidateSet) CandidateSet {
	if len(b) < len(a) {
		a, b = b, a
	}
	out := make(CandidateSet, len(a))
	for id := range a {
		if _, ok := b[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out
}
