package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/gcbaptista/recipe-search/model"
	"github.com/gcbaptista/recipe-search/services"
)

const untitled = "<untitled>"

var separator = strings.Repeat("~~~*~~~", 15)

// searchOutput is the JSON document written by `search --json`.
type searchOutput struct {
	Query    string      `json:"query"`
	Strategy string      `json:"strategy"`
	Tokens   []string    `json:"tokens"`
	Total    int         `json:"total"`
	Hits     []outputHit `json:"hits"`
}

type outputHit struct {
	DocumentID int           `json:"document_id"`
	Score      float64       `json:"score"`
	Title      *string       `json:"title,omitempty"`
	Recipe     *model.Recipe `json:"recipe,omitempty"`
}

// recipeLookup resolves document ids to records for printing.
type recipeLookup func(docID int) (model.Recipe, error)

// isTerminal reports whether w is a terminal. Anything that is not an
// *os.File, such as a test buffer, counts as a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return true
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// printResults writes the hits of one search in the human-readable layout.
func printResults(w io.Writer, result services.SearchResult, lookup recipeLookup, details bool) error {
	fmt.Fprintf(w, "%s results for %v are:\n\n", strategyTitle(result.Strategy), result.Tokens)

	for _, hit := range result.Hits {
		recipe, err := lookup(hit.DocumentID)
		if err != nil {
			return err
		}
		if details {
			data, err := json.MarshalIndent(recipe, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode recipe %d: %w", hit.DocumentID, err)
			}
			fmt.Fprintf(w, "%s\n", data)
			continue
		}
		title, ok := recipe.GetTitle()
		if !ok {
			title = untitled
		}
		fmt.Fprintf(w, "%s - id:%d\n", title, hit.DocumentID)
	}

	fmt.Fprintln(w, separator)
	return nil
}

// writeJSON writes the hits of one search as a single JSON document.
func writeJSON(w io.Writer, query string, result services.SearchResult, lookup recipeLookup, details bool) error {
	out := searchOutput{
		Query:    query,
		Strategy: result.Strategy,
		Tokens:   result.Tokens,
		Total:    result.Total,
		Hits:     make([]outputHit, 0, len(result.Hits)),
	}

	for _, hit := range result.Hits {
		recipe, err := lookup(hit.DocumentID)
		if err != nil {
			return err
		}
		entry := outputHit{
			DocumentID: hit.DocumentID,
			Score:      hit.Score,
			Title:      recipe.Title,
		}
		if details {
			entry.Recipe = &recipe
		}
		out.Hits = append(out.Hits, entry)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func strategyTitle(strategy string) string {
	if strategy == "" {
		return strategy
	}
	return strings.ToUpper(strategy[:1]) + strategy[1:]
}
