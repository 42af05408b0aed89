// Package main provides the entry point for the recipe-search CLI.
package main

import (
	"os"

	"github.com/gcbaptista/recipe-search/cmd/recipe_search/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
