package engine

import (
	"context"
	"fmt"

	"github.com/gcbaptista/recipe-search/services"
)

// Rebuild reloads the corpus, builds a fresh index, saves it and swaps it in.
// On failure the current index stays published.
func (e *Engine) Rebuild(ctx context.Context) (services.IndexStats, error) {
	e.rebuildMu.Lock()
	defer e.rebuildMu.Unlock()

	if err := ctx.Err(); err != nil {
		return services.IndexStats{}, err
	}

	inst, err := e.loadInstance(ctx, false)
	if err != nil {
		return services.IndexStats{}, fmt.Errorf("failed to rebuild index: %w", err)
	}

	previous := e.current.Swap(inst)
	stats := inst.stats()
	e.logger.Info("published rebuilt index",
		"documents", stats.DocumentCount,
		"previous_documents", previous.invertedIndex.DocumentCount())
	return stats, nil
}
