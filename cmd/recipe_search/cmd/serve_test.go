package cmd

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/recipe-search/config"
	testutil "github.com/gcbaptista/recipe-search/internal/testing"
)

func TestRunServe_ShutsDownOnCancel(t *testing.T) {
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.Corpus.Path = testutil.WriteCorpus(t, dir, testutil.Recipes())
	cfg.Index.DataDir = filepath.Join(dir, "data")
	cfg.ApplyDefaults()
	cfg.Server.Port = "0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runServe(ctx, cfg)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}

	assert.FileExists(t, cfg.IndexCachePath())
	assert.FileExists(t, filepath.Join(cfg.Index.DataDir, analyticsFile), "analytics are saved on shutdown")
}

func TestServeCmd_RejectsInvalidPort(t *testing.T) {
	_, err := execute(t, append(corpusArgs(t), "serve", "--port", "http")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
}
