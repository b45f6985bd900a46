package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/akeren/betrayal-web/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportSite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dist")

	written, err := exportSite(context.Background(), log.NewDiscardLogger(), dir)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "index.html"),
		filepath.Join(dir, "static", "app.css"),
	}, written)

	index, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "Welcome to Betrayal")
	assert.Contains(t, string(index), `href="/signup"`)
	assert.Contains(t, string(index), `href="/static/app.css"`)

	css, err := os.ReadFile(filepath.Join(dir, "static", "app.css"))
	require.NoError(t, err)
	assert.Contains(t, string(css), ".shadow-lg")
}

func TestExportSite_IsReproducible(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	logger := log.NewDiscardLogger()

	_, err := exportSite(context.Background(), logger, first)
	require.NoError(t, err)
	_, err = exportSite(context.Background(), logger, second)
	require.NoError(t, err)

	a, err := os.ReadFile(filepath.Join(first, "index.html"))
	require.NoError(t, err)
	b, err := os.ReadFile(filepath.Join(second, "index.html"))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRunExport_Flags(t *testing.T) {
	dir := t.TempDir()

	written, err := runExport(context.Background(), log.NewDiscardLogger(), []string{"-o", dir})
	require.NoError(t, err)
	assert.Contains(t, written, filepath.Join(dir, "index.html"))

	_, err = runExport(context.Background(), log.NewDiscardLogger(), []string{"-bogus"})
	assert.Error(t, err)
}
