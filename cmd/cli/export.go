package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/akeren/betrayal-web/domain/landing"
	"github.com/akeren/betrayal-web/internal/log"
	"github.com/akeren/betrayal-web/internal/view"
)

const defaultExportDir = "www/dist"

func runExport(ctx context.Context, logger *log.Logger, args []string) ([]string, error) {
	flags := flag.NewFlagSet("export", flag.ContinueOnError)
	outDir := flags.String("o", defaultExportDir, "output directory")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	return exportSite(ctx, logger, *outDir)
}

// exportSite writes index.html and every embedded asset under dir/static,
// matching the paths the page links to when served.
func exportSite(ctx context.Context, logger *log.Logger, dir string) ([]string, error) {
	views, err := view.New()
	if err != nil {
		return nil, err
	}

	content, err := landing.DefaultContent()
	if err != nil {
		return nil, err
	}

	page, err := landing.NewLandingService(logger, content).Render(ctx, nil)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := views.Render(ctx, &buf, landing.TemplateName, page); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	indexPath := filepath.Join(dir, "index.html")
	if err := os.WriteFile(indexPath, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", indexPath, err)
	}
	written := []string{indexPath}

	assets := views.Assets()
	err = fs.WalkDir(assets, ".", func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}

		target := filepath.Join(dir, "static", filepath.FromSlash(path))
		if err := copyAsset(assets, path, target); err != nil {
			return err
		}
		written = append(written, target)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("Static bundle written", "dir", dir, "files", len(written))
	return written, nil
}

func copyAsset(assets fs.FS, name, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(target), err)
	}

	src, err := assets.Open(name)
	if err != nil {
		return fmt.Errorf("open asset %s: %w", name, err)
	}
	defer src.Close()

	dst, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("create %s: %w", target, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return fmt.Errorf("copy asset %s: %w", name, err)
	}
	return dst.Close()
}
