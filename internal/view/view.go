// Package view parses the embedded HTML templates once at startup and
// renders them into buffers so a failing template never produces a partial
// response.
package view

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"sort"

	apperrors "github.com/akeren/betrayal-web/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/akeren/betrayal-web/internal/view"

type Option func(*config)

type config struct {
	templates fs.FS
	assets    fs.FS
	funcs     template.FuncMap
}

// WithTemplatesFS replaces the embedded template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templates = files
		}
	}
}

// WithAssetsFS replaces the embedded asset bundle.
func WithAssetsFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.assets = files
		}
	}
}

func WithFuncs(funcs template.FuncMap) Option {
	return func(cfg *config) {
		for name, fn := range funcs {
			cfg.funcs[name] = fn
		}
	}
}

const renderFailedMessage = "The page could not be rendered"

type Views struct {
	root   *template.Template
	assets fs.FS
	pages  []string
}

func New(options ...Option) (*Views, error) {
	cfg := config{
		templates: TemplatesFS(),
		assets:    AssetsFS(),
		funcs:     template.FuncMap{},
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	root, err := template.New("views").Funcs(cfg.funcs).ParseFS(cfg.templates, "*.html")
	if err != nil {
		return nil, fmt.Errorf("view: parse templates: %w", err)
	}

	for _, partial := range []string{"head", "foot"} {
		if root.Lookup(partial) == nil {
			return nil, fmt.Errorf("view: layout partial %q is not defined", partial)
		}
	}

	var pages []string
	for _, t := range root.Templates() {
		switch t.Name() {
		case "views", "head", "foot":
			continue
		}
		// ParseFS also registers one template per file name; only named
		// definitions are pages.
		if matched, _ := fs.Glob(cfg.templates, t.Name()); len(matched) > 0 {
			continue
		}
		pages = append(pages, t.Name())
	}
	sort.Strings(pages)

	return &Views{root: root, assets: cfg.assets, pages: pages}, nil
}

// Pages lists the renderable page templates.
func (v *Views) Pages() []string {
	return append([]string(nil), v.pages...)
}

func (v *Views) Has(name string) bool {
	return v.root.Lookup(name) != nil
}

func (v *Views) Assets() fs.FS {
	return v.assets
}

// Render executes name into w. Output is buffered and written only when
// the whole template succeeded.
func (v *Views) Render(ctx context.Context, w io.Writer, name string, data any) error {
	_, span := otel.Tracer(tracerName).Start(ctx, "view.Render",
		trace.WithAttributes(attribute.String("view.template", name)),
	)
	defer span.End()

	if !v.Has(name) {
		err := fmt.Errorf("view: template %q is not defined", name)
		span.SetStatus(codes.Error, err.Error())
		return apperrors.NewRenderError(renderFailedMessage, err)
	}

	var buf bytes.Buffer
	if err := v.root.ExecuteTemplate(&buf, name, data); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "template execution failed")
		return apperrors.NewRenderError(renderFailedMessage, fmt.Errorf("view: execute %q: %w", name, err))
	}

	span.SetAttributes(attribute.Int("view.bytes", buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("view: write %q: %w", name, err)
	}
	return nil
}
