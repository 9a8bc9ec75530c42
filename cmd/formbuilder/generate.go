package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	formbuilder "github.com/goliatone/go-formbuilder"
	"github.com/goliatone/go-formbuilder/pkg/definition"
	"github.com/goliatone/go-formbuilder/pkg/orchestrator"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/markup"
)

const httpTimeout = 30 * time.Second

type generateConfig struct {
	definition string
	target     string
	output     string
	theme      string
	variant    string
	action     string
	method     string
	watch      bool
}

func runGenerate(ctx context.Context, e *env, args []string) error {
	var cfg generateConfig
	fs := newFlagSet(e, "generate")
	fs.StringVar(&cfg.definition, "definition", "", "definition file path or URL (json or yaml)")
	fs.StringVar(&cfg.target, "target", "html", "renderer: schema, html, html-styled, openapi, openapi-yaml")
	fs.StringVar(&cfg.output, "output", "", "output file (stdout if empty)")
	fs.StringVar(&cfg.theme, "theme", "", "theme name for styled output")
	fs.StringVar(&cfg.variant, "variant", "", "theme variant for styled output")
	fs.StringVar(&cfg.action, "action", "", "override the form submission URL")
	fs.StringVar(&cfg.method, "method", "", "override the form method (GET or POST)")
	fs.BoolVar(&cfg.watch, "watch", false, "regenerate whenever the definition file changes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	src, err := definition.ParseSource(cfg.definition)
	if err != nil {
		return err
	}
	orch := newOrchestrator(e, cfg.theme, cfg.variant)
	req := orchestrator.Request{
		Source:   src,
		Renderer: cfg.target,
		RenderOptions: render.RenderOptions{
			Action: cfg.action,
			Method: cfg.method,
		},
	}

	if cfg.watch && src.Kind() != definition.SourceKindFile {
		return errors.New("-watch requires a local definition file")
	}
	if err := generateOnce(ctx, e, orch, req, cfg.output); err != nil {
		return err
	}
	if !cfg.watch {
		return nil
	}
	return watchDefinition(ctx, e, src.Location(), func() {
		if err := generateOnce(ctx, e, orch, req, cfg.output); err != nil {
			e.logger.ErrorContext(ctx, "regenerate failed", "err", err)
		}
	})
}

func newOrchestrator(e *env, themeName, variant string) *orchestrator.Orchestrator {
	opts := []orchestrator.Option{
		orchestrator.WithLoader(formbuilder.NewLoader(definition.WithHTTPFallback(httpTimeout))),
		orchestrator.WithLogger(e.logger),
	}
	if themeName != "" || variant != "" {
		selector := markup.NewManifestSelector(markup.DefaultThemeManifest())
		opts = append(opts, orchestrator.WithMarkupOptions(markup.WithTheme(selector, themeName, variant)))
	}
	return orchestrator.New(opts...)
}

func generateOnce(ctx context.Context, e *env, orch *orchestrator.Orchestrator, req orchestrator.Request, output string) error {
	out, err := orch.Generate(ctx, req)
	if err != nil {
		return err
	}
	if err := writeOutput(e.stdout, output, out); err != nil {
		return err
	}
	if output != "" {
		e.logger.InfoContext(ctx, "form written", "path", output, "renderer", req.Renderer)
	}
	return nil
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		if _, err := stdout.Write(data); err != nil {
			return err
		}
		if len(data) > 0 && data[len(data)-1] != '\n' {
			_, err := io.WriteString(stdout, "\n")
			return err
		}
		return nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// watchDefinition calls fn after each write to path until ctx is done. The
// parent directory is watched so editors that replace the file on save keep
// triggering events.
func watchDefinition(ctx context.Context, e *env, path string, fn func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	e.logger.InfoContext(ctx, "watching definition", "path", abs)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !strings.EqualFold(filepath.Clean(event.Name), abs) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				e.logger.DebugContext(ctx, "definition changed", "op", event.Op.String())
				fn()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			e.logger.WarnContext(ctx, "error watching definition", "err", err)
		}
	}
}
