package main

import (
	"context"

	"github.com/goliatone/go-formbuilder/pkg/definition"
	"github.com/goliatone/go-formbuilder/pkg/orchestrator"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/tui"
)

// promptDriver is swapped by tests.
var promptDriver = func(e *env) tui.PromptDriver {
	return tui.NewSurveyDriver(e.stderr)
}

func runPreview(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "preview")
	defPath := fs.String("definition", "", "definition file path or URL (json or yaml)")
	format := fs.String("format", string(tui.OutputFormatPrettyText), "submission format: json, form, pretty")
	attempts := fs.Int("attempts", tui.DefaultMaxAttempts, "submit attempts before giving up")
	if err := fs.Parse(args); err != nil {
		return err
	}

	src, err := definition.ParseSource(*defPath)
	if err != nil {
		return err
	}
	form, err := newOrchestrator(e, "", "").Resolve(ctx, orchestrator.Request{Source: src})
	if err != nil {
		return err
	}

	renderer, err := tui.New(
		tui.WithPromptDriver(promptDriver(e)),
		tui.WithOutputFormat(tui.OutputFormat(*format)),
		tui.WithMaxAttempts(*attempts),
	)
	if err != nil {
		return err
	}
	out, err := renderer.Render(ctx, form, render.RenderOptions{})
	if err != nil {
		return err
	}
	return writeOutput(e.stdout, "", out)
}
