package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/definition"
	"github.com/goliatone/go-formbuilder/pkg/htmlimport"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

func runImport(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "import")
	input := fs.String("input", "-", "HTML file to import, - for stdin")
	format := fs.String("format", string(definition.FormatJSON), "definition format: json or yaml")
	title := fs.String("title", "", "title recorded in the definition")
	output := fs.String("output", "", "output file (stdout if empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	raw, err := readInput(e.stdin, *input)
	if err != nil {
		return err
	}
	fields, err := htmlimport.Parse(string(raw))
	if err != nil {
		return err
	}
	out, err := definition.Marshal(model.Form{Title: strings.TrimSpace(*title), Fields: fields}, definition.Format(*format))
	if err != nil {
		return err
	}
	e.logger.DebugContext(ctx, "imported html form", "fields", len(fields))
	return writeOutput(e.stdout, *output, out)
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
