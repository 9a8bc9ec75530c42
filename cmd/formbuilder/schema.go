package main

import (
	"context"

	"github.com/goliatone/go-formbuilder/pkg/definition"
)

func runDefinitionSchema(_ context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "definition-schema")
	output := fs.String("output", "", "output file (stdout if empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	out, err := definition.MarshalJSONSchema()
	if err != nil {
		return err
	}
	return writeOutput(e.stdout, *output, out)
}
