package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/definition"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/orchestrator"
	"github.com/goliatone/go-formbuilder/pkg/preview"
	"github.com/goliatone/go-formbuilder/pkg/renderers/tui"
)

const (
	actionAdd     = "Add field"
	actionEdit    = "Edit field"
	actionDelete  = "Delete field"
	actionImport  = "Import HTML"
	actionPatch   = "Apply JSON patch"
	actionPreview = "Preview"
	actionShow    = "Show outputs"
	actionWrite   = "Write outputs"
	actionQuit    = "Quit"
)

var buildActions = []string{
	actionAdd,
	actionEdit,
	actionDelete,
	actionImport,
	actionPatch,
	actionPreview,
	actionShow,
	actionWrite,
	actionQuit,
}

var errQuit = errors.New("quit")

// outputFiles maps renderer names to the files written by "Write outputs".
var outputFiles = []struct {
	renderer string
	file     string
}{
	{"schema", "schema.json"},
	{"html", "form.html"},
	{"html-styled", "form-styled.html"},
	{"openapi", "openapi.json"},
}

type buildSession struct {
	env    *env
	driver tui.PromptDriver
	ctrl   *builder.Controller
	orch   *orchestrator.Orchestrator
	title  string
	outDir string
}

func runBuild(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "build")
	defPath := fs.String("definition", "", "definition to start from (optional)")
	outDir := fs.String("out-dir", ".", "directory for written outputs")
	title := fs.String("title", "", "form title")
	if err := fs.Parse(args); err != nil {
		return err
	}

	orch := newOrchestrator(e, "", "")
	var form model.Form
	if strings.TrimSpace(*defPath) != "" {
		src, err := definition.ParseSource(*defPath)
		if err != nil {
			return err
		}
		if form, err = orch.Resolve(ctx, orchestrator.Request{Source: src}); err != nil {
			return err
		}
	}
	if *title != "" {
		form.Title = *title
	}

	ctrl, err := builder.New(builder.WithFields(form.Fields), builder.WithLogger(e.logger))
	if err != nil {
		return err
	}
	unsubscribe := ctrl.Subscribe(func(fields []model.Field) {
		e.logger.DebugContext(ctx, "fields changed", "count", len(fields))
	})
	defer unsubscribe()

	s := &buildSession{
		env:    e,
		driver: promptDriver(e),
		ctrl:   ctrl,
		orch:   orch,
		title:  form.Title,
		outDir: *outDir,
	}
	return s.loop(ctx)
}

func (s *buildSession) loop(ctx context.Context) error {
	for {
		idx, err := s.driver.Select(ctx, tui.SelectConfig{
			Message:  fmt.Sprintf("Form has %d field(s). What next?", s.ctrl.Len()),
			Options:  buildActions,
			PageSize: len(buildActions),
		})
		if errors.Is(err, tui.ErrAborted) {
			return nil
		}
		if err != nil {
			return err
		}

		err = s.dispatch(ctx, buildActions[idx])
		switch {
		case errors.Is(err, errQuit):
			return nil
		case err == nil:
		case ctx.Err() != nil:
			return ctx.Err()
		default:
			if infoErr := s.driver.Info(ctx, "Error: "+err.Error()); infoErr != nil {
				return infoErr
			}
		}
	}
}

func (s *buildSession) dispatch(ctx context.Context, action string) error {
	switch action {
	case actionAdd:
		field, err := s.ctrl.Add()
		if err != nil {
			return err
		}
		return s.edit(ctx, field.ID)
	case actionEdit:
		id, err := s.pickField(ctx, "Field to edit")
		if err != nil {
			return err
		}
		return s.edit(ctx, id)
	case actionDelete:
		id, err := s.pickField(ctx, "Field to delete")
		if err != nil {
			return err
		}
		return s.ctrl.Delete(id)
	case actionImport:
		return s.importHTML(ctx)
	case actionPatch:
		return s.applyPatch(ctx)
	case actionPreview:
		return s.preview(ctx)
	case actionShow:
		return s.show(ctx)
	case actionWrite:
		return s.write(ctx)
	case actionQuit:
		return errQuit
	default:
		return fmt.Errorf("unknown action %q", action)
	}
}

func (s *buildSession) pickField(ctx context.Context, message string) (string, error) {
	fields := s.ctrl.Fields()
	if len(fields) == 0 {
		return "", errors.New("the form has no fields")
	}
	labels := make([]string, len(fields))
	for i, field := range fields {
		labels[i] = fmt.Sprintf("%s (%s)", field.Label, field.Type)
	}
	idx, err := s.driver.Select(ctx, tui.SelectConfig{Message: message, Options: labels})
	if err != nil {
		return "", err
	}
	return fields[idx].ID, nil
}

// edit walks the properties of one field. The type is committed first so the
// remaining prompts match it.
func (s *buildSession) edit(ctx context.Context, id string) error {
	field, err := s.ctrl.Field(id)
	if err != nil {
		return err
	}

	types := model.FieldTypes()
	names := make([]string, len(types))
	current := 0
	for i, t := range types {
		names[i] = string(t)
		if t == field.Type {
			current = i
		}
	}
	idx, err := s.driver.Select(ctx, tui.SelectConfig{Message: "Type", Options: names, DefaultIndex: current})
	if err != nil {
		return err
	}
	if types[idx] != field.Type {
		if field, err = s.ctrl.Update(id, model.FieldPatch{Type: model.TypePtr(types[idx])}); err != nil {
			return err
		}
	}

	var patch model.FieldPatch
	if patch.Label, err = s.ask(ctx, "Label", field.Label); err != nil {
		return err
	}
	required, err := s.driver.Confirm(ctx, tui.ConfirmConfig{Message: "Required?", Default: field.Required})
	if err != nil {
		return err
	}
	patch.Required = &required

	if field.Type.AcceptsPlaceholder() {
		if patch.Placeholder, err = s.ask(ctx, "Placeholder", field.Placeholder); err != nil {
			return err
		}
	}
	if patch.Description, err = s.ask(ctx, "Description", field.Description); err != nil {
		return err
	}
	if patch.ErrorMessage, err = s.ask(ctx, "Error message", field.ErrorMessage); err != nil {
		return err
	}

	switch {
	case field.Type.HasOptions():
		raw, err := s.ask(ctx, "Options (comma separated)", strings.Join(field.Options, ","))
		if err != nil {
			return err
		}
		options := model.ParseOptionList(*raw)
		patch.Options = &options
	case field.Type == model.FieldTypeFile:
		if patch.Accept, err = s.ask(ctx, "Accepted files (documents, images, all or an accept list)", field.Accept); err != nil {
			return err
		}
	case field.Type == model.FieldTypeRecaptcha:
		if patch.RecaptchaSiteKey, err = s.ask(ctx, "reCAPTCHA site key", field.RecaptchaSiteKey); err != nil {
			return err
		}
	}

	if err := s.askShowWhen(ctx, field, &patch); err != nil {
		return err
	}

	_, err = s.ctrl.Update(id, patch)
	return err
}

func (s *buildSession) askShowWhen(ctx context.Context, field model.Field, patch *model.FieldPatch) error {
	var controllers []model.Field
	for _, candidate := range s.ctrl.Fields() {
		if candidate.ID != field.ID && candidate.Type == model.FieldTypeSelect && len(candidate.Options) > 0 {
			controllers = append(controllers, candidate)
		}
	}
	if len(controllers) == 0 {
		return nil
	}

	conditional, err := s.driver.Confirm(ctx, tui.ConfirmConfig{
		Message: "Show only when a select field has a given value?",
		Default: field.ShowWhen != nil,
	})
	if err != nil {
		return err
	}
	if !conditional {
		patch.ClearShowWhen = field.ShowWhen != nil
		return nil
	}

	labels := make([]string, len(controllers))
	for i, c := range controllers {
		labels[i] = c.Label
	}
	idx, err := s.driver.Select(ctx, tui.SelectConfig{Message: "Controlling field", Options: labels})
	if err != nil {
		return err
	}
	controller := controllers[idx]

	choices := model.OptionChoices(controller)
	display := make([]string, len(choices))
	for i, choice := range choices {
		display[i] = choice.Label
	}
	idx, err = s.driver.Select(ctx, tui.SelectConfig{Message: "Show when value is", Options: display})
	if err != nil {
		return err
	}
	patch.ShowWhen = &model.ShowWhen{Field: controller.ID, Value: choices[idx].Value}
	return nil
}

func (s *buildSession) ask(ctx context.Context, message, current string) (*string, error) {
	value, err := s.driver.Input(ctx, tui.InputConfig{Message: message, Default: current})
	if err != nil {
		return nil, err
	}
	value = strings.TrimSpace(value)
	return &value, nil
}

func (s *buildSession) importHTML(ctx context.Context) error {
	path, err := s.driver.Input(ctx, tui.InputConfig{Message: "HTML file to import"})
	if err != nil {
		return err
	}
	raw, err := readInput(s.env.stdin, strings.TrimSpace(path))
	if err != nil {
		return err
	}
	added, err := s.ctrl.ImportHTML(string(raw))
	if err != nil {
		return err
	}
	return s.driver.Info(ctx, fmt.Sprintf("Imported %d field(s)", len(added)))
}

func (s *buildSession) applyPatch(ctx context.Context) error {
	id, err := s.pickField(ctx, "Field to patch")
	if err != nil {
		return err
	}
	raw, err := s.driver.TextArea(ctx, tui.TextAreaConfig{
		Message: "JSON patch",
		Help:    `RFC 6902 operations, for example [{"op":"replace","path":"/label","value":"Email"}]`,
	})
	if err != nil {
		return err
	}
	_, err = s.ctrl.ApplyJSONPatch(id, []byte(raw))
	return err
}

func (s *buildSession) preview(ctx context.Context) error {
	renderer, err := tui.New(tui.WithPromptDriver(s.driver), tui.WithOutputFormat(tui.OutputFormatPrettyText))
	if err != nil {
		return err
	}
	values, err := renderer.Session(ctx, preview.New(s.ctrl.Fields()))
	if err != nil {
		return err
	}
	var b strings.Builder
	b.WriteString("Submission:\n")
	for _, line := range sortedPairs(values) {
		b.WriteString("  " + line + "\n")
	}
	return s.driver.Info(ctx, strings.TrimRight(b.String(), "\n"))
}

func (s *buildSession) show(ctx context.Context) error {
	for _, name := range []string{"schema", "html"} {
		out, err := s.render(ctx, name)
		if err != nil {
			return err
		}
		if err := s.driver.Info(ctx, string(out)); err != nil {
			return err
		}
	}
	return nil
}

func (s *buildSession) write(ctx context.Context) error {
	def, err := definition.Marshal(s.form(), definition.FormatJSON)
	if err != nil {
		return err
	}
	if err := writeOutput(s.env.stdout, filepath.Join(s.outDir, "definition.json"), def); err != nil {
		return err
	}
	for _, target := range outputFiles {
		out, err := s.render(ctx, target.renderer)
		if err != nil {
			return err
		}
		if err := writeOutput(s.env.stdout, filepath.Join(s.outDir, target.file), out); err != nil {
			return err
		}
	}
	s.env.logger.InfoContext(ctx, "outputs written", "dir", s.outDir)
	return s.driver.Info(ctx, "Outputs written to "+s.outDir)
}

func (s *buildSession) render(ctx context.Context, renderer string) ([]byte, error) {
	form := s.form()
	return s.orch.Generate(ctx, orchestrator.Request{Form: &form, Renderer: renderer})
}

func (s *buildSession) form() model.Form {
	return model.Form{Title: s.title, Fields: s.ctrl.Fields()}
}

func sortedPairs(values map[string]string) []string {
	pairs := make([]string, 0, len(values))
	for k, v := range values {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return pairs
}
