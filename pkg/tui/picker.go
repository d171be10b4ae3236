// Package tui drives the interactive example picker: choose a bundled
// example (or paste markup) and the conversion mode flags.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-syqgen/pkg/examples"
	"github.com/goliatone/go-syqgen/pkg/render"
	"github.com/goliatone/go-syqgen/pkg/rules"
)

const pasteOption = "paste markup…"

var wrapperOptions = []string{render.WrapperHead, render.WrapperBody, render.WrapperTitle}

// Selection is the outcome of a picker session.
type Selection struct {
	Example examples.Example
	Options render.RenderOptions
	Convert bool
}

// Picker walks the user through choosing an input and mode flags.
type Picker struct {
	driver PromptDriver
}

// NewPicker returns a Picker using driver, or the survey driver when nil.
func NewPicker(driver PromptDriver) *Picker {
	if driver == nil {
		driver = NewSurveyDriver()
	}
	return &Picker{driver: driver}
}

// Pick prompts for an example and the options to convert it with. base
// supplies the defaults shown in each prompt.
func (p *Picker) Pick(ctx context.Context, list []examples.Example, base render.RenderOptions) (Selection, error) {
	if len(list) == 0 {
		return Selection{}, ErrNoExamples
	}

	labels := make([]string, 0, len(list)+1)
	for _, ex := range list {
		labels = append(labels, fmt.Sprintf("%s (%s)", ex.Name, ex.Title))
	}
	labels = append(labels, pasteOption)

	idx, err := p.driver.Select(ctx, SelectConfig{
		Message: "Example",
		Options: labels,
		Help:    "Bundled documents to convert",
	})
	if err != nil {
		return Selection{}, err
	}

	var sel Selection
	switch {
	case idx >= 0 && idx < len(list):
		sel.Example = list[idx]
	case idx == len(list):
		markup, err := p.driver.TextArea(ctx, TextAreaConfig{
			Message: "Markup",
			Help:    "A complete document starting with <!DOCTYPE html>",
		})
		if err != nil {
			return Selection{}, err
		}
		sel.Example = examples.Example{Name: "custom", Title: "Pasted markup", Markup: markup}
	default:
		return Selection{}, fmt.Errorf("tui: invalid example selection %d", idx)
	}

	if sel.Options, err = p.options(ctx, base); err != nil {
		return Selection{}, err
	}

	sel.Convert, err = p.driver.Confirm(ctx, ConfirmConfig{
		Message: "Convert now?",
		Default: true,
	})
	if err != nil {
		return Selection{}, err
	}
	return sel, nil
}

func (p *Picker) options(ctx context.Context, base render.RenderOptions) (render.RenderOptions, error) {
	out := base

	modes := []string{string(render.EmbedInline), string(render.EmbedHoist)}
	modeIdx, err := p.driver.Select(ctx, SelectConfig{
		Message:      "Embedded style/script content",
		Options:      modes,
		DefaultIndex: indexOf(modes, string(base.EmbedMode())),
	})
	if err != nil {
		return out, err
	}
	if modeIdx >= 0 && modeIdx < len(modes) {
		out.Mode = render.EmbedMode(modes[modeIdx])
	}

	var defaults []int
	for i, wrapper := range wrapperOptions {
		if base.Elides(wrapper) {
			defaults = append(defaults, i)
		}
	}
	picked, err := p.driver.MultiSelect(ctx, SelectConfig{
		Message:  "Wrappers to elide",
		Options:  wrapperOptions,
		Defaults: defaults,
	})
	if err != nil {
		return out, err
	}
	out.Elide = defaultsFromIndices(wrapperOptions, picked)

	variable, err := p.driver.Input(ctx, InputConfig{
		Message:   "Variable name",
		Default:   base.VariableName(),
		Validator: validateIdentifier,
	})
	if err != nil {
		return out, err
	}
	out.Variable = strings.TrimSpace(variable)
	return out, nil
}

func validateIdentifier(value string) error {
	value = strings.TrimSpace(value)
	if value == "" || rules.Name(value) != value {
		return fmt.Errorf("%q is not a valid identifier", value)
	}
	return nil
}
