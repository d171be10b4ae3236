package examples_test

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-syqgen/pkg/examples"
	"github.com/goliatone/go-syqgen/pkg/orchestrator"
	"github.com/goliatone/go-syqgen/pkg/testsupport"
)

func TestNames(t *testing.T) {
	if diff := cmp.Diff([]string{"simple", "advanced", "template"}, examples.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestGet(t *testing.T) {
	ex, err := examples.Get("simple")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !strings.HasPrefix(ex.Markup, "<!DOCTYPE html>\n<html>\n") {
		t.Fatalf("unexpected markup:\n%s", ex.Markup)
	}

	if _, err := examples.Get("missing"); !errors.Is(err, examples.ErrUnknownExample) {
		t.Fatalf("expected ErrUnknownExample, got %v", err)
	}
}

func TestDecode_RejectsDuplicates(t *testing.T) {
	_, err := examples.Decode([]byte("examples:\n  - name: a\n  - name: a\n"))
	if err == nil {
		t.Fatalf("expected duplicate error")
	}
}

func TestBundledExamplesConvert(t *testing.T) {
	all, err := examples.All()
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	orch := orchestrator.New()
	for _, ex := range all {
		t.Run(ex.Name, func(t *testing.T) {
			result, err := orch.Convert(testsupport.Context(), orchestrator.Request{Input: ex.Markup})
			if err != nil {
				t.Fatalf("convert: %v", err)
			}
			if result.Failed() {
				t.Fatalf("conversion failed: %v", result.CodeErr)
			}
			if !strings.Contains(string(result.Code), "doc = Syqlorix(") {
				t.Fatalf("unexpected code:\n%s", result.Code)
			}
		})
	}
}

func TestAdvancedExampleEmbedsContent(t *testing.T) {
	ex, err := examples.Get("advanced")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	result, err := orchestrator.New().Convert(testsupport.Context(), orchestrator.Request{Input: ex.Markup})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	code := string(result.Code)
	for _, want := range []string{
		`meta(charset="UTF-8")`,
		"style(\"\"\"\nbody {",
		"script(\"\"\"\nconsole.log('Syqlorix page loaded!');\n\"\"\")",
		`class_="container"`,
	} {
		if !strings.Contains(code, want) {
			t.Fatalf("code missing %q:\n%s", want, code)
		}
	}
}
