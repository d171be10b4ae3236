// Package testsupport holds helpers shared by renderer and orchestrator tests.
package testsupport

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-syqgen/internal/markup/parser"
	"github.com/goliatone/go-syqgen/pkg/markup"
)

// UpdateEnv names the environment variable that makes Golden rewrite files.
const UpdateEnv = "UPDATE_GOLDENS"

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// LoadDocument reads a fixture file into a Document with a file source.
func LoadDocument(t *testing.T, path string) markup.Document {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	doc, err := markup.NewDocument(markup.SourceFromFile(path), data)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// MustParse parses inline markup with the default parser and fails the test
// when the markup is rejected or has no root element.
func MustParse(t *testing.T, input string) *markup.Tree {
	t.Helper()

	tree, err := parser.New(markup.ParserOptions{}).Parse(Context(), markup.DocumentFromString(input))
	if err != nil {
		t.Fatalf("parse markup: %v", err)
	}
	if err := markup.CheckTree(tree); err != nil {
		t.Fatalf("parse markup: %v", err)
	}
	return tree
}

// Golden compares got with the golden file at path. With UPDATE_GOLDENS set
// the file is rewritten instead.
func Golden(t *testing.T, path string, got []byte) {
	t.Helper()

	if os.Getenv(UpdateEnv) != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir golden dir: %v", err)
		}
		if err := os.WriteFile(path, got, 0o644); err != nil {
			t.Fatalf("write golden: %v", err)
		}
		return
	}

	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v (run with %s=1 to create it)", err, UpdateEnv)
	}
	if diff := cmp.Diff(string(want), string(got)); diff != "" {
		t.Fatalf("%s mismatch (-want +got):\n%s", filepath.Base(path), diff)
	}
}

// CaptureTemplateOutput runs render against a buffer and returns both the
// returned string and what was written.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
