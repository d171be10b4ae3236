package orchestrator_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-syqgen/pkg/markup"
	"github.com/goliatone/go-syqgen/pkg/orchestrator"
	"github.com/goliatone/go-syqgen/pkg/render"
	"github.com/goliatone/go-syqgen/pkg/renderers/preview"
	"github.com/goliatone/go-syqgen/pkg/renderers/syqlorix"
	"github.com/goliatone/go-syqgen/pkg/testsupport"
)

const document = `<!DOCTYPE html><html><head><title>T</title></head><body><h1>Hi</h1></body></html>`

func TestOrchestrator_Convert_EndToEnd(t *testing.T) {
	result, err := orchestrator.New().Convert(testsupport.Context(), orchestrator.Request{Input: document})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if result.Failed() {
		t.Fatalf("unexpected failure: %v / %v", result.CodeErr, result.PreviewErr)
	}

	code := string(result.Code)
	for _, fragment := range []string{"Syqlorix(", `head(title("T"))`, `body(h1("Hi"))`, `"Hi"`} {
		if !strings.Contains(code, fragment) {
			t.Fatalf("code missing %q:\n%s", fragment, code)
		}
	}
	if !strings.HasPrefix(string(result.Preview), "<!DOCTYPE html>\n<html>\n") {
		t.Fatalf("unexpected preview:\n%s", result.Preview)
	}
}

func TestOrchestrator_Convert_MissingDoctype(t *testing.T) {
	result, err := orchestrator.New().Convert(testsupport.Context(), orchestrator.Request{
		Input: `<html><body>x</body></html>`,
	})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	wantCode := "from syqlorix import *\n\n# Conversion failed: missing document-type declaration\n"
	if diff := cmp.Diff(wantCode, string(result.Code)); diff != "" {
		t.Fatalf("code mismatch (-want +got):\n%s", diff)
	}

	var conv *render.ConversionError
	if !errors.As(result.CodeErr, &conv) || !errors.Is(result.CodeErr, markup.ErrMissingDoctype) {
		t.Fatalf("expected ConversionError wrapping ErrMissingDoctype, got %v", result.CodeErr)
	}
	var rendErr *render.RenderError
	if !errors.As(result.PreviewErr, &rendErr) || !errors.Is(result.PreviewErr, markup.ErrMissingDoctype) {
		t.Fatalf("expected RenderError wrapping ErrMissingDoctype, got %v", result.PreviewErr)
	}
	if result.CodeErr.Error() != result.PreviewErr.Error() {
		t.Fatalf("messages differ: %q vs %q", result.CodeErr, result.PreviewErr)
	}
	if !strings.Contains(string(result.Preview), "missing document-type declaration") {
		t.Fatalf("preview missing message:\n%s", result.Preview)
	}
}

func TestOrchestrator_Convert_EmptyRequestFailsDoctypeCheck(t *testing.T) {
	result, err := orchestrator.New().Convert(testsupport.Context(), orchestrator.Request{})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if !errors.Is(result.CodeErr, markup.ErrMissingDoctype) || !errors.Is(result.PreviewErr, markup.ErrMissingDoctype) {
		t.Fatalf("expected missing doctype failures, got %v / %v", result.CodeErr, result.PreviewErr)
	}
	if !strings.HasPrefix(string(result.Code), "from syqlorix import *\n\n# Conversion failed: ") {
		t.Fatalf("unexpected code output:\n%s", result.Code)
	}
}

type rootlessParser struct{}

func (rootlessParser) Parse(context.Context, markup.Document) (*markup.Tree, error) {
	return &markup.Tree{}, nil
}

func TestOrchestrator_Convert_ParserWithoutRoot(t *testing.T) {
	orch := orchestrator.New(orchestrator.WithParser(rootlessParser{}))
	result, err := orch.Convert(testsupport.Context(), orchestrator.Request{Input: document})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	wantCode := "from syqlorix import *\n\n# Conversion failed: no root element\n"
	if diff := cmp.Diff(wantCode, string(result.Code)); diff != "" {
		t.Fatalf("code mismatch (-want +got):\n%s", diff)
	}
	var conv *render.ConversionError
	if !errors.As(result.CodeErr, &conv) || !errors.Is(result.CodeErr, markup.ErrNoRootElement) {
		t.Fatalf("expected ConversionError wrapping ErrNoRootElement, got %v", result.CodeErr)
	}
	if !errors.Is(result.PreviewErr, markup.ErrNoRootElement) {
		t.Fatalf("expected preview failure, got %v", result.PreviewErr)
	}
}

func TestOrchestrator_Convert_StructuralError(t *testing.T) {
	result, err := orchestrator.New().Convert(testsupport.Context(), orchestrator.Request{
		Input: `<!DOCTYPE html><div><span></div>`,
	})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	if !errors.Is(result.CodeErr, markup.ErrStructural) || !errors.Is(result.PreviewErr, markup.ErrStructural) {
		t.Fatalf("expected structural errors, got %v / %v", result.CodeErr, result.PreviewErr)
	}
	code := string(result.Code)
	if !strings.Contains(code, "# Conversion failed: structural parse error") {
		t.Fatalf("unexpected failure output:\n%s", code)
	}
	if strings.Contains(code, "div(") || strings.Contains(code, "doc =") {
		t.Fatalf("failure output contains a partial call tree:\n%s", code)
	}
	if strings.Contains(string(result.Preview), "<div>") {
		t.Fatalf("failure preview contains partial markup:\n%s", result.Preview)
	}
}

func TestOrchestrator_Convert_FragmentSkipsDoctype(t *testing.T) {
	result, err := orchestrator.New().Convert(testsupport.Context(), orchestrator.Request{
		Input:   `<p>One</p>`,
		Options: render.RenderOptions{Fragment: true},
	})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if result.Failed() {
		t.Fatalf("unexpected failure: %v", result.CodeErr)
	}
	if !strings.Contains(string(result.Code), `my_component = div(p("One"))`) {
		t.Fatalf("unexpected fragment output:\n%s", result.Code)
	}
}

func TestOrchestrator_Generate(t *testing.T) {
	orch := orchestrator.New()

	code, err := orch.Generate(testsupport.Context(), orchestrator.Request{Input: document})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.HasPrefix(string(code), "from syqlorix import *") {
		t.Fatalf("unexpected code:\n%s", code)
	}

	out, err := orch.Generate(testsupport.Context(), orchestrator.Request{Input: document, Renderer: preview.Name})
	if err != nil {
		t.Fatalf("generate preview: %v", err)
	}
	if !strings.Contains(string(out), "<h1>") {
		t.Fatalf("unexpected preview:\n%s", out)
	}
}

func TestOrchestrator_Generate_FailureShapes(t *testing.T) {
	orch := orchestrator.New()

	out, err := orch.Generate(testsupport.Context(), orchestrator.Request{Input: "<html></html>"})
	var conv *render.ConversionError
	if !errors.As(err, &conv) {
		t.Fatalf("expected ConversionError, got %T (%v)", err, err)
	}
	if !strings.Contains(string(out), "# Conversion failed: missing document-type declaration") {
		t.Fatalf("unexpected failure output:\n%s", out)
	}

	out, err = orch.Generate(testsupport.Context(), orchestrator.Request{Input: "<html></html>", Renderer: preview.Name})
	var rendErr *render.RenderError
	if !errors.As(err, &rendErr) {
		t.Fatalf("expected RenderError, got %T (%v)", err, err)
	}
	if !strings.HasPrefix(string(out), "<body style=") {
		t.Fatalf("unexpected failure preview:\n%s", out)
	}
}

func TestOrchestrator_LoadsFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.html")
	if err := os.WriteFile(path, []byte(document), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	result, err := orchestrator.New().Convert(testsupport.Context(), orchestrator.Request{
		Source:  markup.SourceFromFile(path),
		Options: render.RenderOptions{Elide: []string{"head", "body"}},
	})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	want := "from syqlorix import *\n\n# Main application object\ndoc = Syqlorix(\n    title(\"T\"),\n    h1(\"Hi\")\n)\n"
	if diff := cmp.Diff(want, string(result.Code)); diff != "" {
		t.Fatalf("code mismatch (-want +got):\n%s", diff)
	}
}

func TestOrchestrator_InfrastructureErrors(t *testing.T) {
	orch := orchestrator.New()

	//nolint:staticcheck // nil context is the case under test
	if _, err := orch.Convert(nil, orchestrator.Request{Input: document}); err == nil {
		t.Fatalf("expected error for nil context")
	}
	if _, err := orch.Generate(testsupport.Context(), orchestrator.Request{Input: document, Renderer: "missing"}); err == nil {
		t.Fatalf("expected error for unknown renderer")
	}
	if _, err := orch.Convert(testsupport.Context(), orchestrator.Request{Input: document, Options: render.RenderOptions{IndentWidth: 40}}); err == nil {
		t.Fatalf("expected error for invalid options")
	}

	ctx, cancel := context.WithCancel(testsupport.Context())
	cancel()
	if _, err := orch.Convert(ctx, orchestrator.Request{Input: document}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestOrchestrator_CustomRegistryAndLogging(t *testing.T) {
	code, err := syqlorix.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	registry := render.NewRegistry()
	registry.MustRegister(code)
	registry.MustRegister(preview.New(preview.WithMinify()))

	core, logs := observer.New(zap.DebugLevel)
	orch := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithLogger(zap.New(core)),
	)

	result, err := orch.Convert(testsupport.Context(), orchestrator.Request{Input: document})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if strings.Contains(string(result.Preview), "\n  ") {
		t.Fatalf("expected minified preview:\n%s", result.Preview)
	}
	if logs.FilterMessage("conversion complete").Len() != 1 {
		t.Fatalf("expected a debug log entry, got %v", logs.All())
	}

	if _, err := orch.Convert(testsupport.Context(), orchestrator.Request{Input: "<p>"}); err != nil {
		t.Fatalf("convert: %v", err)
	}
	if logs.FilterMessage("conversion precondition failed").Len() != 1 {
		t.Fatalf("expected a warn log entry, got %v", logs.All())
	}
}
