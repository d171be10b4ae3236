package syqlorix_test

import (
	"path/filepath"
	"testing"

	"github.com/goliatone/go-syqgen/pkg/render"
	"github.com/goliatone/go-syqgen/pkg/testsupport"
)

func TestRenderer_Contract_Simple(t *testing.T) {
	doc := testsupport.LoadDocument(t, filepath.Join("testdata", "simple.html"))
	tree := testsupport.MustParse(t, doc.Text())

	got, err := newRenderer(t).Render(testsupport.Context(), tree, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	testsupport.Golden(t, filepath.Join("testdata", "simple.py.golden"), got)
}
