package paramedit

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-paramedit/pkg/editor"
	"github.com/goliatone/go-paramedit/pkg/testsupport"
)

func TestAssetsFSContainsStylesheet(t *testing.T) {
	data, err := fs.ReadFile(AssetsFS(), "paramedit.css")
	if err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
	if !strings.Contains(string(data), "--pe-") {
		t.Fatalf("expected stylesheet to declare theme variables")
	}
}

func TestEmbeddedTemplatesContainEditor(t *testing.T) {
	if _, err := fs.Stat(EmbeddedTemplates(), "templates/editor.tmpl"); err != nil {
		t.Fatalf("expected editor template: %v", err)
	}
}

func TestGenerateHTMLAfterEdits(t *testing.T) {
	session := NewSession()
	session.Dispatch(editor.RenameParam{ID: 1, Name: "Purpose"})

	html, err := GenerateHTML(testsupport.Context(), session.Snapshot(), "", RenderOptions{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(html), `value="Purpose"`) {
		t.Fatalf("expected renamed parameter in page:\n%s", html)
	}
}

func TestGenerateHTMLFromSeedDefaultsToExample(t *testing.T) {
	html, err := GenerateHTMLFromSeed(testsupport.Context(), "", "vanilla", RenderOptions{Locale: "en"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(html), "Длина") {
		t.Fatalf("expected example seed in page:\n%s", html)
	}
}
