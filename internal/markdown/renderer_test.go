package markdown

import (
	"strings"
	"testing"
)

func TestRendererConvertsGFM(t *testing.T) {
	renderer := NewRenderer()

	html, err := renderer.Render([]byte("# Chăm sóc da\n\nMột ~~cũ~~ mới.\n\n- [ ] bước 1\n"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, `<h1 id="chăm-sóc-da">`) {
		t.Fatalf("expected auto heading id, got %q", html)
	}
	if !strings.Contains(html, "<del>") {
		t.Fatalf("expected strikethrough, got %q", html)
	}
}

func TestRendererKeepsRawHTML(t *testing.T) {
	renderer := NewRenderer()

	html, err := renderer.Render([]byte(`<div class="callout">giữ nguyên</div>`))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, `<div class="callout">`) {
		t.Fatalf("expected raw HTML passthrough, got %q", html)
	}
}
