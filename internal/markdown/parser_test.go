package markdown

import (
	"strings"
	"testing"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

func TestGoldmarkParserRendersBasicMarkdown(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.Parse([]byte("# Heading\n\nSome *text*."))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	out := string(html)
	if !strings.Contains(out, "<h1") {
		t.Errorf("expected heading, got %q", out)
	}
	if !strings.Contains(out, "<em>text</em>") {
		t.Errorf("expected emphasis, got %q", out)
	}
}

func TestGoldmarkParserDefaultExtensions(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	table := "| a | b |\n|---|---|\n| 1 | 2 |\n"
	html, err := parser.Parse([]byte(table))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !strings.Contains(string(html), "<table>") {
		t.Errorf("expected GFM table rendering, got %q", string(html))
	}

	html, err = parser.Parse([]byte("- [x] done\n- [ ] pending\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !strings.Contains(string(html), "checkbox") {
		t.Errorf("expected task list rendering, got %q", string(html))
	}
}

func TestGoldmarkParserSafeModeStripsRawHTML(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})
	source := []byte("before\n\n<script>alert(1)</script>\n\nafter")

	unsafe, err := parser.Parse(source)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !strings.Contains(string(unsafe), "<script>") {
		t.Errorf("default mode should pass raw HTML through, got %q", string(unsafe))
	}

	safe, err := parser.ParseWithOptions(source, interfaces.ParseOptions{SafeMode: true})
	if err != nil {
		t.Fatalf("ParseWithOptions() error = %v", err)
	}
	if strings.Contains(string(safe), "<script>") {
		t.Errorf("safe mode should not emit raw HTML, got %q", string(safe))
	}
}

func TestCollectExtensionsIgnoresUnknownNames(t *testing.T) {
	exts := collectExtensions([]string{"table", "made-up", "TABLE", "footnote"})
	if len(exts) != 2 {
		t.Fatalf("expected 2 extensions, got %d", len(exts))
	}
}
