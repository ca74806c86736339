package evidence

import (
	"strings"
	"testing"
)

func TestExtractReadableText_PrefersArticle(t *testing.T) {
	page := `
	<html><body>
	<nav>Home About Contact</nav>
	<header>Site header</header>
	<article>The actual article text lives here.</article>
	<footer>Copyright notice</footer>
	<script>var tracking = true;</script>
	</body></html>`

	text, err := ExtractReadableText(strings.NewReader(page), 3000)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	if text != "The actual article text lives here." {
		t.Errorf("unexpected text %q", text)
	}
}

func TestExtractReadableText_ContentClassFallback(t *testing.T) {
	page := `
	<html><body>
	<div class="sidebar">Links</div>
	<div class="post-content">Body of the post.</div>
	</body></html>`

	text, err := ExtractReadableText(strings.NewReader(page), 3000)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	if text != "Body of the post." {
		t.Errorf("unexpected text %q", text)
	}
}

func TestExtractReadableText_BodyFallbackAndCollapse(t *testing.T) {
	page := `
	<html><body>
	<p>First   paragraph.</p>

	<p>Second
	paragraph.</p>
	</body></html>`

	text, err := ExtractReadableText(strings.NewReader(page), 3000)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	if text != "First paragraph. Second paragraph." {
		t.Errorf("expected collapsed whitespace, got %q", text)
	}
}

func TestExtractReadableText_Truncates(t *testing.T) {
	page := "<html><body><article>" + strings.Repeat("word ", 2000) + "</article></body></html>"

	text, err := ExtractReadableText(strings.NewReader(page), 100)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	if len(text) != 100 {
		t.Errorf("expected 100 chars, got %d", len(text))
	}
}

func TestExtractReadableText_StripsScriptAndStyle(t *testing.T) {
	page := `
	<html><head><style>body { color: red }</style></head>
	<body><script>alert(1)</script><p>Visible.</p></body></html>`

	text, err := ExtractReadableText(strings.NewReader(page), 3000)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	if strings.Contains(text, "alert") || strings.Contains(text, "color") {
		t.Errorf("boilerplate leaked into text: %q", text)
	}
	if !strings.Contains(text, "Visible.") {
		t.Errorf("expected visible text, got %q", text)
	}
}
