package scan

import (
	"reflect"
	"testing"
)

func TestMediaURLsVideoTag(t *testing.T) {
	html := `<html><body><video src="a.mp4"></video></body></html>`
	got := MediaURLs(html, "https://x.test/p")
	want := []string{"https://x.test/a.mp4"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MediaURLs() = %v, want %v", got, want)
	}
}

func TestMediaURLsProtocolRelative(t *testing.T) {
	html := `<video src="//cdn.test/v.mp4"></video>`
	got := MediaURLs(html, "https://x.test/p")
	want := []string{"https://cdn.test/v.mp4"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MediaURLs() = %v, want %v", got, want)
	}
}

func TestMediaURLsTierOrder(t *testing.T) {
	// Scanner tiers: video src, source src, data attributes, quoted absolute
	// URLs anywhere in the document.
	html := `<html><body>
		<div data-src="/lazy/clip.webm"></div>
		<video src="/direct.mp4"><source src="/nested.mp4"></video>
		<script>var u = "https://cdn.test/script.m3u8";</script>
	</body></html>`
	got := MediaURLs(html, "https://x.test/watch")
	want := []string{
		"https://x.test/direct.mp4",
		"https://x.test/nested.mp4",
		"https://x.test/lazy/clip.webm",
		"https://cdn.test/script.m3u8",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MediaURLs() = %v, want %v", got, want)
	}
}

func TestMediaURLsDeduplicates(t *testing.T) {
	// The same URL found by several tiers collapses to its first occurrence.
	html := `<video src="https://cdn.test/v.mp4"></video>
		<source src="https://cdn.test/v.mp4">
		<script>play("https://cdn.test/v.mp4")</script>`
	got := MediaURLs(html, "https://x.test/")
	want := []string{"https://cdn.test/v.mp4"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MediaURLs() = %v, want %v", got, want)
	}
}

func TestMediaURLsDataAttributeNeedsMediaExtension(t *testing.T) {
	html := `<div data-src="/thumb.jpg"></div><div data-src="/clip.mp4?sig=abc"></div>`
	got := MediaURLs(html, "https://x.test/")
	want := []string{"https://x.test/clip.mp4?sig=abc"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MediaURLs() = %v, want %v", got, want)
	}
}

func TestMediaURLsMalformedHTML(t *testing.T) {
	html := `<video src="ok.mp4"><div><<<><video src=`
	got := MediaURLs(html, "https://x.test/base/")
	want := []string{"https://x.test/base/ok.mp4"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MediaURLs() on malformed HTML = %v, want %v", got, want)
	}
}

func TestMediaURLsEmpty(t *testing.T) {
	if got := MediaURLs("<html><body><p>no media here</p></body></html>", "https://x.test/"); got != nil {
		t.Errorf("MediaURLs() = %v, want nil", got)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		base      string
		expected  string
	}{
		{"absolute passes through", "https://cdn.test/v.mp4", "https://x.test/p", "https://cdn.test/v.mp4"},
		{"plain http passes through", "http://cdn.test/v.mp4", "https://x.test/p", "http://cdn.test/v.mp4"},
		{"protocol relative gets https", "//cdn.test/v.mp4", "https://x.test/p", "https://cdn.test/v.mp4"},
		{"root relative keeps scheme and host", "/v.mp4", "https://x.test/deep/page", "https://x.test/v.mp4"},
		{"relative resolves against full base", "v.mp4", "https://x.test/dir/page", "https://x.test/dir/v.mp4"},
		{"dotted relative", "../v.mp4", "https://x.test/a/b/page", "https://x.test/a/v.mp4"},
		{"empty candidate", "", "https://x.test/p", ""},
		{"relative with unusable base", "v.mp4", "not a url", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.candidate, tt.base)
			if got != tt.expected {
				t.Errorf("Resolve(%q, %q) = %q, want %q", tt.candidate, tt.base, got, tt.expected)
			}
		})
	}
}

func TestTitle(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{"plain title", "<html><head><title>My Video</title></head></html>", "My Video"},
		{"first title wins", "<title>First</title><title>Second</title>", "First"},
		{"whitespace trimmed", "<title>\n  Spaced  \n</title>", "Spaced"},
		{"no title", "<html><body></body></html>", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Title(tt.html); got != tt.expected {
				t.Errorf("Title() = %q, want %q", got, tt.expected)
			}
		})
	}
}
