// Package scan finds candidate media URLs in raw or rendered HTML.
package scan

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// mediaExtensions are file extensions treated as directly playable media.
var mediaExtensions = []string{".mp4", ".webm", ".ogg", ".mov", ".avi", ".m3u8"}

// absoluteMediaRe matches quoted absolute http(s) URLs ending in a media
// extension anywhere in the document, including inside scripts and JSON.
var absoluteMediaRe = regexp.MustCompile(`["'](https?://[^"'\s]+?\.(?:mp4|webm|ogg|mov|avi|m3u8)(?:\?[^"'\s]*)?)["']`)

// MediaURLs scans HTML for plausible media URLs and returns them resolved
// to absolute form, de-duplicated, in priority order: <video src>, nested
// <source src>, data attributes ending in a media extension, then any
// quoted absolute media URL in the document body. Malformed HTML yields
// fewer matches, never an error.
func MediaURLs(html, base string) []string {
	var raw []string

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err == nil {
		doc.Find("video").Each(func(_ int, s *goquery.Selection) {
			if src, ok := s.Attr("src"); ok && strings.TrimSpace(src) != "" {
				raw = append(raw, strings.TrimSpace(src))
			}
		})
		doc.Find("source").Each(func(_ int, s *goquery.Selection) {
			if src, ok := s.Attr("src"); ok && strings.TrimSpace(src) != "" {
				raw = append(raw, strings.TrimSpace(src))
			}
		})
		doc.Find("[data-src], [data-video], [data-url]").Each(func(_ int, s *goquery.Selection) {
			for _, attr := range []string{"data-src", "data-video", "data-url"} {
				if v, ok := s.Attr(attr); ok && hasMediaExtension(v) {
					raw = append(raw, strings.TrimSpace(v))
				}
			}
		})
	}

	for _, m := range absoluteMediaRe.FindAllStringSubmatch(html, -1) {
		raw = append(raw, m[1])
	}

	var out []string
	seen := make(map[string]struct{})
	for _, candidate := range raw {
		resolved := Resolve(candidate, base)
		if resolved == "" {
			continue
		}
		if _, dup := seen[resolved]; dup {
			continue
		}
		seen[resolved] = struct{}{}
		out = append(out, resolved)
	}

	return out
}

// Resolve turns a raw candidate into an absolute URL against the page base.
// Protocol-relative candidates get https; root-relative ones keep the base
// scheme and host; everything else goes through standard reference
// resolution. Returns "" for candidates that cannot be resolved.
func Resolve(candidate, base string) string {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return ""
	}
	if strings.HasPrefix(candidate, "http://") || strings.HasPrefix(candidate, "https://") {
		return candidate
	}
	if strings.HasPrefix(candidate, "//") {
		return "https:" + candidate
	}

	baseURL, err := url.Parse(base)
	if err != nil || baseURL.Scheme == "" || baseURL.Host == "" {
		return ""
	}
	if strings.HasPrefix(candidate, "/") {
		return baseURL.Scheme + "://" + baseURL.Host + candidate
	}

	ref, err := url.Parse(candidate)
	if err != nil {
		return ""
	}
	return baseURL.ResolveReference(ref).String()
}

// Title returns the text of the first <title> element, trimmed, or "".
func Title(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

func hasMediaExtension(raw string) bool {
	u := strings.ToLower(strings.TrimSpace(raw))
	if idx := strings.IndexAny(u, "?#"); idx != -1 {
		u = u[:idx]
	}
	for _, ext := range mediaExtensions {
		if strings.HasSuffix(u, ext) {
			return true
		}
	}
	return false
}
