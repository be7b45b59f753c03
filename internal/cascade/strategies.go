package cascade

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Koipioy/forkcast-backend/internal/formats"
	"github.com/Koipioy/forkcast-backend/internal/httputil"
	"github.com/Koipioy/forkcast-backend/internal/media"
	"github.com/Koipioy/forkcast-backend/internal/render"
	"github.com/Koipioy/forkcast-backend/internal/scan"
	"github.com/Koipioy/forkcast-backend/internal/subtitle"
	"github.com/Koipioy/forkcast-backend/internal/vtt"
	"github.com/Koipioy/forkcast-backend/internal/ytdlp"
)

// RenderScan renders the page in a headless browser and looks for video
// sources in the live DOM. Most expensive strategy, best hit rate on
// script-heavy players.
type RenderScan struct {
	renderer render.Renderer
}

// NewRenderScan creates the renderer-backed strategy.
func NewRenderScan(r render.Renderer) *RenderScan {
	return &RenderScan{renderer: r}
}

func (s *RenderScan) Name() string { return "render" }

// Extract renders the page and unions the in-page video sources with a
// scanner pass over the rendered DOM, first-seen order preserved.
func (s *RenderScan) Extract(ctx context.Context, pageURL string) (*media.Outcome, error) {
	capture, err := s.renderer.Render(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("rendering page: %w", err)
	}

	var candidates []string
	seen := make(map[string]struct{})
	add := func(raw string) {
		resolved := scan.Resolve(raw, pageURL)
		if resolved == "" {
			return
		}
		if _, dup := seen[resolved]; dup {
			return
		}
		seen[resolved] = struct{}{}
		candidates = append(candidates, resolved)
	}
	for _, src := range capture.Sources {
		add(src)
	}
	for _, u := range scan.MediaURLs(capture.HTML, pageURL) {
		add(u)
	}

	if len(candidates) == 0 {
		return nil, errors.New("no video found in rendered page")
	}

	return &media.Outcome{
		Title:    scan.Title(capture.HTML),
		MediaURL: candidates[0],
	}, nil
}

// PageFetch downloads the raw HTML with a browser user agent and scans it.
// Cheap, catches pages that embed media statically.
type PageFetch struct {
	client  *http.Client
	timeout time.Duration
}

// NewPageFetch creates the raw-fetch strategy.
func NewPageFetch(client *http.Client, timeout time.Duration) *PageFetch {
	return &PageFetch{client: client, timeout: timeout}
}

func (s *PageFetch) Name() string { return "fetch" }

func (s *PageFetch) Extract(ctx context.Context, pageURL string) (*media.Outcome, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	html, err := httputil.FetchPage(ctx, s.client, pageURL)
	if err != nil {
		return nil, err
	}

	candidates := scan.MediaURLs(html, pageURL)
	if len(candidates) == 0 {
		return nil, errors.New("no video found in page HTML")
	}

	return &media.Outcome{
		Title:    scan.Title(html),
		MediaURL: candidates[0],
	}, nil
}

// Metadata asks yt-dlp for the page's tracks and formats. Subtitles win
// when an English track exists; otherwise the best playable format URL is
// returned.
type Metadata struct {
	extractor *ytdlp.Client
	client    *http.Client
	timeout   time.Duration
}

// NewMetadata creates the metadata-extractor strategy. client fetches the
// selected subtitle file.
func NewMetadata(extractor *ytdlp.Client, client *http.Client, timeout time.Duration) *Metadata {
	return &Metadata{extractor: extractor, client: client, timeout: timeout}
}

func (s *Metadata) Name() string { return "metadata" }

func (s *Metadata) Extract(ctx context.Context, pageURL string) (*media.Outcome, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	info, err := s.extractor.Probe(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	tracks := subtitle.Merge(info.Subtitles, info.AutomaticCaptions)
	if _, track, ok := subtitle.Select(tracks); ok {
		body, err := httputil.FetchBody(ctx, s.client, track.URL)
		if err != nil {
			return nil, fmt.Errorf("downloading subtitle track: %w", err)
		}
		text := string(body)
		if track.Format == "vtt" {
			text = vtt.Decode(text)
		}
		return &media.Outcome{Title: info.Title, Transcription: text}, nil
	}

	if best := formats.Best(info.Formats); best != nil {
		return &media.Outcome{Title: info.Title, MediaURL: best.URL}, nil
	}

	return nil, errors.New("no English subtitles or playable formats found for this video")
}
