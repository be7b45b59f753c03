// Package ytdlp wraps the yt-dlp binary as the metadata extractor: given a
// URL it reports title, subtitle tracks, and media formats as structured
// data.
package ytdlp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/Koipioy/forkcast-backend/internal/media"
)

// DefaultBinary is the yt-dlp executable looked up on PATH when the
// configuration does not name one.
const DefaultBinary = "yt-dlp"

// Info is the slice of a yt-dlp probe this service consumes.
type Info struct {
	Title             string
	Subtitles         media.TrackSet
	AutomaticCaptions media.TrackSet
	Formats           []media.Format
}

// Client invokes a yt-dlp binary.
type Client struct {
	binary string
}

// New creates a Client for the given binary; empty means DefaultBinary.
func New(binary string) *Client {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Client{binary: binary}
}

// wire mirrors the yt-dlp -J output fields this service reads. Absent and
// null fields unmarshal to zero values.
type wire struct {
	Title             string                 `json:"title"`
	Subtitles         map[string][]wireTrack `json:"subtitles"`
	AutomaticCaptions map[string][]wireTrack `json:"automatic_captions"`
	Formats           []wireFormat           `json:"formats"`
}

type wireTrack struct {
	Ext string `json:"ext"`
	URL string `json:"url"`
}

type wireFormat struct {
	FormatID string  `json:"format_id"`
	VCodec   string  `json:"vcodec"`
	Height   int     `json:"height"`
	TBR      float64 `json:"tbr"`
	Filesize int64   `json:"filesize"`
	URL      string  `json:"url"`
}

// Probe runs yt-dlp against the URL without downloading and returns the
// parsed metadata. yt-dlp's own error text is preserved in the returned
// error so the classifier can read its phrasing.
func (c *Client) Probe(ctx context.Context, videoURL string) (*Info, error) {
	cmd := exec.CommandContext(ctx, c.binary,
		"--dump-json",
		"--no-playlist",
		"--skip-download",
		"--no-warnings",
		videoURL,
	)

	output, err := cmd.Output()
	if err != nil {
		return nil, probeError(ctx, err)
	}

	var raw wire
	if err := json.Unmarshal(output, &raw); err != nil {
		return nil, fmt.Errorf("unable to extract metadata: parsing yt-dlp output: %w", err)
	}

	info := &Info{
		Title:             raw.Title,
		Subtitles:         convertTracks(raw.Subtitles),
		AutomaticCaptions: convertTracks(raw.AutomaticCaptions),
	}
	for _, f := range raw.Formats {
		info.Formats = append(info.Formats, media.Format{
			ID:       f.FormatID,
			VCodec:   f.VCodec,
			Height:   f.Height,
			Bitrate:  f.TBR,
			Filesize: f.Filesize,
			URL:      f.URL,
		})
	}

	return info, nil
}

// Version reports the yt-dlp binary version, used by the status endpoint.
func (c *Client) Version(ctx context.Context) (string, error) {
	output, err := exec.CommandContext(ctx, c.binary, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("yt-dlp not available: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

func convertTracks(raw map[string][]wireTrack) media.TrackSet {
	if len(raw) == 0 {
		return nil
	}
	set := make(media.TrackSet, len(raw))
	for lang, tracks := range raw {
		options := make([]media.Track, 0, len(tracks))
		for _, t := range tracks {
			options = append(options, media.Track{Format: t.Ext, URL: t.URL})
		}
		set[lang] = options
	}
	return set
}

// probeError folds a failed yt-dlp invocation into one error carrying the
// stderr text, which holds the actionable message ("Unsupported URL",
// "Video unavailable", HTTP statuses).
func probeError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("yt-dlp timed out: %w", ctx.Err())
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
		return fmt.Errorf("yt-dlp failed: %s", strings.TrimSpace(string(exitErr.Stderr)))
	}
	return fmt.Errorf("yt-dlp failed: %w", err)
}
