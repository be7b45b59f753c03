package formats

import (
	"testing"

	"github.com/Koipioy/forkcast-backend/internal/media"
)

func TestBestPicksHighestResolution(t *testing.T) {
	all := []media.Format{
		{ID: "audio", VCodec: "none", Bitrate: 128, URL: "u0"},
		{ID: "480p", VCodec: "avc1", Height: 480, URL: "u1"},
		{ID: "1080p", VCodec: "avc1", Height: 1080, URL: "u2"},
	}

	best := Best(all)
	if best == nil {
		t.Fatal("Best returned nil")
	}
	if best.URL != "u2" {
		t.Errorf("Best().URL = %q, want u2 (1080p)", best.URL)
	}
}

func TestBestTieBreaks(t *testing.T) {
	tests := []struct {
		name     string
		all      []media.Format
		expected string
	}{
		{
			name: "bitrate breaks height tie",
			all: []media.Format{
				{VCodec: "avc1", Height: 720, Bitrate: 1500, URL: "low"},
				{VCodec: "avc1", Height: 720, Bitrate: 3000, URL: "high"},
			},
			expected: "high",
		},
		{
			name: "filesize breaks bitrate tie",
			all: []media.Format{
				{VCodec: "avc1", Height: 720, Bitrate: 1500, Filesize: 100, URL: "small"},
				{VCodec: "avc1", Height: 720, Bitrate: 1500, Filesize: 200, URL: "big"},
			},
			expected: "big",
		},
		{
			name: "absent height treated as zero",
			all: []media.Format{
				{VCodec: "avc1", URL: "unknown"},
				{VCodec: "avc1", Height: 360, URL: "known"},
			},
			expected: "known",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			best := Best(tt.all)
			if best == nil {
				t.Fatal("Best returned nil")
			}
			if best.URL != tt.expected {
				t.Errorf("Best().URL = %q, want %q", best.URL, tt.expected)
			}
		})
	}
}

func TestBestSkipsEntriesWithoutURL(t *testing.T) {
	all := []media.Format{
		{VCodec: "avc1", Height: 2160},
		{VCodec: "avc1", Height: 480, URL: "u1"},
	}
	best := Best(all)
	if best == nil || best.URL != "u1" {
		t.Errorf("Best() = %v, want the 480p entry with a URL", best)
	}
}

func TestBestFallsBackToAudioOnly(t *testing.T) {
	// Nothing with a video codec: first entry with any URL wins.
	all := []media.Format{
		{ID: "a1", VCodec: "none"},
		{ID: "a2", VCodec: "none", URL: "audio-first"},
		{ID: "a3", VCodec: "none", URL: "audio-second"},
	}
	best := Best(all)
	if best == nil || best.URL != "audio-first" {
		t.Errorf("Best() = %v, want fallback to first entry with a URL", best)
	}
}

func TestBestNothingUsable(t *testing.T) {
	if best := Best([]media.Format{{VCodec: "none"}, {VCodec: "avc1"}}); best != nil {
		t.Errorf("Best() = %v, want nil when no entry has a URL", best)
	}
	if best := Best(nil); best != nil {
		t.Errorf("Best(nil) = %v, want nil", best)
	}
}
