// Package media defines shared types for the forkcast backend.
package media

// Track represents one downloadable subtitle rendition of a language.
type Track struct {
	Format string // e.g., "vtt", "ttml", "srv3"
	URL    string // URL to the subtitle file
}

// TrackSet maps a language tag (e.g., "en", "en-US") to its available
// subtitle renditions, in the order the extractor reported them.
type TrackSet map[string][]Track

// Format represents one media rendition reported by the metadata extractor.
type Format struct {
	ID       string  // Extractor-specific format ID
	VCodec   string  // Video codec name, "none" for audio-only entries
	Height   int     // Vertical resolution in pixels, 0 when unknown
	Bitrate  float64 // Total bitrate in kbps, 0 when unknown
	Filesize int64   // Size in bytes, 0 when unknown
	URL      string  // Direct stream URL, may be empty
}

// HasVideo reports whether the format carries a video stream.
func (f Format) HasVideo() bool {
	return f.VCodec != "" && f.VCodec != "none"
}

// Outcome is the terminal result of one extraction cascade run.
// Exactly one of Transcription and MediaURL is set on success.
type Outcome struct {
	Title         string
	Transcription string
	MediaURL      string
}
