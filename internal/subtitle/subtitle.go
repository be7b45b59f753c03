// Package subtitle selects the best subtitle track from extractor output.
package subtitle

import (
	"github.com/Koipioy/forkcast-backend/internal/media"
)

// PreferredLanguages is the language search order: generic English first,
// then regional variants.
var PreferredLanguages = []string{"en", "en-US", "en-GB"}

// PreferredFormats is the format search order within a language. VTT decodes
// to clean text; the rest are returned as-is by callers that accept them.
var PreferredFormats = []string{"vtt", "ttml", "srv3", "srv2", "srv1"}

// Select returns the best available track: the first preferred language
// present in the set, then the first preferred format within that language.
// When no preferred format exists the first reported track is used; the
// reported order is the only tie-break. ok is false when no preferred
// language is present at all.
func Select(tracks media.TrackSet) (lang string, track media.Track, ok bool) {
	for _, l := range PreferredLanguages {
		options := tracks[l]
		if len(options) == 0 {
			continue
		}
		for _, format := range PreferredFormats {
			for _, opt := range options {
				if opt.Format == format {
					return l, opt, true
				}
			}
		}
		return l, options[0], true
	}
	return "", media.Track{}, false
}

// Merge combines manual subtitles and automatic captions into one set.
// Automatic captions override manual tracks per language when both exist.
func Merge(manual, auto media.TrackSet) media.TrackSet {
	merged := make(media.TrackSet, len(manual)+len(auto))
	for lang, options := range manual {
		merged[lang] = options
	}
	for lang, options := range auto {
		merged[lang] = options
	}
	return merged
}
