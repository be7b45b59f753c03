// Package formats ranks media renditions reported by the metadata extractor.
package formats

import (
	"sort"

	"github.com/Koipioy/forkcast-backend/internal/media"
)

// Best picks the highest-quality playable format: entries without a video
// codec or without a URL are dropped, the rest are ranked descending by
// height, then bitrate, then file size, absent values counting as zero.
// When filtering removes everything it falls back to the first entry in
// the reported order that carries any URL. Returns nil when nothing is
// usable.
func Best(all []media.Format) *media.Format {
	var playable []media.Format
	for _, f := range all {
		if f.HasVideo() && f.URL != "" {
			playable = append(playable, f)
		}
	}

	if len(playable) == 0 {
		for i := range all {
			if all[i].URL != "" {
				return &all[i]
			}
		}
		return nil
	}

	sort.SliceStable(playable, func(i, j int) bool {
		if playable[i].Height != playable[j].Height {
			return playable[i].Height > playable[j].Height
		}
		if playable[i].Bitrate != playable[j].Bitrate {
			return playable[i].Bitrate > playable[j].Bitrate
		}
		return playable[i].Filesize > playable[j].Filesize
	})

	return &playable[0]
}
