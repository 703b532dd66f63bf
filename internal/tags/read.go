package tags

import (
	"os"
	"path/filepath"

	"github.com/dhowden/tag"
)

// Read reads container tag metadata from a music file. It returns only tag
// metadata, never audio stream properties (bpm, duration) — those come
// from the AudioFeatureExtractor's DSP side.
func Read(path string) (*Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, err
	}

	title := m.Title()
	if title == "" {
		title = filepath.Base(path)
	}

	track, _ := m.Track()
	disc, _ := m.Disc()

	albumArtist := m.AlbumArtist()
	if albumArtist == "" {
		albumArtist = m.Artist()
	}

	t := &Tag{
		Path:        path,
		Title:       title,
		Artist:      m.Artist(),
		AlbumArtist: albumArtist,
		Album:       m.Album(),
		Genre:       m.Genre(),
		Year:        m.Year(),
		TrackNumber: track,
		DiscNumber:  disc,
		ISRC:        isrcFromRaw(m.Raw()),
	}

	return t, nil
}

// isrcFromRaw looks for an ISRC value among a format's raw tag frames.
// Different containers spell the frame differently (ID3 TSRC, Vorbis
// ISRC, MP4 freeform atoms); we just scan common spellings.
func isrcFromRaw(raw map[string]interface{}) string {
	for _, key := range []string{"TSRC", "ISRC", "isrc"} {
		if v, ok := raw[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}
