// Package tags provides container-tag reading used as a fallback metadata
// source by the reference AudioFeatureExtractor adapter. It never reads
// audio-stream properties such as bpm or duration — that is the DSP
// extractor's job, not this package's.
package tags

import "strings"

// File extensions recognized as music files.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtOPUS = ".opus"
	ExtOGG  = ".ogg"
	ExtM4A  = ".m4a"
	ExtMP4  = ".mp4"
	ExtWAV  = ".wav"
	ExtAAC  = ".aac"
)

// Tag contains the subset of container tag metadata the extractor adapter
// copies into extractor.Features.Tags.
type Tag struct {
	Path        string
	Title       string
	Artist      string
	AlbumArtist string
	Album       string
	Genre       string
	Year        int
	TrackNumber int
	DiscNumber  int
	ISRC        string
}

// Map flattens a Tag into the string map the extractor contract expects.
// Empty fields are omitted.
func (t *Tag) Map() map[string]string {
	m := make(map[string]string, 8)
	add := func(k, v string) {
		if v != "" {
			m[k] = v
		}
	}
	add("title", t.Title)
	add("artist", t.Artist)
	add("album_artist", t.AlbumArtist)
	add("album", t.Album)
	add("genre", t.Genre)
	add("isrc", t.ISRC)
	if t.Year > 0 {
		m["year"] = itoa(t.Year)
	}
	if t.TrackNumber > 0 {
		m["track_number"] = itoa(t.TrackNumber)
	}
	if t.DiscNumber > 0 {
		m["disc_number"] = itoa(t.DiscNumber)
	}
	return m
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [12]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// IsMusicFile returns true if the path has a supported music file extension.
func IsMusicFile(path string) bool {
	ext := strings.ToLower(path)
	if idx := strings.LastIndex(ext, "."); idx >= 0 {
		ext = ext[idx:]
	} else {
		return false
	}
	switch ext {
	case ExtMP3, ExtFLAC, ExtOPUS, ExtOGG, ExtM4A, ExtMP4, ExtWAV, ExtAAC:
		return true
	}
	return false
}
