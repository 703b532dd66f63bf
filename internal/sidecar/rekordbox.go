package sidecar

import (
	"encoding/xml"
	"io"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/llehouerou/waves/internal/catalogue"
)

type rekordboxCollection struct {
	XMLName xml.Name        `xml:"DJ_PLAYLISTS"`
	Tracks  rekordboxTracks `xml:"COLLECTION"`
}

type rekordboxTracks struct {
	Tracks []rekordboxTrack `xml:"TRACK"`
}

type rekordboxTrack struct {
	Location   string `xml:"Location,attr"`
	Path       string `xml:"Path,attr"`
	Name       string `xml:"Name,attr"`
	AverageBpm string `xml:"AverageBpm,attr"`
	Tempo      string `xml:"Tempo,attr"`
	Tonality   string `xml:"Tonality,attr"`
	InitialKey string `xml:"InitialKey,attr"`
	Key        string `xml:"Key,attr"`
	Comments   string `xml:"Comments,attr"`
}

// ParseRekordboxXML parses a standard Rekordbox collection export. Per
// <TRACK>: Location|Path|Name for the file path, AverageBpm|Tempo for
// tempo, Tonality|InitialKey|Key for key, Comments passed through as the
// DJMeta comment.
func ParseRekordboxXML(r io.Reader, root string) (*Result, error) {
	var doc rekordboxCollection
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}

	result := newResult()
	for _, t := range doc.Tracks.Tracks {
		path := rekordboxPath(t)
		if path == "" {
			result.Skipped++
			continue
		}
		if root != "" && !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}

		meta := catalogue.DJMeta{}
		if bpm := firstNonEmpty(t.AverageBpm, t.Tempo); bpm != "" {
			if f, err := strconv.ParseFloat(bpm, 64); err == nil {
				meta.BPM = floatPtr(f)
			}
		}
		if key := firstNonEmpty(t.Tonality, t.InitialKey, t.Key); key != "" {
			meta.InitialKey = stringPtr(key)
		}
		if t.Comments != "" {
			meta.Comment = stringPtr(t.Comments)
		}

		result.Entries[path] = meta
		result.Parsed++
	}
	return result, nil
}

// rekordboxPath prefers Location (a file:// URL rekordbox always writes),
// falling back to Path or Name for exports that omit it.
func rekordboxPath(t rekordboxTrack) string {
	if t.Location != "" {
		if u, err := url.Parse(t.Location); err == nil && u.Scheme == "file" {
			if p, err := url.PathUnescape(u.Path); err == nil {
				return p
			}
			return u.Path
		}
		return t.Location
	}
	return firstNonEmpty(t.Path, t.Name)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
