package sidecar

import (
	"encoding/xml"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/llehouerou/waves/internal/catalogue"
)

// The shapes below mirror a Traktor NML exporter's write-side structs,
// trimmed to attributes this importer reads: LOCATION (DIR+FILE compose
// the path), INFO/@KEY or INFO/@INITIALKEY, INFO/@COMMENT, TEMPO/@BPM.
// A COMMENT element, MUSICAL_KEY and INFO/@TEMPO are not read.
type traktorNML struct {
	XMLName    xml.Name          `xml:"NML"`
	Collection traktorCollection `xml:"COLLECTION"`
}

type traktorCollection struct {
	Entries []traktorEntry `xml:"ENTRY"`
}

type traktorEntry struct {
	Location traktorLocation `xml:"LOCATION"`
	Info     traktorInfo     `xml:"INFO"`
	Tempo    traktorTempo    `xml:"TEMPO"`
}

type traktorLocation struct {
	Dir  string `xml:"DIR,attr"`
	File string `xml:"FILE,attr"`
}

type traktorInfo struct {
	Key        string `xml:"KEY,attr"`
	InitialKey string `xml:"INITIALKEY,attr"`
	Comment    string `xml:"COMMENT,attr"`
}

type traktorTempo struct {
	BPM string `xml:"BPM,attr"`
}

// ParseTraktorNML parses a Traktor collection export. Per <ENTRY> inside
// <COLLECTION>: LOCATION/@DIR+@FILE compose the path (Traktor separates
// path segments with ":" and a trailing separator), INFO/@KEY or
// INFO/@INITIALKEY for key, TEMPO/@BPM for tempo, INFO/@COMMENT for the
// DJMeta comment.
func ParseTraktorNML(r io.Reader, root string) (*Result, error) {
	var doc traktorNML
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}

	result := newResult()
	for _, e := range doc.Collection.Entries {
		path := traktorPath(e.Location)
		if path == "" {
			result.Skipped++
			continue
		}
		if root != "" && !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}

		meta := catalogue.DJMeta{}
		if e.Tempo.BPM != "" {
			if f, err := strconv.ParseFloat(e.Tempo.BPM, 64); err == nil {
				meta.BPM = floatPtr(f)
			}
		}
		if key := firstNonEmpty(e.Info.Key, e.Info.InitialKey); key != "" {
			meta.InitialKey = stringPtr(key)
		}
		if e.Info.Comment != "" {
			meta.Comment = stringPtr(e.Info.Comment)
		}

		result.Entries[path] = meta
		result.Parsed++
	}
	return result, nil
}

// traktorPath recomposes an absolute filesystem path from Traktor's
// colon-separated DIR ("/:Users:dj:Music:") and FILE attributes.
func traktorPath(loc traktorLocation) string {
	if loc.File == "" {
		return ""
	}
	dir := strings.TrimPrefix(loc.Dir, "/:")
	dir = strings.TrimSuffix(dir, ":")
	if dir == "" {
		return loc.File
	}
	segments := strings.Split(dir, ":")
	return string(filepath.Separator) + filepath.Join(append(segments, loc.File)...)
}
