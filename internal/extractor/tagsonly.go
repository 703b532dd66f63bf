package extractor

import (
	"context"
	"os"

	"github.com/llehouerou/waves/internal/tags"
)

// TagsOnly is the reference AudioFeatureExtractor adapter: it reads
// container tag metadata via internal/tags and leaves every DSP-derived
// field (bpm, key, energy, hamms, duration) nil. It exists so the rest of
// the pipeline — catalogue writes, compatibility, sequencing — can be
// exercised end to end without a real analysis backend; a production
// deployment wires in a DSP implementation of AudioFeatureExtractor
// instead.
type TagsOnly struct{}

// Extract satisfies AudioFeatureExtractor.
func (TagsOnly) Extract(ctx context.Context, path string) (*Features, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrap(path, ErrTimeout, err)
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, wrap(path, ErrUnreadable, err)
		}
		return nil, wrap(path, ErrUnreadable, err)
	}

	if !tags.IsMusicFile(path) {
		return nil, wrap(path, ErrUnsupported, nil)
	}

	t, err := tags.Read(path)
	if err != nil {
		return nil, wrap(path, ErrCorrupt, err)
	}

	m := map[string]string{
		"title":  t.Title,
		"artist": t.Artist,
		"album":  t.Album,
		"genre":  t.Genre,
	}
	if t.ISRC != "" {
		m["isrc"] = t.ISRC
	}

	return &Features{Tags: m}, nil
}
