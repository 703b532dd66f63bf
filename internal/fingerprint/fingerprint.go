// Package fingerprint computes a fast structural fingerprint used by the
// Catalogue Store as a "probably unchanged" cache-key hint. It is
// explicitly not a content-integrity hash: two different files can in
// principle collide, and that is an accepted tradeoff for a local cache
// key, not a security property.
package fingerprint

import (
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

// sampleSize is how much of the head and tail of a file are hashed.
const sampleSize = 64 * 1024

// Info is the (size, mtime) pair the Catalogue Store compares against a
// stored row to decide a cache hit.
type Info struct {
	Size  uint64
	Mtime float64 // seconds since epoch
}

// Stat reads a path's size and modification time without reading its
// contents. It never returns an error for a path that simply doesn't
// exist — the caller is expected to treat a missing file as a cache
// miss, not as an I/O fault.
func Stat(path string) (Info, bool, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Info{}, false, nil
		}
		return Info{}, false, err
	}
	return Info{
		Size:  uint64(fi.Size()),
		Mtime: float64(fi.ModTime().UnixNano()) / 1e9,
	}, true, nil
}

// Compute hashes the first and last sampleSize bytes of the file at path
// (the whole file if it is smaller than 2*sampleSize). On a stat/read
// failure it falls back to hashing the canonicalized path string so the
// function never panics or returns a zero-value fingerprint for a path
// it was asked to identify.
func Compute(path string) []byte {
	f, err := os.Open(path)
	if err != nil {
		return pathFingerprint(path)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return pathFingerprint(path)
	}

	h := xxhash.New()
	size := fi.Size()

	head := make([]byte, min64(sampleSize, size))
	if _, err := io.ReadFull(f, head); err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return pathFingerprint(path)
	}
	h.Write(head)

	if size > sampleSize {
		tailLen := min64(sampleSize, size-int64(len(head)))
		if tailLen > 0 {
			tail := make([]byte, tailLen)
			if _, err := f.ReadAt(tail, size-tailLen); err != nil && err != io.EOF {
				return pathFingerprint(path)
			}
			h.Write(tail)
		}
	}

	sum := h.Sum64()
	return uint64ToBytes(sum)
}

func pathFingerprint(path string) []byte {
	h := xxhash.Sum64String(path)
	return uint64ToBytes(h)
}

func uint64ToBytes(v uint64) []byte {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
	return b
}

func min64(a int, b int64) int64 {
	if int64(a) < b {
		return int64(a)
	}
	return b
}
