package sidecar

import (
	"encoding/csv"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/llehouerou/waves/internal/catalogue"
)

var mikColumnAliases = map[string][]string{
	"path":    {"path", "file", "filename", "location"},
	"bpm":     {"bpm", "tempo"},
	"key":     {"initial key", "initialkey", "key"},
	"camelot": {"camelot", "camelot key"},
	"energy":  {"energy", "energy level"},
	"comment": {"comment", "comments"},
}

// ParseMixedInKeyCSV parses a MixedInKey-style export: UTF-8, header row,
// column names matched case-insensitively against mikColumnAliases.
// Relative paths are prefixed with root when non-empty. Unknown columns
// are ignored; rows missing a resolvable path are skipped and counted.
func ParseMixedInKeyCSV(r io.Reader, root string) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return newResult(), nil
		}
		return nil, err
	}

	col := indexColumns(header, mikColumnAliases)
	result := newResult()

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Skipped++
			continue
		}

		path := field(record, col["path"])
		if path == "" {
			result.Skipped++
			continue
		}
		if root != "" && !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}

		meta := catalogue.DJMeta{}
		if v := field(record, col["bpm"]); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				meta.BPM = floatPtr(f)
			}
		}
		if v := field(record, col["key"]); v != "" {
			meta.InitialKey = stringPtr(v)
		}
		if v := field(record, col["camelot"]); v != "" {
			meta.CamelotKey = stringPtr(strings.ToUpper(v))
		}
		if v := field(record, col["energy"]); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				meta.EnergyLevel = intPtr(n)
			}
		}
		if v := field(record, col["comment"]); v != "" {
			meta.Comment = stringPtr(v)
		}

		result.Entries[path] = meta
		result.Parsed++
	}

	return result, nil
}

// indexColumns maps each logical field to the header column that matches
// one of its aliases, case-insensitively. -1 means the field wasn't
// present in this file.
func indexColumns(header []string, aliases map[string][]string) map[string]int {
	lower := make([]string, len(header))
	for i, h := range header {
		lower[i] = strings.ToLower(strings.TrimSpace(h))
	}

	col := make(map[string]int, len(aliases))
	for field, names := range aliases {
		col[field] = -1
		for i, h := range lower {
			for _, name := range names {
				if h == name {
					col[field] = i
					break
				}
			}
			if col[field] != -1 {
				break
			}
		}
	}
	return col
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
