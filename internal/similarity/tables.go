package similarity

import "strings"

// subgenrePair is an unordered key into the subgenre compatibility table.
type subgenrePair struct{ x, y string }

func pair(a, b string) subgenrePair {
	if a > b {
		a, b = b, a
	}
	return subgenrePair{a, b}
}

// subgenreCompat is a bidirectional lookup table of subgenre compatibility,
// ported from the source's SUBGENRE_COMPATIBILITY matrix. It is loaded
// once and exposed only through SubgenreScore.
var subgenreCompat = buildSubgenreTable()

func buildSubgenreTable() map[subgenrePair]float64 {
	entries := []struct {
		a, b  string
		score float64
	}{
		{"Deep House", "Deep House", 1.0},
		{"Deep House", "Progressive House", 0.85},
		{"Deep House", "Tech House", 0.75},
		{"Deep House", "House", 0.80},
		{"Deep House", "Techno", 0.60},
		{"Deep House", "Trance", 0.45},
		{"Deep House", "Eurodance", 0.30},
		{"Progressive House", "Progressive House", 1.0},
		{"Progressive House", "Tech House", 0.80},
		{"Progressive House", "Trance", 0.75},
		{"Progressive House", "House", 0.85},
		{"Tech House", "Tech House", 1.0},
		{"Tech House", "Techno", 0.85},
		{"Techno", "Techno", 1.0},
		{"Techno", "Minimal Techno", 0.90},
		{"Techno", "Industrial", 0.70},
		{"Trance", "Trance", 1.0},
		{"Trance", "Progressive Trance", 0.90},
		{"Trance", "Uplifting Trance", 0.85},
		{"Trance", "Eurodance", 0.65},
		{"Eurodance", "Eurodance", 1.0},
		{"Eurodance", "Dance", 0.85},
		{"Eurodance", "Italo Disco", 0.75},
		{"Eurodance", "Hi-NRG", 0.80},
		{"Reggaeton", "Reggaeton", 1.0},
		{"Reggaeton", "Latin Trap", 0.90},
		{"Reggaeton", "Dembow", 0.85},
		{"Reggaeton", "Moombahton", 0.70},
		{"Reggaeton", "Hip-Hop", 0.60},
		{"Reggaeton", "Salsa", 0.40},
		{"Reggaeton", "Bachata", 0.35},
		{"Salsa", "Salsa", 1.0},
		{"Salsa", "Salsa Romantica", 0.95},
		{"Salsa", "Salsa Dura", 0.90},
		{"Salsa", "Merengue", 0.80},
		{"Salsa", "Bachata", 0.70},
		{"Salsa", "Mambo", 0.75},
		{"Salsa", "Cha Cha", 0.65},
		{"Salsa", "Latin Jazz", 0.60},
		{"Bachata", "Bachata", 1.0},
		{"Bachata", "Bachata Sensual", 0.95},
		{"Bachata", "Bachata Moderna", 0.90},
		{"Bachata", "Merengue", 0.75},
		{"Bachata", "Ballad", 0.60},
		{"Merengue", "Merengue", 1.0},
		{"Merengue", "Cumbia", 0.65},
		{"Classic Rock", "Classic Rock", 1.0},
		{"Classic Rock", "Hard Rock", 0.85},
		{"Classic Rock", "Blues Rock", 0.80},
		{"Classic Rock", "Progressive Rock", 0.70},
		{"Classic Rock", "Southern Rock", 0.75},
		{"Alternative Rock", "Alternative Rock", 1.0},
		{"Alternative Rock", "Grunge", 0.90},
		{"Alternative Rock", "Indie Rock", 0.85},
		{"Alternative Rock", "Post-Rock", 0.70},
		{"Alternative Rock", "Punk Rock", 0.65},
		{"Heavy Metal", "Heavy Metal", 1.0},
		{"Heavy Metal", "Hard Rock", 0.80},
		{"Heavy Metal", "Thrash Metal", 0.75},
		{"Heavy Metal", "Death Metal", 0.60},
		{"Heavy Metal", "Black Metal", 0.55},
		{"Hip-Hop", "Hip-Hop", 1.0},
		{"Hip-Hop", "Rap", 0.95},
		{"Hip-Hop", "Trap", 0.85},
		{"Hip-Hop", "Old School Hip-Hop", 0.80},
		{"Hip-Hop", "Conscious Hip-Hop", 0.90},
		{"Hip-Hop", "Gangsta Rap", 0.85},
		{"Hip-Hop", "Latin Trap", 0.70},
		{"Hip-Hop", "Reggaeton", 0.60},
		{"Trap", "Trap", 1.0},
		{"Trap", "Hip-Hop", 0.85},
		{"Trap", "Latin Trap", 0.80},
		{"Trap", "Drill", 0.75},
		{"Pop", "Pop", 1.0},
		{"Pop", "Dance Pop", 0.85},
		{"Pop", "Electropop", 0.80},
		{"Pop", "Teen Pop", 0.90},
		{"Pop", "Synth Pop", 0.75},
		{"Pop", "Latin Pop", 0.70},
		{"R&B", "R&B", 1.0},
		{"R&B", "Contemporary R&B", 0.95},
		{"R&B", "Neo Soul", 0.85},
		{"R&B", "Soul", 0.90},
		{"R&B", "Funk", 0.75},
		{"R&B", "Gospel", 0.70},
		{"Jazz", "Jazz", 1.0},
		{"Jazz", "Smooth Jazz", 0.85},
		{"Jazz", "Latin Jazz", 0.80},
		{"Jazz", "Jazz Fusion", 0.75},
		{"Jazz", "Blues", 0.70},
		{"Jazz", "Bebop", 0.90},
		{"Reggae", "Reggae", 1.0},
		{"Reggae", "Dancehall", 0.85},
		{"Reggae", "Dub", 0.80},
		{"Reggae", "Ska", 0.70},
		{"Country", "Country", 1.0},
		{"Country", "Country Rock", 0.85},
		{"Country", "Bluegrass", 0.75},
		{"Country", "Folk", 0.70},
		{"House", "Disco", 0.70},
		{"Latin Pop", "Pop", 0.80},
		{"Latin Jazz", "Jazz", 0.85},
		{"Latin Trap", "Trap", 0.90},
		{"Country Rock", "Country", 0.85},
		{"Blues Rock", "Blues", 0.90},
		{"Folk Rock", "Folk", 0.85},
	}

	table := make(map[subgenrePair]float64, len(entries))
	for _, e := range entries {
		table[pair(e.a, e.b)] = e.score
	}
	return table
}

// eraCompat is the era compatibility table, ported from the source's
// ERA_COMPATIBILITY matrix.
var eraCompat = map[subgenrePair]float64{
	pair("1990s", "1990s"):               1.0,
	pair("1990s", "2000s"):               0.8,
	pair("1990s", "1980s"):               0.7,
	pair("2000s", "2000s"):               1.0,
	pair("2000s", "2010s"):               0.9,
	pair("2010s", "2010s"):               1.0,
	pair("2010s", "2020s"):               0.95,
	pair("2020s", "2020s"):               1.0,
	pair("Contemporary", "Contemporary"): 1.0,
	pair("Contemporary", "2020s"):        0.9,
	pair("Contemporary", "2010s"):        0.85,
}

// SubgenreScore looks up subgenre compatibility bidirectionally. Missing
// entries default to 0.6 when the parent genres match (same-family
// fallback) or 0.3 otherwise (cross-family fallback). An empty subgenre on
// either side falls back to a coarse genre comparison.
func SubgenreScore(a, b Track) float64 {
	if a.Subgenre == "" || b.Subgenre == "" {
		return genreScore(a, b)
	}
	if score, ok := subgenreCompat[pair(a.Subgenre, b.Subgenre)]; ok {
		return score
	}
	if a.Genre != "" && a.Genre == b.Genre {
		return 0.6
	}
	return 0.3
}

func genreScore(a, b Track) float64 {
	if a.Genre == "" || b.Genre == "" {
		return 0.5
	}
	if a.Genre == b.Genre {
		return 0.8
	}
	return 0.4
}

// EraScore looks up era compatibility bidirectionally; unknown eras score
// neutral 0.7, unknown combinations default to 0.5.
func EraScore(a, b Track) float64 {
	if a.Era == "" || b.Era == "" {
		return 0.7
	}
	if score, ok := eraCompat[pair(a.Era, b.Era)]; ok {
		return score
	}
	return 0.5
}

// MoodScore is exact match (1.0), same broad category (0.8), unknown
// moods (0.7 neutral), else 0.4.
func MoodScore(a, b Track) float64 {
	if a.Mood == "" || b.Mood == "" {
		return 0.7
	}
	if a.Mood == b.Mood {
		return 1.0
	}
	categories := [][]string{
		{"energetic", "uplifting", "exciting", "powerful"},
		{"calm", "peaceful", "relaxed", "chill"},
		{"dark", "mysterious", "melancholic", "intense"},
	}
	for _, cat := range categories {
		if containsFold(cat, a.Mood) && containsFold(cat, b.Mood) {
			return 0.8
		}
	}
	return 0.4
}

func containsFold(set []string, v string) bool {
	for _, s := range set {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}
