package sidecar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/llehouerou/waves/internal/catalogue"
)

func TestParseMixedInKeyCSV_FlexibleHeaders(t *testing.T) {
	csv := "Filename,Tempo,Camelot Key,Energy,Comments\n" +
		"track1.mp3,128.0,8A,7,great opener\n" +
		"track2.mp3,130.5,9A,5,\n"

	result, err := ParseMixedInKeyCSV(strings.NewReader(csv), "/music")
	require.NoError(t, err)
	require.Equal(t, 2, result.Parsed)
	require.Equal(t, 0, result.Skipped)

	e1 := result.Entries["/music/track1.mp3"]
	require.NotNil(t, e1.BPM)
	require.Equal(t, 128.0, *e1.BPM)
	require.Equal(t, "8A", *e1.CamelotKey)
	require.Equal(t, 7, *e1.EnergyLevel)
	require.Equal(t, "great opener", *e1.Comment)
}

func TestParseMixedInKeyCSV_SkipsMalformedRows(t *testing.T) {
	csv := "path,bpm\n" +
		",128\n" + // missing path
		"track.mp3,120\n"

	result, err := ParseMixedInKeyCSV(strings.NewReader(csv), "")
	require.NoError(t, err)
	require.Equal(t, 1, result.Parsed)
	require.Equal(t, 1, result.Skipped)
}

func TestParseMixedInKeyCSV_AbsolutePathIgnoresRoot(t *testing.T) {
	csv := "path,bpm\n/abs/track.mp3,120\n"
	result, err := ParseMixedInKeyCSV(strings.NewReader(csv), "/music")
	require.NoError(t, err)
	_, ok := result.Entries["/abs/track.mp3"]
	require.True(t, ok)
}

func TestParseRekordboxXML_ExtractsCoreFields(t *testing.T) {
	xmlDoc := `<?xml version="1.0" encoding="UTF-8"?>
<DJ_PLAYLISTS>
  <COLLECTION>
    <TRACK Location="file://localhost/music/a.mp3" AverageBpm="124.00" Tonality="8A" Comments="peak time"/>
  </COLLECTION>
</DJ_PLAYLISTS>`

	result, err := ParseRekordboxXML(strings.NewReader(xmlDoc), "")
	require.NoError(t, err)
	require.Equal(t, 1, result.Parsed)

	e := result.Entries["/music/a.mp3"]
	require.NotNil(t, e.BPM)
	require.Equal(t, 124.0, *e.BPM)
	require.Equal(t, "8A", *e.InitialKey)
	require.Equal(t, "peak time", *e.Comment)
}

func TestParseTraktorNML_ComposesPathFromDirAndFile(t *testing.T) {
	nml := `<NML><COLLECTION>
    <ENTRY>
      <LOCATION DIR="/:music:" FILE="b.mp3"/>
      <INFO KEY="9A" COMMENT="banger"/>
      <TEMPO BPM="126.0"/>
    </ENTRY>
  </COLLECTION></NML>`

	result, err := ParseTraktorNML(strings.NewReader(nml), "")
	require.NoError(t, err)
	require.Equal(t, 1, result.Parsed)

	e := result.Entries["/music/b.mp3"]
	require.NotNil(t, e.BPM)
	require.Equal(t, 126.0, *e.BPM)
	require.Equal(t, "9A", *e.InitialKey)
	require.Equal(t, "banger", *e.Comment)
}

// Scenario 6: extractor-derived bpm=124 is overridden by an import
// asserting bpm=128; extractor camelot_key survives because the import
// doesn't carry one.
func TestMergeDJMeta_OverridesBPMPreservesCamelotWhenAbsent(t *testing.T) {
	existingCamelot := "8A"
	existingBPM := 124.0
	analysis := &catalogue.AnalysisResult{BPM: &existingBPM, CamelotKey: &existingCamelot}

	newBPM := 128.0
	MergeDJMeta(analysis, catalogue.DJMeta{BPM: &newBPM})

	require.Equal(t, 128.0, *analysis.BPM)
	require.Equal(t, "8A", *analysis.CamelotKey)
}

func TestMergeDJMeta_EnergyLevelMapsAndClamps(t *testing.T) {
	analysis := &catalogue.AnalysisResult{}
	level := 10
	MergeDJMeta(analysis, catalogue.DJMeta{EnergyLevel: &level})
	require.Equal(t, 1.0, *analysis.Energy)
}
