package display

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/mpnkit/internal/advisor"
	"github.com/standardbeagle/mpnkit/internal/engine"
	"github.com/standardbeagle/mpnkit/internal/types"
)

func TestNewFormatter(t *testing.T) {
	f := NewFormatter(FormatterOptions{})
	assert.Equal(t, "text", f.options.Format)

	options := FormatterOptions{Format: "json", Color: true, Verbose: true}
	assert.Equal(t, options, NewFormatter(options).options)
}

func TestClassificationText(t *testing.T) {
	f := NewFormatter(FormatterOptions{})
	out := f.Classification(engine.Default().Classify("AOD4184A"))

	assert.True(t, strings.HasPrefix(out, "AOD4184A  MOSFET_AOS\n"), out)
	assert.Contains(t, out, "Handler:  AOS")
	assert.Contains(t, out, "TO-252")
	assert.Contains(t, out, "AOD4184")
	assert.NotContains(t, out, "unknown")

	verbose := NewFormatter(FormatterOptions{Verbose: true}).Classification(engine.Default().Classify("AOD4184A"))
	assert.Contains(t, verbose, "unknown")
}

func TestClassificationUnrecognized(t *testing.T) {
	f := NewFormatter(FormatterOptions{})

	out := f.Classification(types.Classification{Input: "LN358", MPN: "LN358", Suggestions: []string{"LM358", "LM35"}})
	assert.Equal(t, "LN358  unrecognized\n  Did you mean: LM358, LM35\n", out)

	assert.Equal(t, "XYZ ?", NewFormatter(FormatterOptions{Format: "compact"}).Classification(types.Classification{Input: "XYZ"}))
}

func TestClassificationCompactAndJSON(t *testing.T) {
	c := engine.Default().Classify("GRM188R71H104KA93D")

	compact := NewFormatter(FormatterOptions{Format: "compact"}).Classification(c)
	assert.Equal(t, "GRM188R71H104KA93D CAPACITOR_MURATA series=GRM188R71H104 pkg=0603", compact)

	out := NewFormatter(FormatterOptions{Format: "json"}).Classification(c)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "GRM188R71H104KA93D", decoded["mpn"])
}

func TestAttributeRows(t *testing.T) {
	a := types.Attributes{
		Series:      "GRM188R71H104",
		Capacitance: types.Known(1e-7),
		Tolerance:   types.Known(10),
		TempRating:  types.Known(125),
		DensityBits: 128 << 20,
		FlashBytes:  4 << 20,
		Polarity:    types.PolarityPChannel,
	}
	rows := attributeRows(a, false)

	values := make(map[string]string)
	for _, r := range rows {
		values[r[0]] = r[1]
	}
	assert.Equal(t, "100nF", values["capacitance"])
	assert.Equal(t, "10%", values["tolerance"])
	assert.Equal(t, "125°C", values["temperature rating"])
	assert.Equal(t, "128 Mbit", values["density"])
	assert.Equal(t, "4 MB", values["flash"])
	assert.Equal(t, "P-channel", values["polarity"])
	assert.NotContains(t, values, "resistance")

	assert.Greater(t, len(attributeRows(a, true)), len(rows))
}

func TestComparison(t *testing.T) {
	cmp := engine.Default().Compare("LM358N", "MC1458")

	out := NewFormatter(FormatterOptions{}).Comparison(cmp)
	assert.Contains(t, out, "LM358N vs MC1458")
	assert.Contains(t, out, "0.90 (high)")
	assert.Contains(t, out, "equivalence family dual general purpose")

	assert.Equal(t, "LM358N MC1458 0.90 high", NewFormatter(FormatterOptions{Format: "compact"}).Comparison(cmp))
}

func TestVerdict(t *testing.T) {
	f := NewFormatter(FormatterOptions{})

	ok := f.Verdict("UHS1E101MPD", "UHW1E101MPD", engine.Default().Advise("UHS1E101MPD", "UHW1E101MPD"))
	assert.Contains(t, ok, "✓ UHS1E101MPD can replace UHW1E101MPD")

	v := advisor.Verdict{
		Score: 0.7,
		Band:  "medium",
		Violations: []advisor.Violation{
			{Rule: advisor.RuleOrdered, Attribute: "temp_rating", Message: "temp_rating 105 below 135"},
			{Rule: advisor.RuleHard, Attribute: "package", Message: "package Radial differs from SMD"},
		},
	}
	out := f.Verdict("A", "B", v)
	assert.Contains(t, out, "✗ A cannot replace B")
	assert.Contains(t, out, "├─→ [ordered] temp_rating 105 below 135")
	assert.Contains(t, out, "└─→ [hard] package Radial differs from SMD")
}

func TestCandidates(t *testing.T) {
	e := engine.Default()
	cands := e.Extract("Swap the LM358N op-amp for an MC1458.")

	out := NewFormatter(FormatterOptions{}).Candidates(cands, e.Classify)
	assert.Contains(t, out, "LM358N")
	assert.Contains(t, out, "OPAMP_TI")

	assert.Equal(t, "LM358N\nMC1458\n", NewFormatter(FormatterOptions{Format: "compact"}).Candidates(cands, nil))
	assert.Equal(t, "No part numbers found\n", NewFormatter(FormatterOptions{}).Candidates(nil, nil))
}

func TestBatchAndSuggestions(t *testing.T) {
	e := engine.Default()
	cs := []types.Classification{e.Classify("LM358N"), e.Classify("XJ9999")}

	out := NewFormatter(FormatterOptions{}).Batch(cs)
	assert.Contains(t, out, "1 of 2 recognized")

	sugg := NewFormatter(FormatterOptions{Format: "compact"}).Suggestions("LN358", e.Suggest("LN358", 3))
	assert.Contains(t, strings.Split(strings.TrimSpace(sugg), "\n"), "LM358")

	assert.Equal(t, "No known parts close to QQQQ\n", NewFormatter(FormatterOptions{}).Suggestions("QQQQ", nil))
}
