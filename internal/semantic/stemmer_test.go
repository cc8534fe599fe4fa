package semantic

import (
	"testing"
)

func TestStemPluralsShareStem(t *testing.T) {
	stemmer := NewStemmer(3)

	pairs := [][2]string{
		{"capacitors", "capacitor"},
		{"Resistors", "resistor"},
		{"regulators", "regulator"},
		{"connectors", "connector"},
		{"sensors", "SENSOR"},
	}

	for _, p := range pairs {
		if stemmer.Stem(p[0]) != stemmer.Stem(p[1]) {
			t.Errorf("Expected %q and %q to share a stem, got %q and %q",
				p[0], p[1], stemmer.Stem(p[0]), stemmer.Stem(p[1]))
		}
	}
}

func TestStemExcluded(t *testing.T) {
	stemmer := NewStemmer(3, "MOSFETs", "ldo")

	if stemmer.Stem("mosfets") != "mosfets" {
		t.Error("Excluded word should not be stemmed")
	}
	if !stemmer.IsExcluded("LDO") {
		t.Error("Exclusions should be case-insensitive")
	}
}

func TestStemShortWords(t *testing.T) {
	stemmer := NewStemmer(4)

	if got := stemmer.Stem("ICs"); got != "ics" {
		t.Errorf("Short words should only be lower-cased, got %q", got)
	}
}

func TestStemAll(t *testing.T) {
	stemmer := NewStemmer(3)

	out := stemmer.StemAll([]string{"diodes", "diode"})
	if len(out) != 2 || out[0] != out[1] {
		t.Errorf("Expected matching stems, got %v", out)
	}
}
