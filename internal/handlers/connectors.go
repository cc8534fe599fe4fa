package handlers

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/standardbeagle/mpnkit/internal/types"
)

type molexSeries struct {
	name        string
	kind        string
	pitch       float64
	current     float64
	gender      types.Gender
	orientation types.Orientation
	mounting    types.Mounting
	// circuitOffset is where the two circuit digits start in the last four digits.
	circuitOffset int
}

// molexCatalogue is keyed by the first six digits of the ten-digit part number.
var molexCatalogue = map[string]molexSeries{
	"002223": {"KK254", "header", 2.54, 4, types.GenderMale, types.OrientationVertical, types.MountingThroughHole, 1},
	"002201": {"KK254", "housing", 2.54, 4, types.GenderFemale, types.OrientationUnknown, types.MountingUnknown, 1},
	"053047": {"PicoBlade", "header", 1.25, 1, types.GenderMale, types.OrientationVertical, types.MountingThroughHole, 0},
	"053048": {"PicoBlade", "header", 1.25, 1, types.GenderMale, types.OrientationRightAngle, types.MountingThroughHole, 0},
	"053398": {"PicoBlade", "header", 1.25, 1, types.GenderMale, types.OrientationVertical, types.MountingSMD, 0},
	"051021": {"PicoBlade", "receptacle", 1.25, 1, types.GenderFemale, types.OrientationUnknown, types.MountingUnknown, 0},
	"043045": {"Micro-Fit 3.0", "header", 3.0, 5, types.GenderMale, types.OrientationRightAngle, types.MountingThroughHole, 0},
	"043025": {"Micro-Fit 3.0", "receptacle", 3.0, 5, types.GenderFemale, types.OrientationUnknown, types.MountingUnknown, 0},
}

// Molex handles catalogue-numbered Molex wire-to-board connectors. The dashed form
// (22-23-2021), the five-digit series form (53047-0410) and the ten-digit form
// (0022232021) all canonicalize to ten digits.
type Molex struct {
	base
}

func NewMolex() *Molex {
	return &Molex{base: newBase("Molex",
		def(types.ConnectorMolex, `^(0{0,2}22-?(23|01)-?|0?(53047|53048|53398|51021|43045|43025)-?)\d{4}$`),
	)}
}

func molexCanonical(m string) (string, bool) {
	digits := strings.ReplaceAll(m, "-", "")
	if len(digits) > 10 || len(digits) < 8 {
		return "", false
	}
	if !allDigits(digits) {
		return "", false
	}
	return strings.Repeat("0", 10-len(digits)) + digits, true
}

func (h *Molex) lookup(m string) (molexSeries, string, int, bool) {
	canon, ok := molexCanonical(m)
	if !ok {
		return molexSeries{}, "", 0, false
	}
	s, ok := molexCatalogue[canon[:6]]
	if !ok {
		return molexSeries{}, "", 0, false
	}
	tail := canon[6:]
	circuits, err := strconv.Atoi(tail[s.circuitOffset : s.circuitOffset+2])
	if err != nil {
		return molexSeries{}, "", 0, false
	}
	return s, canon, circuits, true
}

func (h *Molex) ExtractPackageCode(m string) (string, bool) {
	s, _, n, ok := h.lookup(m)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%s %s %dP", s.name, s.kind, n), true
}

// ExtractSeries returns the canonical ten-digit catalogue number.
func (h *Molex) ExtractSeries(m string) (string, bool) {
	_, canon, _, ok := h.lookup(m)
	return canon, ok
}

func (h *Molex) Attributes(m string) types.Attributes {
	var a types.Attributes
	s, _, n, ok := h.lookup(m)
	if !ok {
		return a
	}
	a.Family = s.name
	a.PinCount = n
	a.Pitch = types.Known(s.pitch)
	a.CurrentRating = types.Known(s.current)
	a.Gender = s.gender
	a.Orientation = s.orientation
	a.Mounting = s.mounting
	a.Keying = types.KeyingKeyed
	return a
}

var (
	jstHeaderPattern  = regexp.MustCompile(`^(SM|BM|B|S)(\d{1,2})B-(XH|PH|EH|SRSS|SH)(?:-([A-Z0-9-]+))?$`)
	jstHousingPattern = regexp.MustCompile(`^(XHP|PHR|EHR|SHR)-(\d{1,2})([A-Z0-9-]*)$`)
)

type jstSeries struct {
	pitch   float64
	current float64
}

var jstSeriesTable = map[string]jstSeries{
	"XH": {2.5, 3},
	"PH": {2.0, 2},
	"EH": {2.5, 3},
	"SH": {1.0, 1},
}

var jstHousings = map[string]string{
	"XHP": "XH",
	"PHR": "PH",
	"EHR": "EH",
	"SHR": "SH",
}

// jstPart is a decoded JST header or housing.
type jstPart struct {
	series      string
	family      string
	circuits    int
	gender      types.Gender
	orientation types.Orientation
	mounting    types.Mounting
	header      bool
}

// JST handles XH, PH, EH and SH (SR) wire-to-board connectors. Headers are
// <entry><n>B-<series>: B top entry, S side entry, with an M for surface mount.
// Housings are <series>P-<n> or <series>R-<n>.
type JST struct {
	base
}

func NewJST() *JST {
	return &JST{base: newBase("JST",
		def(types.ConnectorJST, `^(SM|BM|B|S)\d{1,2}B-(XH|PH|EH|SRSS|SH)`, `^(XHP|PHR|EHR|SHR)-\d{1,2}`),
	)}
}

func parseJST(m string) (jstPart, bool) {
	if sm := jstHeaderPattern.FindStringSubmatch(m); sm != nil {
		n, err := strconv.Atoi(sm[2])
		if err != nil {
			return jstPart{}, false
		}
		family := sm[3]
		if family == "SRSS" {
			family = "SH"
		}
		p := jstPart{
			series:      fmt.Sprintf("%s%dB-%s", sm[1], n, sm[3]),
			family:      family,
			circuits:    n,
			gender:      types.GenderMale,
			orientation: types.OrientationVertical,
			mounting:    types.MountingThroughHole,
			header:      true,
		}
		if strings.HasPrefix(sm[1], "S") {
			p.orientation = types.OrientationRightAngle
		}
		if strings.HasSuffix(sm[1], "M") {
			p.mounting = types.MountingSMD
		}
		return p, true
	}
	if sm := jstHousingPattern.FindStringSubmatch(m); sm != nil {
		n, err := strconv.Atoi(sm[2])
		if err != nil {
			return jstPart{}, false
		}
		return jstPart{
			series:   fmt.Sprintf("%s-%d", sm[1], n),
			family:   jstHousings[sm[1]],
			circuits: n,
			gender:   types.GenderFemale,
		}, true
	}
	return jstPart{}, false
}

func (h *JST) ExtractPackageCode(m string) (string, bool) {
	p, ok := parseJST(m)
	if !ok {
		return "", false
	}
	kind := "housing"
	if p.header {
		kind = "header"
	}
	return fmt.Sprintf("%s %s %dP", p.family, kind, p.circuits), true
}

func (h *JST) ExtractSeries(m string) (string, bool) {
	p, ok := parseJST(m)
	return p.series, ok
}

func (h *JST) Attributes(m string) types.Attributes {
	var a types.Attributes
	p, ok := parseJST(m)
	if !ok {
		return a
	}
	a.Family = p.family
	a.PinCount = p.circuits
	a.Gender = p.gender
	a.Orientation = p.orientation
	a.Mounting = p.mounting
	a.Keying = types.KeyingKeyed
	if s, ok := jstSeriesTable[p.family]; ok {
		a.Pitch = types.Known(s.pitch)
		a.CurrentRating = types.Known(s.current)
	}
	return a
}
