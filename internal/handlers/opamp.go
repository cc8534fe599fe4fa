package handlers

import (
	"regexp"
	"strings"
)

// opampSeriesPattern captures the series of a general-purpose op-amp; whatever follows
// is grade and package.
var opampSeriesPattern = regexp.MustCompile(`^(LM(?:358|258|158|324|224|124|2904|2902|741)|MC(?:1458|33078|33079|3403|3407[124])|RC4558|NJM4558|KA358|KA324|TL0[78][124]|LF(?:351|353|347)|NE553[24]|SA5532|OPA[24]?\d{3,4}|TLV(?:9\d{2,3}|2\d{3}))`)

// opampChannels is the fixed part of the line table; lines that spell the channel
// count in the part number are decoded in opampLine.
var opampChannels = map[string]int{
	"LM358":   2,
	"LM258":   2,
	"LM158":   2,
	"LM2904":  2,
	"MC1458":  2,
	"RC4558":  2,
	"NJM4558": 2,
	"KA358":   2,
	"LM324":   4,
	"LM224":   4,
	"LM124":   4,
	"LM2902":  4,
	"MC3403":  4,
	"KA324":   4,
	"LM741":   1,
	"MC33078": 2,
	"MC33079": 4,
	"LF351":   1,
	"LF353":   2,
	"LF347":   4,
	"NE5532":  2,
	"SA5532":  2,
	"NE5534":  1,
	// OPA16xx parts whose last digit is not the channel count.
	"OPA1622": 2,
	"OPA1632": 1,
	"OPA1656": 2,
	"OPA1678": 2,
	"OPA1679": 4,
}

// opampPart is the decoded series, product line and channel count of an op-amp.
type opampPart struct {
	series   string
	line     string
	channels int
	rest     string
}

func splitOpAmp(m string) (opampPart, bool) {
	loc := opampSeriesPattern.FindStringSubmatchIndex(m)
	if loc == nil {
		return opampPart{}, false
	}
	series := m[loc[2]:loc[3]]
	p := opampPart{series: series, line: series, rest: m[loc[3]:]}

	switch {
	case strings.HasPrefix(series, "TL0"):
		p.line = series[:4]
		p.channels = channelDigit(series[4])
	case strings.HasPrefix(series, "LF3"):
		p.line = "LF35"
		p.channels = opampChannels[series]
	case strings.HasPrefix(series, "NE553"), strings.HasPrefix(series, "SA553"):
		p.line = "NE553"
		p.channels = opampChannels[series]
	case strings.HasPrefix(series, "MC3407"):
		p.line = "MC3407"
		p.channels = channelDigit(series[6])
	case strings.HasPrefix(series, "MC3307"):
		p.line = "MC3307"
		p.channels = opampChannels[series]
	case strings.HasPrefix(series, "OPA"):
		core := series[3:]
		p.channels = 1
		switch {
		case opampChannels[series] > 0:
			p.channels = opampChannels[series]
		case len(core) == 4 && core[:2] == "16" && channelDigit(core[3]) > 0:
			// OPA161x, OPA164x: the last digit is the channel count.
			p.channels = channelDigit(core[3])
			core = core[:3]
		case len(core) == 4 && (core[0] == '2' || core[0] == '4'):
			p.channels = int(core[0] - '0')
			core = core[1:]
		}
		p.line = "OPA" + core
	case strings.HasPrefix(series, "TLV"):
		p.line = series[:len(series)-1]
		p.channels = channelDigit(series[len(series)-1])
	default:
		p.channels = opampChannels[series]
	}
	return p, true
}

func channelDigit(c byte) int {
	switch c {
	case '1':
		return 1
	case '2':
		return 2
	case '4':
		return 4
	}
	return 0
}

// pinsForChannels gives the standard pin count of a DIP/SOIC op-amp package.
func pinsForChannels(ch int) int {
	if ch == 4 {
		return 14
	}
	if ch > 0 {
		return 8
	}
	return 0
}
