package handlers

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/standardbeagle/mpnkit/internal/types"
)

var (
	espChipToken    = regexp.MustCompile(`^ESP(8266|8285|32)[A-Z]*$`)
	espVariantToken = regexp.MustCompile(`^[SCH]\d$`)
	espFlashToken   = regexp.MustCompile(`^N(\d{1,2})(?:R(\d{1,2}))?$`)
)

var espFormFactors = map[string]bool{
	"WROOM":  true,
	"WROVER": true,
	"MINI":   true,
	"SOLO":   true,
}

// espWiFiGeneration is 6 for the Wi-Fi 6 chips and 0 for the 802.15.4-only H2.
var espWiFiGeneration = map[string]int{
	"ESP32-C6": 6,
	"ESP32-C5": 6,
	"ESP32-H2": 0,
}

type espPart struct {
	chip       string
	formFactor string
	series     string
	flashMB    int
}

func parseEspressif(m string) (espPart, bool) {
	tokens := strings.Split(m, "-")
	sm := espChipToken.FindStringSubmatch(tokens[0])
	if sm == nil {
		return espPart{}, false
	}
	p := espPart{chip: "ESP" + sm[1], formFactor: "chip"}
	rest := tokens[1:]
	if len(rest) > 0 && espVariantToken.MatchString(rest[0]) {
		p.chip += "-" + rest[0]
		rest = rest[1:]
	}

	kept := []string{p.chip}
	for _, tok := range rest {
		if fm := espFlashToken.FindStringSubmatch(tok); fm != nil {
			mb, err := strconv.Atoi(fm[1])
			if err == nil {
				p.flashMB = mb
			}
			continue
		}
		if espFormFactors[tok] {
			p.formFactor = tok
		}
		kept = append(kept, tok)
	}
	p.series = strings.Join(kept, "-")
	return p, true
}

// Espressif handles ESP8266/ESP32 chips and modules. Module names are dash-separated:
// ESP32-S3-WROOM-1-N16R8 is the S3 chip on a WROOM-1 module with 16 MB flash.
type Espressif struct {
	base
}

func NewEspressif() *Espressif {
	return &Espressif{base: newBase("Espressif",
		def(types.RFModuleEspressif, `^ESP(8266|8285|32)`),
	)}
}

func (h *Espressif) ExtractPackageCode(m string) (string, bool) {
	p, ok := parseEspressif(m)
	if !ok || p.formFactor == "chip" {
		return "", false
	}
	return p.formFactor, true
}

// ExtractSeries drops the flash/PSRAM option.
func (h *Espressif) ExtractSeries(m string) (string, bool) {
	p, ok := parseEspressif(m)
	return p.series, ok
}

func (h *Espressif) Attributes(m string) types.Attributes {
	var a types.Attributes
	p, ok := parseEspressif(m)
	if !ok {
		return a
	}
	a.Family = p.chip
	a.FormFactor = p.formFactor
	a.FlashBytes = int64(p.flashMB) << 20
	if gen, ok := espWiFiGeneration[p.chip]; ok {
		a.WiFiGeneration = gen
	} else {
		a.WiFiGeneration = 4
	}
	if p.formFactor != "chip" {
		a.Mounting = types.MountingSMD
	}
	return a
}
