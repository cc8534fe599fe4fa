package handlers

import (
	"regexp"

	"github.com/standardbeagle/mpnkit/internal/types"
)

var (
	winbondNORPattern   = regexp.MustCompile(`^W25([QNX])(\d{2,3})([A-Z]{2})([A-Z0-9]*)$`)
	winbondSDRAMPattern = regexp.MustCompile(`^W98(64|12|25|51|16)([A-Z0-9]{2})([A-Z])([A-Z])(?:-(\d)([A-Z])?)?$`)
)

var winbondNORPackages = map[string]string{
	"SS": "SOIC-8 150mil",
	"SN": "SOIC-8 150mil",
	"SF": "SOIC-16 300mil",
	"ZP": "WSON-8 6x5",
	"ZE": "WSON-8 8x6",
	"TB": "TFBGA-24",
	"S":  "SOIC-8 208mil",
	"F":  "SOIC-16",
	"E":  "WSON-8 6x5",
	"Z":  "WSON-8 8x6",
	"T":  "TFBGA-24",
}

// winbondDensity maps the density code to Mbit. "01" and "02" are the Gbit parts.
var winbondDensity = map[string]int64{
	"10":  1,
	"20":  2,
	"40":  4,
	"80":  8,
	"16":  16,
	"32":  32,
	"64":  64,
	"128": 128,
	"256": 256,
	"512": 512,
	"01":  1024,
	"02":  2048,
}

var winbondSDRAMDensity = map[string]int64{
	"16": 16,
	"64": 64,
	"12": 128,
	"25": 256,
	"51": 512,
}

var winbondSDRAMSpeed = map[string]float64{
	"5": 200,
	"6": 166,
	"7": 143,
}

var winbondSDRAMPackages = map[string]string{
	"H": "TSOP-II-54",
	"B": "VFBGA-54",
}

var winbondGrades = map[string]float64{
	"I": 85,
	"J": 105,
}

// Winbond handles W25 serial NOR/NAND flash and W98 SDRAM.
type Winbond struct {
	base
}

func NewWinbond() *Winbond {
	return &Winbond{base: newBase("Winbond",
		def(types.MemoryWinbond, `^W25[QNX]\d{2,3}[A-Z]{2}`, `^W98(64|12|25|51|16)[A-Z0-9]{2}[A-Z]`),
	)}
}

// norPart splits a W25 MPN. The package code is one or two letters; a two-letter code
// is only taken when the table knows it, so W25Q128JVSIQ reads as S + grade I.
func norPart(m string) (sm []string, pkg string, ok bool) {
	sm = winbondNORPattern.FindStringSubmatch(m)
	if sm == nil {
		return nil, "", false
	}
	rest := m[len("W25")+1+len(sm[2])+2:]
	if len(rest) >= 2 {
		if _, found := winbondNORPackages[rest[:2]]; found {
			return sm, rest[:2], true
		}
	}
	if len(rest) >= 1 {
		if _, found := winbondNORPackages[rest[:1]]; found {
			return sm, rest[:1], true
		}
	}
	return sm, "", true
}

func (h *Winbond) ExtractPackageCode(m string) (string, bool) {
	if sm := winbondSDRAMPattern.FindStringSubmatch(m); sm != nil {
		pkg, ok := winbondSDRAMPackages[sm[4]]
		return pkg, ok
	}
	_, code, ok := norPart(m)
	if !ok || code == "" {
		return "", false
	}
	return winbondNORPackages[code], true
}

func (h *Winbond) ExtractSeries(m string) (string, bool) {
	if sm := winbondSDRAMPattern.FindStringSubmatch(m); sm != nil {
		return "W98" + sm[1] + sm[2] + sm[3], true
	}
	sm, _, ok := norPart(m)
	if !ok {
		return "", false
	}
	return "W25" + sm[1] + sm[2] + sm[3], true
}

func (h *Winbond) Attributes(m string) types.Attributes {
	var a types.Attributes
	if sm := winbondSDRAMPattern.FindStringSubmatch(m); sm != nil {
		a.Family = "W98"
		a.DensityBits = winbondSDRAMDensity[sm[1]] << 20
		if v, ok := winbondSDRAMSpeed[sm[5]]; ok {
			a.SpeedMHz = types.Known(v)
		}
		if g, ok := winbondGrades[sm[6]]; ok {
			a.TempRating = types.Known(g)
		} else if sm[5] != "" {
			a.TempRating = types.Known(70)
		}
		return a
	}

	sm, code, ok := norPart(m)
	if !ok {
		return a
	}
	a.Family = "W25" + sm[1]
	if mbit, ok := winbondDensity[sm[2]]; ok {
		a.DensityBits = mbit << 20
	}
	rest := m[len("W25")+1+len(sm[2])+2+len(code):]
	if len(rest) > 0 {
		if g, ok := winbondGrades[rest[:1]]; ok {
			a.TempRating = types.Known(g)
		}
	}
	return a
}
