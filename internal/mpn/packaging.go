package mpn

import "strings"

// packagingSuffixes are distributor and reel markers that never change what the part
// is. Longer spellings come first so "-REEL7" is not cut to "7".
var packagingSuffixes = []string{
	"-TRPBF",
	"TRPBF",
	"-REEL13",
	"-REEL7",
	"-REEL",
	"-T&R",
	"-PBF",
	"PBF",
	"-DKR",
	"/TR",
	"-TR",
	"-CT",
	"-ND",
}

// StripPackaging removes tape/reel, lead-free and distributor suffixes from a
// normalized MPN. Anything after '#' is dropped ("LT1763CS8-5#TRPBF"). The result is
// stable: StripPackaging(StripPackaging(x)) == StripPackaging(x).
func StripPackaging(mpn string) string {
	if i := strings.IndexByte(mpn, '#'); i > 0 {
		mpn = mpn[:i]
	}

	for changed := true; changed; {
		changed = false
		for _, suffix := range packagingSuffixes {
			if len(mpn) > len(suffix) && strings.HasSuffix(mpn, suffix) {
				mpn = mpn[:len(mpn)-len(suffix)]
				changed = true
				break
			}
		}
	}
	return strings.TrimRight(mpn, "-/_")
}
