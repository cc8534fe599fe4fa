package handlers

import (
	"github.com/standardbeagle/mpnkit/internal/types"
)

// discreteRating is the polarity and breakdown voltage (VCEO for bipolar parts,
// V(BR)DSS for MOSFETs) of a transistor line.
type discreteRating struct {
	polarity types.Polarity
	volts    float64
}

const (
	npn = types.PolarityNPN
	pnp = types.PolarityPNP
	nch = types.PolarityNChannel
	pch = types.PolarityPChannel
)

// smallSignal rates the JEDEC numbers shared by 2N, PN and MMBT parts. Voltages are
// those of the A grade, which is what distributors stock.
var smallSignal = map[string]discreteRating{
	"2222": {npn, 40},
	"2907": {pnp, 60},
	"3904": {npn, 40},
	"3906": {pnp, 40},
	"4401": {npn, 40},
	"4403": {pnp, 40},
	"5401": {pnp, 150},
	"5551": {npn, 160},
	"7000": {nch, 60},
	"7002": {nch, 60},
}

// europeanSmallSignal rates BC parts by their three-digit number.
var europeanSmallSignal = map[string]discreteRating{
	"546": {npn, 65}, "547": {npn, 45}, "548": {npn, 30}, "549": {npn, 30},
	"556": {pnp, 65}, "557": {pnp, 45}, "558": {pnp, 30}, "559": {pnp, 30},
	"807": {pnp, 45}, "817": {npn, 45},
	"846": {npn, 65}, "847": {npn, 45}, "848": {npn, 30},
	"856": {pnp, 65}, "857": {pnp, 45}, "858": {pnp, 30},
}

// mosfetRatings covers vendor MOSFET series whose numbers do not encode polarity or
// voltage. Keys match as prefixes not followed by another digit.
var mosfetRatings = ratingTable{
	// International Rectifier / Infineon
	"IRF510":    {nch, 100},
	"IRF520":    {nch, 100},
	"IRF530":    {nch, 100},
	"IRF540":    {nch, 100},
	"IRF640":    {nch, 200},
	"IRF740":    {nch, 400},
	"IRF840":    {nch, 500},
	"IRFZ44":    {nch, 55},
	"IRLZ44":    {nch, 55},
	"IRF3205":   {nch, 55},
	"IRF1405":   {nch, 55},
	"IRF9530":   {pch, 100},
	"IRF9540":   {pch, 100},
	"IRF9Z34":   {pch, 55},
	"IRF4905":   {pch, 55},
	"IRF5305":   {pch, 55},
	"IRF7404":   {pch, 20},
	"IRF7406":   {pch, 30},
	"IRF7413":   {nch, 30},
	"IRLML2502": {nch, 20},
	"IRLML6402": {pch, 20},
	"IRLML6344": {nch, 30},
	// Alpha & Omega
	"AO3400":  {nch, 30},
	"AO3401":  {pch, 30},
	"AO3402":  {nch, 30},
	"AO3407":  {pch, 30},
	"AO3414":  {nch, 20},
	"AO3415":  {pch, 20},
	"AO4407":  {pch, 30},
	"AO4435":  {pch, 30},
	"AOD403":  {pch, 30},
	"AOD409":  {pch, 60},
	"AOD4184": {nch, 40},
	"AOD4185": {pch, 40},
	"AON6414": {nch, 30},
}

type ratingTable map[string]discreteRating

// lookup returns the rating of the longest key that starts m and is not followed by
// a digit, so IRF530 does not claim IRF5305.
func (t ratingTable) lookup(m string) (discreteRating, bool) {
	var (
		best  discreteRating
		found int
	)
	for k, r := range t {
		if len(k) <= found || len(m) < len(k) || m[:len(k)] != k {
			continue
		}
		if len(m) > len(k) && isDigit(m[len(k)]) {
			continue
		}
		best, found = r, len(k)
	}
	return best, found > 0
}

// apply copies a rating into a, leaving zero fields Unknown.
func (r discreteRating) apply(a *types.Attributes) {
	a.Polarity = r.polarity
	if r.volts > 0 {
		a.VoltageRating = types.Known(r.volts)
	}
}

// channelPolarity reads the N/P channel letter vendors print in a MOSFET series.
func channelPolarity(c byte) types.Polarity {
	switch c {
	case 'N':
		return nch
	case 'P':
		return pch
	}
	return types.PolarityUnknown
}
