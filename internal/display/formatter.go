// Package display renders engine results for the terminal.
package display

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/standardbeagle/mpnkit/internal/advisor"
	"github.com/standardbeagle/mpnkit/internal/engine"
	"github.com/standardbeagle/mpnkit/internal/mpn"
	"github.com/standardbeagle/mpnkit/internal/semantic"
	"github.com/standardbeagle/mpnkit/internal/similarity"
	"github.com/standardbeagle/mpnkit/internal/types"
	"github.com/standardbeagle/mpnkit/internal/units"
)

// Formatter formats engine results for display
type Formatter struct {
	options FormatterOptions
}

// FormatterOptions controls formatting
type FormatterOptions struct {
	Format  string // "text", "json", "compact"
	Color   bool   // ANSI colors in text output
	Verbose bool   // Show every attribute, unknown ones included
}

// NewFormatter creates a new formatter
func NewFormatter(options FormatterOptions) *Formatter {
	if options.Format == "" {
		options.Format = "text"
	}
	return &Formatter{options: options}
}

// Colored reports whether output carries ANSI colors.
func (f *Formatter) Colored() bool {
	return f.options.Color
}

func (f *Formatter) paint(color func(a ...interface{}) string, s string) string {
	if !f.options.Color {
		return s
	}
	return color(s)
}

func (f *Formatter) formatJSON(v interface{}) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data)
}

// Classification formats one classification.
func (f *Formatter) Classification(c types.Classification) string {
	switch f.options.Format {
	case "json":
		return f.formatJSON(c)
	case "compact":
		return compactClassification(c)
	}

	var sb strings.Builder
	if !c.Recognized() {
		sb.WriteString(fmt.Sprintf("%s  %s\n", c.Input, f.paint(pterm.Yellow, "unrecognized")))
		if len(c.Suggestions) > 0 {
			sb.WriteString("  Did you mean: " + strings.Join(c.Suggestions, ", ") + "\n")
		}
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("%s  %s\n", f.paint(pterm.LightCyan, c.MPN), f.paint(pterm.Green, string(c.Primary))))
	sb.WriteString(fmt.Sprintf("  Types:    %s\n", joinTypes(c.Types)))
	if c.Handler != "" {
		sb.WriteString(fmt.Sprintf("  Handler:  %s\n", c.Handler))
	}

	rows := attributeRows(c.Attributes, f.options.Verbose)
	if len(rows) > 0 {
		table := pterm.TableData{{"Attribute", "Value"}}
		table = append(table, rows...)
		sb.WriteString(f.renderTable(table))
	}
	return sb.String()
}

func compactClassification(c types.Classification) string {
	if !c.Recognized() {
		return c.Input + " ?"
	}
	parts := []string{c.MPN, string(c.Primary)}
	if c.Attributes.Series != "" {
		parts = append(parts, "series="+c.Attributes.Series)
	}
	if c.Attributes.PackageCode != "" {
		parts = append(parts, "pkg="+c.Attributes.PackageCode)
	}
	return strings.Join(parts, " ")
}

// Batch formats many classifications as one table.
func (f *Formatter) Batch(cs []types.Classification) string {
	switch f.options.Format {
	case "json":
		return f.formatJSON(cs)
	case "compact":
		lines := make([]string, len(cs))
		for i, c := range cs {
			lines[i] = compactClassification(c)
		}
		return strings.Join(lines, "\n") + "\n"
	}

	table := pterm.TableData{{"Input", "Type", "Handler", "Series", "Package"}}
	recognized := 0
	for _, c := range cs {
		if c.Recognized() {
			recognized++
		}
		table = append(table, []string{c.Input, string(c.Primary), c.Handler, c.Attributes.Series, c.Attributes.PackageCode})
	}
	return f.renderTable(table) + fmt.Sprintf("%d of %d recognized\n", recognized, len(cs))
}

// Comparison formats a similarity result.
func (f *Formatter) Comparison(cmp engine.Comparison) string {
	switch f.options.Format {
	case "json":
		return f.formatJSON(cmp)
	case "compact":
		return fmt.Sprintf("%s %s %.2f %s", cmp.A.MPN, cmp.B.MPN, cmp.Score, cmp.Band)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s vs %s\n", cmp.A.MPN, cmp.B.MPN))
	sb.WriteString(fmt.Sprintf("  Score:  %s (%s)\n", f.paintBand(cmp.Band, fmt.Sprintf("%.2f", cmp.Score)), cmp.Band))
	sb.WriteString(fmt.Sprintf("  Reason: %s\n", cmp.Reason))
	if cmp.Calculator != "" {
		sb.WriteString(fmt.Sprintf("  Rules:  %s\n", cmp.Calculator))
	}
	return sb.String()
}

func (f *Formatter) paintBand(b similarity.Band, s string) string {
	switch b {
	case similarity.BandExact, similarity.BandHigh:
		return f.paint(pterm.Green, s)
	case similarity.BandMedium:
		return f.paint(pterm.Yellow, s)
	}
	return f.paint(pterm.Red, s)
}

// Verdict formats a replacement decision, one violation per branch line.
func (f *Formatter) Verdict(candidate, original string, v advisor.Verdict) string {
	switch f.options.Format {
	case "json":
		return f.formatJSON(v)
	case "compact":
		return fmt.Sprintf("%s -> %s %t", candidate, original, v.Replaceable)
	}

	var sb strings.Builder
	if v.Replaceable {
		sb.WriteString(fmt.Sprintf("%s %s can replace %s\n", f.paint(pterm.Green, "✓"), candidate, original))
	} else {
		sb.WriteString(fmt.Sprintf("%s %s cannot replace %s\n", f.paint(pterm.Red, "✗"), candidate, original))
	}
	sb.WriteString(fmt.Sprintf("  Similarity: %.2f (%s)\n", v.Score, v.Band))

	for i, viol := range v.Violations {
		branch := "├─→ "
		if i == len(v.Violations)-1 {
			branch = "└─→ "
		}
		sb.WriteString("  " + branch + "[" + viol.Rule + "] " + viol.Message + "\n")
	}
	return sb.String()
}

// Candidates formats part numbers found in free text.
func (f *Formatter) Candidates(cands []mpn.Candidate, classify func(string) types.Classification) string {
	if f.options.Format == "json" {
		return f.formatJSON(cands)
	}
	if len(cands) == 0 {
		return "No part numbers found\n"
	}
	if f.options.Format == "compact" {
		lines := make([]string, len(cands))
		for i, c := range cands {
			lines[i] = c.MPN
		}
		return strings.Join(lines, "\n") + "\n"
	}

	table := pterm.TableData{{"Offset", "Text", "Type", "Hint"}}
	for _, c := range cands {
		t := ""
		if classify != nil {
			t = string(classify(c.Text).Primary)
		}
		table = append(table, []string{strconv.Itoa(c.Offset), c.Text, t, string(c.Hint)})
	}
	return f.renderTable(table)
}

// Suggestions formats fuzzy matches for an unrecognized part number.
func (f *Formatter) Suggestions(m string, matches []semantic.FuzzyMatch) string {
	if f.options.Format == "json" {
		return f.formatJSON(map[string]interface{}{"mpn": m, "suggestions": matches})
	}
	if len(matches) == 0 {
		return fmt.Sprintf("No known parts close to %s\n", m)
	}
	var sb strings.Builder
	for _, s := range matches {
		if f.options.Format == "compact" {
			sb.WriteString(s.Term + "\n")
			continue
		}
		sb.WriteString(fmt.Sprintf("  %-12s %.2f\n", s.Term, s.Similarity))
	}
	return sb.String()
}

func (f *Formatter) renderTable(data pterm.TableData) string {
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		// Fall back to tab-separated rows
		var sb strings.Builder
		for _, row := range data {
			sb.WriteString(strings.Join(row, "\t") + "\n")
		}
		return sb.String()
	}
	return out + "\n"
}

func joinTypes(ts []types.ComponentType) string {
	s := make([]string, len(ts))
	for i, t := range ts {
		s[i] = string(t)
	}
	return strings.Join(s, ", ")
}

// attributeRows lists the attributes worth showing, in a fixed order. Unknown
// values are shown only when verbose.
func attributeRows(a types.Attributes, verbose bool) [][]string {
	var rows [][]string
	add := func(name, value string, known bool) {
		if known || verbose {
			if !known {
				value = "unknown"
			}
			rows = append(rows, []string{name, value})
		}
	}
	quantity := func(name string, q types.Quantity, u units.Unit) {
		v := ""
		if q.Known {
			v = units.Format(q.Value, u)
		}
		add(name, v, q.Known)
	}
	plain := func(name string, q types.Quantity, suffix string) {
		add(name, q.String()+suffix, q.Known)
	}

	add("series", a.Series, a.Series != "")
	add("package", a.PackageCode, a.PackageCode != "")
	add("vendor", a.Vendor, a.Vendor != "")
	add("family", a.Family, a.Family != "")
	add("function", a.Function, a.Function != "")
	add("polarity", a.Polarity.String(), a.Polarity != types.PolarityUnknown)
	add("mounting", a.Mounting.String(), a.Mounting != types.MountingUnknown)

	quantity("capacitance", a.Capacitance, units.Farad)
	quantity("resistance", a.Resistance, units.Ohm)
	quantity("voltage rating", a.VoltageRating, units.Volt)
	quantity("output voltage", a.OutputVoltage, units.Volt)
	quantity("reverse voltage", a.ReverseVoltage, units.Volt)
	quantity("current rating", a.CurrentRating, units.Ampere)
	plain("tolerance", a.Tolerance, "%")
	plain("temperature rating", a.TempRating, "°C")
	plain("speed", a.SpeedMHz, " MHz")
	plain("pitch", a.Pitch, " mm")

	add("dielectric", a.Dielectric.String(), a.Dielectric != types.DielectricUnknown)
	add("lifetime", a.Lifetime.String(), a.Lifetime != types.LifetimeUnknown)
	add("pins", strconv.Itoa(a.PinCount), a.PinCount > 0)
	add("channels", strconv.Itoa(a.Channels), a.Channels > 0)
	add("density", formatBits(a.DensityBits), a.DensityBits > 0)
	add("flash", formatBytes(a.FlashBytes), a.FlashBytes > 0)
	add("wifi generation", strconv.Itoa(a.WiFiGeneration), a.WiFiGeneration > 0)
	add("form factor", a.FormFactor, a.FormFactor != "")
	add("logic family", a.LogicFamily, a.LogicFamily != "")
	add("gender", a.Gender.String(), a.Gender != types.GenderUnknown)
	add("orientation", a.Orientation.String(), a.Orientation != types.OrientationUnknown)
	add("keying", a.Keying.String(), a.Keying != types.KeyingUnknown)
	add("sensor", a.SensorKind.String(), a.SensorKind != types.SensorKindUnknown)
	return rows
}

func formatBits(n int64) string {
	switch {
	case n >= 1<<30 && n%(1<<30) == 0:
		return fmt.Sprintf("%d Gbit", n>>30)
	case n >= 1<<20 && n%(1<<20) == 0:
		return fmt.Sprintf("%d Mbit", n>>20)
	case n >= 1<<10 && n%(1<<10) == 0:
		return fmt.Sprintf("%d Kbit", n>>10)
	}
	return fmt.Sprintf("%d bit", n)
}

func formatBytes(n int64) string {
	switch {
	case n >= 1<<20 && n%(1<<20) == 0:
		return fmt.Sprintf("%d MB", n>>20)
	case n >= 1<<10 && n%(1<<10) == 0:
		return fmt.Sprintf("%d KB", n>>10)
	}
	return fmt.Sprintf("%d B", n)
}
