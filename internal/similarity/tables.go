package similarity

import "fmt"

var opAmpFamilies = Families{
	{Name: "dual general purpose", Members: []string{"LM358", "LM258", "LM158", "LM2904", "MC1458", "RC4558", "NJM4558", "KA358"}},
	{Name: "quad general purpose", Members: []string{"LM324", "LM224", "LM124", "LM2902", "MC3403", "KA324"}},
	{Name: "JFET dual", Members: []string{"TL072", "TL082", "LF353"}},
	{Name: "JFET single", Members: []string{"TL071", "TL081", "LF351"}},
	{Name: "JFET quad", Members: []string{"TL074", "TL084", "LF347"}},
	{Name: "NE5532", Members: []string{"NE5532", "SA5532"}},
	{Name: "NE5534", Members: []string{"NE5534", "SA5534"}},
}

// opAmpTechnologies group lines built the same way. Parts of one technology with
// different channel counts are not drop-in swaps but are close relatives.
var opAmpTechnologies = Families{
	{Name: "bipolar general purpose", Members: []string{
		"LM358", "LM258", "LM158", "LM2904", "LM324", "LM224", "LM124", "LM2902",
		"MC1458", "MC3403", "KA358", "KA324", "RC4558", "NJM4558",
	}},
	{Name: "JFET input", Members: []string{
		"TL071", "TL072", "TL074", "TL081", "TL082", "TL084", "LF351", "LF353", "LF347",
	}},
}

var sensorFamilies = Families{
	{Name: "SHT3x", Members: []string{"SHT30", "SHT31", "SHT35"}},
	{Name: "SHT4x", Members: []string{"SHT40", "SHT41", "SHT43", "SHT45"}},
	{Name: "TMP11x", Members: []string{"TMP112", "TMP116", "TMP117"}},
	{Name: "ADXL34x", Members: []string{"ADXL343", "ADXL345", "ADXL346"}},
	{Name: "BMP28x", Members: []string{"BMP280", "BMP285"}},
}

var discreteFamilies = Families{
	{Name: "2N2222", Members: []string{"2N2222", "PN2222", "MMBT2222", "P2N2222"}},
	{Name: "2N3904", Members: []string{"2N3904", "MMBT3904", "PN3904"}},
	{Name: "2N3906", Members: []string{"2N3906", "MMBT3906", "PN3906"}},
	{Name: "1N400x rectifiers", Members: []string{"1N4001", "1N4002", "1N4003", "1N4004", "1N4005", "1N4006", "1N4007"}},
	{Name: "1N4148 small signal", Members: []string{"1N4148", "1N914", "1N4448"}},
	{Name: "1N581x Schottky", Members: []string{"1N5817", "1N5818", "1N5819"}},
	{Name: "IRF540/IRF530 line", Members: []string{"IRF530", "IRF540"}},
	{Name: "2N7000/BS170", Members: []string{"2N7000", "BS170"}},
}

var (
	regulatorMakers   = []string{"LM", "L", "MC", "UA", "KA"}
	regulatorVoltages = []string{"05", "06", "08", "09", "10", "12", "15", "18", "24"}
)

// regulatorFamilies groups 78xx regulators by output voltage and current class:
// LM7805, L7805, MC7805 and UA7805 are one family, LM78L05 another.
func regulatorFamilies() Families {
	var out Families
	for _, class := range []string{"", "M", "L"} {
		for _, v := range regulatorVoltages {
			core := "78" + class + v
			f := Family{Name: fmt.Sprintf("78%sxx %sV", class, v)}
			for _, m := range regulatorMakers {
				f.Members = append(f.Members, m+core)
			}
			out = append(out, f)
		}
	}
	return out
}
