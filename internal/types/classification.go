package types

// Classification is the result of classifying one MPN. An empty Types slice means the
// input was not recognized; that is a normal result, not an error.
type Classification struct {
	// Input is the string the caller supplied.
	Input string `json:"input"`
	// MPN is the normalized form every extraction was computed from.
	MPN string `json:"mpn"`
	// Types lists every matching type in registry order, qualified types included.
	Types []ComponentType `json:"types"`
	// Primary is the most specific type claimed by the winning handler.
	Primary    ComponentType `json:"primary,omitempty"`
	Handler    string        `json:"handler,omitempty"`
	Attributes Attributes    `json:"attributes"`
	// Suggestions holds near-miss known parts for unrecognized input.
	Suggestions []string `json:"suggestions,omitempty"`
}

// Recognized reports whether any type matched.
func (c Classification) Recognized() bool {
	return len(c.Types) > 0 && c.Primary.IsValid()
}

// Base returns the base type of the primary classification.
func (c Classification) Base() ComponentType {
	return c.Primary.Base()
}

// Series returns the extracted series, falling back to the normalized MPN.
func (c Classification) Series() string {
	if c.Attributes.Series != "" {
		return c.Attributes.Series
	}
	return c.MPN
}

// Has reports whether t (or a refinement of t) is among the matched types.
func (c Classification) Has(t ComponentType) bool {
	for _, ct := range c.Types {
		if ct.IsA(t) {
			return true
		}
	}
	return false
}
