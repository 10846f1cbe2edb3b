package placement

import "strings"

// PrefixRule maps a reference-designator prefix to artwork search
// keywords.
type PrefixRule struct {
	Prefix   string
	Keywords []string
}

// SubstringRule maps a footprint or value substring to artwork search
// keywords. Rules are evaluated in declaration order and the first
// match short-circuits.
type SubstringRule struct {
	Pattern  string
	Keywords []string
}

// RuleTable is the static heuristic mapping ruleset: three independent
// ordered rule lists keyed by reference prefix, footprint substring and
// value keyword. Pure data, separate from the evaluation function, so
// it stays unit-testable and swappable.
type RuleTable struct {
	Prefixes   []PrefixRule
	Footprints []SubstringRule
	Values     []SubstringRule
}

// DefaultRules returns the built-in ruleset, tuned for the common
// hobbyist part families.
func DefaultRules() *RuleTable {
	return &RuleTable{
		Prefixes: []PrefixRule{
			{Prefix: "R", Keywords: []string{"Resistor", "resistor", "RES"}},
			{Prefix: "C", Keywords: []string{"Capacitor", "capacitor", "CAP"}},
			{Prefix: "D", Keywords: []string{"Diode", "diode", "LED"}},
			{Prefix: "Q", Keywords: []string{"Si2301", "Transistor", "transistor", "SOT-23"}},
			{Prefix: "U", Keywords: []string{"IC", "8 PIN IC", "IC-Module", "chip"}},
			{Prefix: "J", Keywords: []string{"CONN", "connector", "JST", "USB"}},
			{Prefix: "SW", Keywords: []string{"Button", "Switch", "SW-SPDT", "SW-SPST"}},
			{Prefix: "Y", Keywords: []string{"Crystal", "crystal", "OSC"}},
		},
		Footprints: []SubstringRule{
			{Pattern: "SOT-23-5", Keywords: []string{"AP211K", "AP2112", "SOT-23-5"}},
			{Pattern: "SOT-23", Keywords: []string{"Si2301", "SOT-23", "transistor"}},
			{Pattern: "C_0603", Keywords: []string{"Capacitor", "capacitor"}},
			{Pattern: "R_0603", Keywords: []string{"Resistor", "resistor"}},
			{Pattern: "LED_0603", Keywords: []string{"LED", "led"}},
			{Pattern: "D_SMA", Keywords: []string{"Diode", "diode"}},
			{Pattern: "USB_C", Keywords: []string{"USB", "usb"}},
			{Pattern: "ESP32", Keywords: []string{"IC-Module", "ESP32"}},
			{Pattern: "JST_SH", Keywords: []string{"CONN", "JST"}},
			{Pattern: "PinSocket", Keywords: []string{"CONN", "connector"}},
			{Pattern: "SW_SPST", Keywords: []string{"Button", "button"}},
			{Pattern: "SW_SPDT", Keywords: []string{"SW-SPDT", "switch"}},
		},
		Values: []SubstringRule{
			{Pattern: "led", Keywords: []string{"LED", "led"}},
			{Pattern: "esp32", Keywords: []string{"IC-Module", "ESP32"}},
			{Pattern: "usb", Keywords: []string{"USB", "usb"}},
			{Pattern: "crystal", Keywords: []string{"Crystal", "crystal"}},
		},
	}
}

// SearchTerms builds the ordered candidate keyword list for a
// component: prefix rule keywords, then the first matching footprint
// rule, then the first matching value rule, with special-case keywords
// prepended last so they are searched first.
func (rt *RuleTable) SearchTerms(c Component) []string {
	footprint := strings.ToLower(c.Footprint)
	value := strings.ToLower(c.Value)

	var terms []string
	if kw, ok := rt.prefixKeywords(c.Prefix()); ok {
		terms = append(terms, kw...)
	}
	for _, rule := range rt.Footprints {
		if strings.Contains(footprint, strings.ToLower(rule.Pattern)) {
			terms = append(terms, rule.Keywords...)
			break
		}
	}
	for _, rule := range rt.Values {
		if strings.Contains(value, rule.Pattern) {
			terms = append(terms, rule.Keywords...)
			break
		}
	}

	// Special-case overrides: first hit wins, its keywords are searched
	// ahead of everything above. A diode whose value mentions "led" is
	// an LED regardless of its generic footprint.
	switch {
	case strings.HasPrefix(c.Reference, "D") && strings.Contains(value, "led"):
		terms = append([]string{"LED", "led"}, terms...)
	case strings.Contains(value, "esp32") || strings.Contains(footprint, "esp32"):
		terms = append([]string{"IC-Module", "ESP32"}, terms...)
	case strings.Contains(footprint, "usb") || strings.Contains(value, "usb"):
		terms = append([]string{"USB", "usb"}, terms...)
	}
	return terms
}

// prefixKeywords finds the rule for the longest declared prefix that
// leads the given designator prefix, so "SW" designators reach the SW
// rule instead of stopping at "S".
func (rt *RuleTable) prefixKeywords(prefix string) ([]string, bool) {
	if prefix == "" {
		return nil, false
	}
	best := -1
	bestLen := 0
	for i, rule := range rt.Prefixes {
		if strings.HasPrefix(prefix, rule.Prefix) && len(rule.Prefix) > bestLen {
			best = i
			bestLen = len(rule.Prefix)
		}
	}
	if best < 0 {
		return nil, false
	}
	return rt.Prefixes[best].Keywords, true
}
