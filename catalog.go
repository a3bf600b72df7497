package solarroi

import (
	"slices"
	"strings"
)

// Kind is the type of input a model variable expects.
type Kind string

const (
	KindNumber   Kind = "number"
	KindPercent  Kind = "percent"
	KindCurrency Kind = "currency"
	KindBoolean  Kind = "boolean"
	KindSelect   Kind = "select"
)

func (k Kind) numeric() bool {
	return k == KindNumber || k == KindPercent || k == KindCurrency
}

// Definition describes a model variable the practitioner can edit.
type Definition struct {
	ID      string
	Label   string
	Kind    Kind
	Section string
	Unit    string
	Default any
	Options []string // for KindSelect
	Min     *float64 // defaults to 0 for numeric kinds
	Max     *float64 // defaults to 100 for percents
}

// Catalog sections, in display order.
const (
	SectionSystem     = "System Configuration"
	SectionFinancial  = "Financial Parameters"
	SectionUtility    = "Utility Rates"
	SectionIncentives = "Incentives"
	SectionOperations = "Operations & Maintenance"
)

var sectionDescriptions = map[string]string{
	SectionSystem:     "Define core system sizing and hardware assumptions.",
	SectionFinancial:  "Tune cost of capital and lifecycle assumptions.",
	SectionUtility:    "Set grid pricing and escalation assumptions.",
	SectionIncentives: "Apply credits and rebates that affect project economics.",
	SectionOperations: "Ongoing costs and coverage assumptions.",
}

var catalog = []Definition{
	{ID: VarSystemCapacity, Label: "System Capacity", Kind: KindNumber, Section: SectionSystem, Unit: "MW", Default: 2.5},
	{ID: "panel_efficiency", Label: "Panel Efficiency", Kind: KindPercent, Section: SectionSystem, Default: 22.0},
	{ID: "inverter_efficiency", Label: "Inverter Efficiency", Kind: KindPercent, Section: SectionSystem, Default: 98.0},
	{ID: "battery_included", Label: "Battery Storage Included", Kind: KindBoolean, Section: SectionSystem, Default: true},
	{ID: "battery_capacity", Label: "Battery Capacity", Kind: KindNumber, Section: SectionSystem, Unit: "MWh", Default: 4.0},

	{ID: VarCapexPerWatt, Label: "CapEx per Watt", Kind: KindCurrency, Section: SectionFinancial, Default: 1.28},
	{ID: VarDiscountRate, Label: "Discount Rate", Kind: KindPercent, Section: SectionFinancial, Default: 5.5},
	{ID: "inflation_rate", Label: "Inflation Rate", Kind: KindPercent, Section: SectionFinancial, Default: 2.5},
	{ID: VarProjectLifetime, Label: "Project Lifetime", Kind: KindNumber, Section: SectionFinancial, Unit: "years", Default: 25.0},
	{ID: "degradation_rate", Label: "Annual Degradation", Kind: KindPercent, Section: SectionFinancial, Default: 0.5},

	{ID: VarUtilityRate, Label: "Utility Rate (Average)", Kind: KindCurrency, Section: SectionUtility, Unit: "$/kWh", Default: 0.145},
	{ID: "demand_charge", Label: "Demand Charge", Kind: KindCurrency, Section: SectionUtility, Unit: "$/kW", Default: 12.5},
	{ID: "escalation_rate", Label: "Utility Escalation Rate", Kind: KindPercent, Section: SectionUtility, Default: 3.2},
	{ID: VarNetMetering, Label: "Net Metering Available", Kind: KindBoolean, Section: SectionUtility, Default: true},

	{ID: VarFederalITC, Label: "Federal ITC", Kind: KindPercent, Section: SectionIncentives, Default: 30.0},
	{ID: VarStateRebate, Label: "State Rebate", Kind: KindCurrency, Section: SectionIncentives, Default: 250000.0},
	{ID: "depreciation_method", Label: "Depreciation Method", Kind: KindSelect, Section: SectionIncentives, Default: "MACRS", Options: []string{"MACRS", "Straight Line", "None"}},

	{ID: "om_fixed", Label: "O&M Fixed Annual", Kind: KindCurrency, Section: SectionOperations, Default: 18000.0},
	{ID: "om_variable", Label: "O&M Variable", Kind: KindCurrency, Section: SectionOperations, Unit: "$/kWh", Default: 0.015},
	{ID: "insurance_rate", Label: "Insurance Rate", Kind: KindPercent, Section: SectionOperations, Default: 0.25},
	{ID: "warranty_years", Label: "Warranty Period", Kind: KindNumber, Section: SectionOperations, Unit: "years", Default: 10.0},
}

// Catalog returns the definitions of all the model variables, in display order.
func Catalog() []Definition {
	return slices.Clone(catalog)
}

// LookupDefinition returns the definition of variable 'id'.
func LookupDefinition(id string) (Definition, bool) {
	for _, d := range catalog {
		if d.ID == id {
			return d, true
		}
	}
	return Definition{}, false
}

// Sections returns the catalog sections in display order.
func Sections() []string {
	var sections []string
	for _, d := range catalog {
		if !slices.Contains(sections, d.Section) {
			sections = append(sections, d.Section)
		}
	}
	return sections
}

// SectionDescription returns the one line description of a section.
func SectionDescription(section string) string { return sectionDescriptions[section] }

// DefaultVariables returns a new VariableMap holding every catalog default.
func DefaultVariables() VariableMap {
	vars := make(VariableMap, len(catalog))
	for _, d := range catalog {
		vars[d.ID] = d.Default
	}
	return vars
}

// Constraints returns the effective bounds of d; hasLo and hasHi are false
// when the matching side is unbounded.
func (d Definition) Constraints() (lo float64, hasLo bool, hi float64, hasHi bool) {
	if d.Min != nil {
		lo, hasLo = *d.Min, true
	} else if d.Kind.numeric() {
		lo, hasLo = 0, true
	}
	if d.Max != nil {
		hi, hasHi = *d.Max, true
	} else if d.Kind == KindPercent {
		hi, hasHi = 100, true
	}
	return
}

// Value returns the current value of d in vars, or its default.
func (d Definition) Value(vars VariableMap) any {
	if v, ok := vars[d.ID]; ok && v != nil {
		return v
	}
	return d.Default
}

// Normalize returns the value a practitioner edit should store for d.
// Booleans and selections are kept as is; numeric values are parsed and
// clamped to the definition's bounds, and values that are not numbers are
// kept untouched.
func (d Definition) Normalize(value any) any {
	if !d.Kind.numeric() {
		return value
	}
	n, ok := Number(value)
	if !ok {
		return value
	}
	lo, hasLo, hi, hasHi := d.Constraints()
	if hasLo && n < lo {
		n = lo
	}
	if hasHi && n > hi {
		n = hi
	}
	return n
}

// IsChanged reports whether value differs from d's default. Numeric kinds
// compare numerically so 25 and "25" are the same.
func (d Definition) IsChanged(value any) bool {
	if d.Kind.numeric() {
		a, aok := Number(value)
		b, bok := Number(d.Default)
		if !aok || !bok {
			// NaN never equals anything.
			return true
		}
		return a != b
	}
	return value != d.Default
}

// HighValueWarning is the warning returned by Warning.
const HighValueWarning = "This value is unusually high."

// Warning returns a warning for unusual values of numeric variables, or "".
func (d Definition) Warning(value any) string {
	if !d.Kind.numeric() {
		return ""
	}
	n, ok := Number(value)
	if !ok {
		return ""
	}
	_, _, hi, hasHi := d.Constraints()
	if hasHi && n >= hi*0.9 {
		return HighValueWarning
	}
	if d.Kind == KindPercent && n >= 60 {
		return HighValueWarning
	}
	return ""
}

// SearchDefinitions returns the definitions whose label or section contains
// 'query' (case insensitive). With changedOnly, only the variables whose
// value in vars differs from the default are kept.
func SearchDefinitions(vars VariableMap, query string, changedOnly bool) []Definition {
	q := strings.ToLower(query)
	var found []Definition
	for _, d := range catalog {
		if !strings.Contains(strings.ToLower(d.Label), q) && !strings.Contains(strings.ToLower(d.Section), q) {
			continue
		}
		if changedOnly && !d.IsChanged(d.Value(vars)) {
			continue
		}
		found = append(found, d)
	}
	return found
}

// ChangedCount returns the number of changed variables per section.
func ChangedCount(vars VariableMap) map[string]int {
	counts := make(map[string]int)
	for _, d := range catalog {
		if d.IsChanged(d.Value(vars)) {
			counts[d.Section]++
		}
	}
	return counts
}

// SetVariables returns a copy of vars with 'updates' applied. Catalog
// variables are normalized; unknown keys are stored as given.
func SetVariables(vars, updates VariableMap) VariableMap {
	next := vars.Clone()
	if next == nil {
		next = DefaultVariables()
	}
	for key, value := range updates {
		if d, ok := LookupDefinition(key); ok {
			value = d.Normalize(value)
		}
		next[key] = value
	}
	return next
}

// ResetVariables returns a copy of vars with the given ids set back to their
// default. Ids unknown to the catalog are left alone.
func ResetVariables(vars VariableMap, ids ...string) VariableMap {
	next := vars.Clone()
	if next == nil {
		next = make(VariableMap)
	}
	for _, id := range ids {
		if d, ok := LookupDefinition(id); ok {
			next[id] = d.Default
		}
	}
	return next
}

// ResetSection returns a copy of vars with every variable of 'section' set back to its default.
func ResetSection(vars VariableMap, section string) VariableMap {
	var ids []string
	for _, d := range catalog {
		if d.Section == section {
			ids = append(ids, d.ID)
		}
	}
	return ResetVariables(vars, ids...)
}
