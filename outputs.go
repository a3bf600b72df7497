package solarroi

import (
	"encoding/json"
	"fmt"
	"math"
)

// Confidence tells how trustworthy the derivation of a metric is. It is
// descriptive metadata and never changes the computation.
type Confidence string

const (
	Computed Confidence = "computed"
	Partial  Confidence = "partial"
	Stubbed  Confidence = "stubbed"
)

// Metric is a single output value with its confidence tag.
type Metric struct {
	Value      float64    `json:"value"`
	Confidence Confidence `json:"confidence"`
}

// MarshalJSON writes a non-finite value as null, the way a browser would, so
// that a degenerate project can still be persisted.
func (m Metric) MarshalJSON() ([]byte, error) {
	type jmetric struct {
		Value      *float64   `json:"value"`
		Confidence Confidence `json:"confidence"`
	}
	jm := jmetric{Confidence: m.Confidence}
	if !math.IsNaN(m.Value) && !math.IsInf(m.Value, 0) {
		jm.Value = &m.Value
	}
	return json.Marshal(jm)
}

// UnmarshalJSON reads a null value back as NaN.
func (m *Metric) UnmarshalJSON(data []byte) error {
	var jm struct {
		Value      *float64   `json:"value"`
		Confidence Confidence `json:"confidence"`
	}
	if err := json.Unmarshal(data, &jm); err != nil {
		return fmt.Errorf("invalid metric: %w", err)
	}
	m.Value = math.NaN()
	if jm.Value != nil {
		m.Value = *jm.Value
	}
	m.Confidence = jm.Confidence
	return nil
}

// Outputs are the headline investment metrics of a project.
// They are always computed wholesale by ComputeOutputs.
type Outputs struct {
	NPV             Metric `json:"npv"`
	ROI             Metric `json:"roi"`     // percent
	Payback         Metric `json:"payback"` // years
	Capex           Metric `json:"capex"`
	AnnualSavings   Metric `json:"annualSavings"`
	TotalTaxBenefit Metric `json:"totalTaxBenefit"`
}

// Variable ids read by ComputeOutputs, and their defaults.
const (
	VarSystemCapacity  = "system_capacity"  // MW
	VarCapexPerWatt    = "capex_per_watt"   // $/W
	VarDiscountRate    = "discount_rate"    // %
	VarProjectLifetime = "project_lifetime" // years
	VarUtilityRate     = "utility_rate"     // $/kWh
	VarFederalITC      = "federal_itc"      // %
	VarStateRebate     = "state_rebate"     // $
	VarNetMetering     = "net_metering"
)

const (
	defaultSystemCapacity  = 2.5
	defaultCapexPerWatt    = 1.28
	defaultDiscountRate    = 5.5
	defaultProjectLifetime = 25
	defaultUtilityRate     = 0.145
	defaultFederalITC      = 30
	defaultStateRebate     = 250000
	defaultNetMetering     = true

	hoursPerYear = 8760

	// withoutNetMetering is the share of savings kept when the utility does not
	// offer net metering.
	withoutNetMetering = 0.9

	// zeroRateDenominator replaces a discount rate of exactly 0 in the annuity
	// factor denominator. It is an approximation, not a limit of the model.
	zeroRateDenominator = 0.01
)

// ComputeOutputs derives the project's headline metrics from its variables
// under the given track.
//
// Missing or unusable variables fall back to their defaults, and the zero
// cases (no capex, no savings, no discount rate) are guarded, so this never
// fails. intervalData is ignored for now.
func ComputeOutputs(vars VariableMap, intervalData any, track Track) Outputs {
	capacityMW := GetNumber(vars, VarSystemCapacity, defaultSystemCapacity)
	capexPerWatt := GetNumber(vars, VarCapexPerWatt, defaultCapexPerWatt)
	discountRate := GetNumber(vars, VarDiscountRate, defaultDiscountRate) / 100
	lifetime := GetNumber(vars, VarProjectLifetime, defaultProjectLifetime)
	utilityRate := GetNumber(vars, VarUtilityRate, defaultUtilityRate)
	federalITC := GetNumber(vars, VarFederalITC, defaultFederalITC) / 100
	stateRebate := GetNumber(vars, VarStateRebate, defaultStateRebate)
	netMetering := GetBoolean(vars, VarNetMetering, defaultNetMetering)

	mod := track.Modifiers()

	capex := capacityMW * 1_000_000 * capexPerWatt * mod.Capex
	// annual production in kWh: MW -> kW, times hours per year.
	annualKWh := capacityMW * 1000 * hoursPerYear * mod.CapacityFactor * mod.Coverage

	demandOffset := 1.0
	if !netMetering {
		demandOffset = withoutNetMetering
	}
	annualSavings := annualKWh * utilityRate * demandOffset * mod.Savings

	denominator := discountRate
	if denominator == 0 {
		denominator = zeroRateDenominator
	}
	annuityFactor := (1 - math.Pow(1+discountRate, -lifetime)) / denominator
	// explicit conversions keep the products rounded on every platform (no FMA).
	npv := float64(annualSavings*annuityFactor) - capex

	roi := 0.0
	if capex != 0 {
		roi = (float64(annualSavings*lifetime) - capex) / capex * 100
	}
	payback := 0.0
	if annualSavings != 0 {
		payback = capex / annualSavings
	}
	taxBenefit := float64(capex*federalITC) + stateRebate

	return Outputs{
		NPV:             Metric{Value: npv, Confidence: Computed},
		ROI:             Metric{Value: roi, Confidence: Computed},
		Payback:         Metric{Value: payback, Confidence: Computed},
		Capex:           Metric{Value: capex, Confidence: Partial},
		AnnualSavings:   Metric{Value: annualSavings, Confidence: Computed},
		TotalTaxBenefit: Metric{Value: taxBenefit, Confidence: Stubbed},
	}
}
