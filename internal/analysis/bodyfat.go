package analysis

import (
	"math"
)

// US Navy circumference method coefficients (inputs in inches)
const (
	maleWaistNeckCoef = 86.010
	maleHeightCoef    = 70.041
	maleOffset        = 36.76
	femaleGirthCoef   = 163.205
	femaleHeightCoef  = 97.684
	femaleOffset      = 78.387
)

// Bounds applied by ClampPercentage
const (
	MinBodyFatPercent = 0.0
	MaxBodyFatPercent = 75.0
)

// Measurement holds body circumferences in centimeters.
// HipCM is only used by the female formula.
type Measurement struct {
	HeightCM float64
	NeckCM   float64
	WaistCM  float64
	HipCM    float64
}

// EstimateMale computes the raw (unclamped) body fat percentage for men.
// Fails with an *InvalidInputError when a measurement is not positive or
// when the waist does not exceed the neck after conversion.
func EstimateMale(heightCM, neckCM, waistCM float64) (float64, error) {
	if !positive(heightCM) || !positive(neckCM) || !positive(waistCM) {
		return 0, &InvalidInputError{
			Check:  CheckNonPositive,
			Sex:    Male,
			Reason: "all measurements must be positive",
		}
	}

	h := CMToInch(heightCM)
	n := CMToInch(neckCM)
	w := CMToInch(waistCM)

	if w <= n {
		return 0, &InvalidInputError{
			Check:  CheckLogDomain,
			Sex:    Male,
			Reason: "waist must exceed neck for male formula",
		}
	}

	return maleWaistNeckCoef*math.Log10(w-n) - maleHeightCoef*math.Log10(h) + maleOffset, nil
}

// EstimateFemale computes the raw (unclamped) body fat percentage for women.
// Requires all four measurements to be positive and waist + hip to exceed neck.
func EstimateFemale(heightCM, neckCM, waistCM, hipCM float64) (float64, error) {
	if !positive(heightCM) || !positive(neckCM) || !positive(waistCM) || !positive(hipCM) {
		return 0, &InvalidInputError{
			Check:  CheckNonPositive,
			Sex:    Female,
			Reason: "all measurements must be positive",
		}
	}

	h := CMToInch(heightCM)
	n := CMToInch(neckCM)
	w := CMToInch(waistCM)
	hip := CMToInch(hipCM)

	if w+hip <= n {
		return 0, &InvalidInputError{
			Check:  CheckLogDomain,
			Sex:    Female,
			Reason: "waist plus hip must exceed neck for female formula",
		}
	}

	return femaleGirthCoef*math.Log10(w+hip-n) - femaleHeightCoef*math.Log10(h) - femaleOffset, nil
}

// EstimateBodyFat picks the formula for the given sex
func EstimateBodyFat(sex Sex, m Measurement) (float64, error) {
	switch sex {
	case Male:
		return EstimateMale(m.HeightCM, m.NeckCM, m.WaistCM)
	case Female:
		return EstimateFemale(m.HeightCM, m.NeckCM, m.WaistCM, m.HipCM)
	default:
		return 0, ErrUnknownSex
	}
}

// positive rejects zero, negatives, NaN and +Inf
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// ClampPercentage bounds a body fat estimate to [0, 75]. NaN maps to 0.
// Only apply this to the result of a successful estimate.
func ClampPercentage(v float64) float64 {
	if math.IsNaN(v) {
		return MinBodyFatPercent
	}
	return math.Max(MinBodyFatPercent, math.Min(v, MaxBodyFatPercent))
}
