package service

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"fitcalc/internal/analysis"
)

// ValidationError carries a user-facing message for rejected input
type ValidationError struct {
	Field   Field
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Calculator is the single entry point the front-ends use.
// It holds no state besides a logger and is safe for concurrent use.
type Calculator struct {
	logger *slog.Logger
}

// NewCalculator creates a calculator. A nil logger uses slog.Default().
func NewCalculator(logger *slog.Logger) *Calculator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Calculator{logger: logger}
}

// BodyFatRequest holds body-fat inputs in centimeters
type BodyFatRequest struct {
	Sex      analysis.Sex
	HeightCM float64
	NeckCM   float64
	WaistCM  float64
	HipCM    float64 // Female only
}

// BodyFatResult is a clamped body fat estimate ready for display
type BodyFatResult struct {
	Sex        analysis.Sex
	Raw        float64 // Unclamped formula output
	Percentage float64 // Clamped to [0, 75]
	Clamped    bool
	Display    string // "16.3%"
	Category   string
}

// BodyFat estimates body fat and applies the [0, 75] clamp
func (c *Calculator) BodyFat(req BodyFatRequest) (*BodyFatResult, error) {
	if !req.Sex.Valid() {
		return nil, &ValidationError{Message: msgUnknownSex, Err: analysis.ErrUnknownSex}
	}

	raw, err := analysis.EstimateBodyFat(req.Sex, analysis.Measurement{
		HeightCM: req.HeightCM,
		NeckCM:   req.NeckCM,
		WaistCM:  req.WaistCM,
		HipCM:    req.HipCM,
	})
	if err != nil {
		c.logger.Debug("body fat rejected", "sex", req.Sex, "error", err)
		return nil, translateEstimateError(err)
	}

	pct := analysis.ClampPercentage(raw)
	result := &BodyFatResult{
		Sex:        req.Sex,
		Raw:        raw,
		Percentage: pct,
		Clamped:    pct != raw,
		Display:    FormatPercent(pct),
		Category:   BodyFatCategory(req.Sex, pct),
	}

	c.logger.Debug("body fat computed", "sex", req.Sex, "raw", raw, "percentage", pct)
	return result, nil
}

// translateEstimateError maps estimator failures onto the Dutch messages
func translateEstimateError(err error) error {
	var iie *analysis.InvalidInputError
	if !errors.As(err, &iie) {
		return &ValidationError{Message: MsgUnexpected, Err: err}
	}

	var msg string
	switch {
	case iie.Sex == analysis.Male && iie.Check == analysis.CheckNonPositive:
		msg = msgMaleNonPositive
	case iie.Sex == analysis.Male:
		msg = msgMaleLogDomain
	case iie.Check == analysis.CheckNonPositive:
		msg = msgFemaleNonPositive
	default:
		msg = msgFemaleLogDomain
	}
	return &ValidationError{Message: msg, Err: err}
}

// EnergyRequest holds Mifflin-St Jeor inputs
type EnergyRequest struct {
	Sex      analysis.Sex
	WeightKG float64
	HeightCM float64
	AgeYears float64
	Activity analysis.ActivityLevel
}

// EnergyResult holds BMR and TDEE in kcal/day
type EnergyResult struct {
	BMR         float64
	TDEE        float64
	BMRDisplay  string // "1681 kcal/dag"
	TDEEDisplay string
	Activity    analysis.ActivityLevel
	Label       string // Dutch activity label
}

// Energy computes BMR and TDEE. Numeric inputs are not range checked.
func (c *Calculator) Energy(req EnergyRequest) (*EnergyResult, error) {
	if !req.Sex.Valid() {
		return nil, &ValidationError{Message: msgUnknownSex, Err: analysis.ErrUnknownSex}
	}
	if !req.Activity.Valid() {
		return nil, &ValidationError{Message: msgUnknownActivity, Err: analysis.ErrUnknownActivity}
	}

	bmr := analysis.BMRMifflin(req.Sex, req.WeightKG, req.HeightCM, req.AgeYears)
	tdee := analysis.TDEE(bmr, req.Activity.Multiplier())

	c.logger.Debug("energy computed",
		"sex", req.Sex,
		"activity", req.Activity,
		"bmr", bmr,
		"tdee", tdee,
	)

	return &EnergyResult{
		BMR:         bmr,
		TDEE:        tdee,
		BMRDisplay:  FormatKcal(bmr),
		TDEEDisplay: FormatKcal(tdee),
		Activity:    req.Activity,
		Label:       ActivityLabelNL(req.Activity),
	}, nil
}

// ActivityRow is one line of the per-tier TDEE overview
type ActivityRow struct {
	Level      analysis.ActivityLevel
	Key        string
	Label      string
	LabelNL    string
	Multiplier float64
	TDEE       float64
}

// ActivityTable returns TDEE for every activity tier at the given BMR
func (c *Calculator) ActivityTable(bmr float64) []ActivityRow {
	levels := analysis.ActivityLevels()
	rows := make([]ActivityRow, 0, len(levels))
	for _, level := range levels {
		rows = append(rows, ActivityRow{
			Level:      level,
			Key:        level.Key(),
			Label:      level.Label(),
			LabelNL:    ActivityLabelNL(level),
			Multiplier: level.Multiplier(),
			TDEE:       analysis.TDEE(bmr, level.Multiplier()),
		})
	}
	return rows
}

// ActivityLabelNL returns the Dutch label for an activity tier
func ActivityLabelNL(level analysis.ActivityLevel) string {
	if label, ok := activityLabelsNL[level]; ok {
		return label
	}
	return level.Label()
}

// BodyFatCategory classifies a clamped percentage
func BodyFatCategory(sex analysis.Sex, pct float64) string {
	bounds := maleCategoryBounds
	if sex == analysis.Female {
		bounds = femaleCategoryBounds
	}
	for i, upper := range bounds {
		if pct < upper {
			return categoryLabels[i]
		}
	}
	return categoryLabels[len(categoryLabels)-1]
}

// Check validates v against the form range
func (r FieldRange) Check(v float64) error {
	if math.IsNaN(v) || v < r.Min || v > r.Max {
		return &ValidationError{
			Field:   r.Field,
			Message: fmt.Sprintf("%s moet tussen %s en %s %s liggen.", r.Label, formatBound(r.Min), formatBound(r.Max), r.Unit),
		}
	}
	return nil
}

// CheckRange validates v against the form range of field. Unknown fields pass.
func CheckRange(field Field, v float64) error {
	r, ok := FormRanges[field]
	if !ok {
		return nil
	}
	return r.Check(v)
}

// FormatPercent formats a body fat percentage with one decimal
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatKcal formats an energy value as whole kcal per day
func FormatKcal(kcal float64) string {
	return fmt.Sprintf("%.0f kcal/dag", kcal)
}

func formatBound(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}
