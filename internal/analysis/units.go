package analysis

// CMPerInchFactor converts centimeters to inches
const CMPerInchFactor = 0.3937007874

// CMToInch converts a length in centimeters to inches.
// No validation is done here; callers validate their inputs.
func CMToInch(cm float64) float64 {
	return cm * CMPerInchFactor
}
