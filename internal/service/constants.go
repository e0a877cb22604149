package service

import "fitcalc/internal/analysis"

// Field identifies a form input
type Field string

const (
	FieldHeight Field = "height_cm"
	FieldNeck   Field = "neck_cm"
	FieldWaist  Field = "waist_cm"
	FieldHip    Field = "hip_cm"
	FieldWeight Field = "weight_kg"
	FieldAge    Field = "age_years"
)

// FieldRange is the accepted range of a form input.
// Ranges are a usability affordance of the forms; the formulas accept any value.
type FieldRange struct {
	Field Field
	Label string
	Unit  string
	Min   float64
	Max   float64
	Step  float64
}

// FormRanges lists the input ranges of the calculator forms
var FormRanges = map[Field]FieldRange{
	FieldHeight: {FieldHeight, "Lengte", "cm", 50, 250, 0.1},
	FieldNeck:   {FieldNeck, "Nekomtrek", "cm", 20, 80, 0.1},
	FieldWaist:  {FieldWaist, "Tailleomtrek", "cm", 30, 200, 0.1},
	FieldHip:    {FieldHip, "Heupomtrek", "cm", 30, 200, 0.1},
	FieldWeight: {FieldWeight, "Gewicht", "kg", 20, 250, 0.1},
	FieldAge:    {FieldAge, "Leeftijd", "jaar", 10, 100, 1},
}

// Body fat category thresholds (upper bounds, exclusive), ACE classification
var (
	maleCategoryBounds   = []float64{6, 14, 18, 25}
	femaleCategoryBounds = []float64{14, 21, 25, 32}
)

// Category labels, from lowest to highest body fat
var categoryLabels = []string{
	"Essentieel vet",
	"Atleet",
	"Fit",
	"Gemiddeld",
	"Obesitas",
}

// Dutch display labels for the activity tiers
var activityLabelsNL = map[analysis.ActivityLevel]string{
	analysis.ActivitySedentary:  "Weinig of geen sport",
	analysis.ActivityLight:      "Licht actief (1–3x/week)",
	analysis.ActivityModerate:   "Matig actief (3–5x/week)",
	analysis.ActivityVeryActive: "Zeer actief (6–7x/week)",
	analysis.ActivityExtreme:    "Extreem actief (2x per dag)",
}

// User-facing messages
const (
	MsgUnexpected        = "Er is een onverwachte fout opgetreden. Controleer je input."
	MsgMeasureTip        = "Tip: meet altijd op hetzelfde tijdstip (bijvoorbeeld 's ochtends nuchter)."
	msgMaleNonPositive   = "Lengte, nek en taille moeten groter zijn dan 0."
	msgMaleLogDomain     = "Bij mannen moet taille groter zijn dan nek."
	msgFemaleNonPositive = "Lengte, nek, taille en heup moeten groter zijn dan 0."
	msgFemaleLogDomain   = "Bij vrouwen moet (taille + heup) groter zijn dan nek."
	msgUnknownSex        = "Kies een geslacht: man of vrouw."
	msgUnknownActivity   = "Onbekend activiteitsniveau."
)
