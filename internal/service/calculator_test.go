package service

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"

	"fitcalc/internal/analysis"
)

func newTestCalculator() *Calculator {
	return NewCalculator(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCalculator_BodyFat(t *testing.T) {
	c := newTestCalculator()

	tests := []struct {
		name         string
		req          BodyFatRequest
		wantPct      float64
		wantDisplay  string
		wantClamped  bool
		wantCategory string
	}{
		{
			name:         "male default form",
			req:          BodyFatRequest{Sex: analysis.Male, HeightCM: 170, NeckCM: 40, WaistCM: 85},
			wantPct:      16.27,
			wantDisplay:  "16.3%",
			wantCategory: "Fit",
		},
		{
			name:         "female default form",
			req:          BodyFatRequest{Sex: analysis.Female, HeightCM: 165, NeckCM: 35, WaistCM: 70, HipCM: 95},
			wantPct:      23.48,
			wantDisplay:  "23.5%",
			wantCategory: "Fit",
		},
		{
			name:         "clamped high",
			req:          BodyFatRequest{Sex: analysis.Male, HeightCM: 150, NeckCM: 20, WaistCM: 300},
			wantPct:      75,
			wantDisplay:  "75.0%",
			wantClamped:  true,
			wantCategory: "Obesitas",
		},
		{
			name:         "clamped low",
			req:          BodyFatRequest{Sex: analysis.Male, HeightCM: 250, NeckCM: 40, WaistCM: 41},
			wantPct:      0,
			wantDisplay:  "0.0%",
			wantClamped:  true,
			wantCategory: "Essentieel vet",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.BodyFat(tt.req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got.Percentage-tt.wantPct) > 0.01 {
				t.Errorf("Percentage = %v, want %v", got.Percentage, tt.wantPct)
			}
			if got.Display != tt.wantDisplay {
				t.Errorf("Display = %q, want %q", got.Display, tt.wantDisplay)
			}
			if got.Clamped != tt.wantClamped {
				t.Errorf("Clamped = %v, want %v (raw %v)", got.Clamped, tt.wantClamped, got.Raw)
			}
			if got.Category != tt.wantCategory {
				t.Errorf("Category = %q, want %q", got.Category, tt.wantCategory)
			}
		})
	}
}

func TestCalculator_BodyFat_Errors(t *testing.T) {
	c := newTestCalculator()

	tests := []struct {
		name    string
		req     BodyFatRequest
		wantMsg string
		wantIs  error
	}{
		{
			name:    "male waist below neck",
			req:     BodyFatRequest{Sex: analysis.Male, HeightCM: 170, NeckCM: 40, WaistCM: 0.5},
			wantMsg: "Bij mannen moet taille groter zijn dan nek.",
			wantIs:  analysis.ErrInvalidInput,
		},
		{
			name:    "male zero height",
			req:     BodyFatRequest{Sex: analysis.Male, HeightCM: 0, NeckCM: 40, WaistCM: 85},
			wantMsg: "Lengte, nek en taille moeten groter zijn dan 0.",
			wantIs:  analysis.ErrInvalidInput,
		},
		{
			name:    "female missing hip",
			req:     BodyFatRequest{Sex: analysis.Female, HeightCM: 165, NeckCM: 35, WaistCM: 70},
			wantMsg: "Lengte, nek, taille en heup moeten groter zijn dan 0.",
			wantIs:  analysis.ErrInvalidInput,
		},
		{
			name:    "female girth below neck",
			req:     BodyFatRequest{Sex: analysis.Female, HeightCM: 165, NeckCM: 80, WaistCM: 30, HipCM: 30},
			wantMsg: "Bij vrouwen moet (taille + heup) groter zijn dan nek.",
			wantIs:  analysis.ErrInvalidInput,
		},
		{
			name:    "no sex",
			req:     BodyFatRequest{HeightCM: 170, NeckCM: 40, WaistCM: 85},
			wantMsg: msgUnknownSex,
			wantIs:  analysis.ErrUnknownSex,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := c.BodyFat(tt.req)
			if res != nil {
				t.Errorf("result = %+v, want nil", res)
			}

			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("error = %v, want *ValidationError", err)
			}
			if ve.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", ve.Message, tt.wantMsg)
			}
			if !errors.Is(err, tt.wantIs) {
				t.Errorf("errors.Is(err, %v) = false", tt.wantIs)
			}
		})
	}
}

func TestCalculator_Energy(t *testing.T) {
	c := newTestCalculator()

	got, err := c.Energy(EnergyRequest{
		Sex:      analysis.Male,
		WeightKG: 77,
		HeightCM: 169,
		AgeYears: 30,
		Activity: analysis.ActivityModerate,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.BMR != 1681.25 {
		t.Errorf("BMR = %v, want 1681.25", got.BMR)
	}
	if math.Abs(got.TDEE-2605.9375) > 1e-9 {
		t.Errorf("TDEE = %v, want 2605.9375", got.TDEE)
	}
	if got.BMRDisplay != "1681 kcal/dag" {
		t.Errorf("BMRDisplay = %q", got.BMRDisplay)
	}
	if got.TDEEDisplay != "2606 kcal/dag" {
		t.Errorf("TDEEDisplay = %q", got.TDEEDisplay)
	}
	if got.Label != "Matig actief (3–5x/week)" {
		t.Errorf("Label = %q", got.Label)
	}
}

func TestCalculator_Energy_Errors(t *testing.T) {
	c := newTestCalculator()

	_, err := c.Energy(EnergyRequest{Sex: analysis.Female, WeightKG: 60, Activity: analysis.ActivityLevel(7)})
	if !errors.Is(err, analysis.ErrUnknownActivity) {
		t.Errorf("error = %v, want ErrUnknownActivity", err)
	}

	_, err = c.Energy(EnergyRequest{WeightKG: 60})
	if !errors.Is(err, analysis.ErrUnknownSex) {
		t.Errorf("error = %v, want ErrUnknownSex", err)
	}

	// Out-of-form values are still accepted
	res, err := c.Energy(EnergyRequest{Sex: analysis.Female, Activity: analysis.ActivitySedentary})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.BMR != -161 {
		t.Errorf("BMR = %v, want -161", res.BMR)
	}
}

func TestCalculator_ActivityTable(t *testing.T) {
	c := newTestCalculator()

	rows := c.ActivityTable(1000)
	if len(rows) != 5 {
		t.Fatalf("len(rows) = %d, want 5", len(rows))
	}

	wantTDEE := []float64{1200, 1375, 1550, 1725, 1900}
	for i, row := range rows {
		if math.Abs(row.TDEE-wantTDEE[i]) > 1e-9 {
			t.Errorf("rows[%d].TDEE = %v, want %v", i, row.TDEE, wantTDEE[i])
		}
		if row.LabelNL == "" || row.Label == "" || row.Key == "" {
			t.Errorf("rows[%d] has empty labels: %+v", i, row)
		}
	}
}

func TestBodyFatCategory(t *testing.T) {
	tests := []struct {
		sex  analysis.Sex
		pct  float64
		want string
	}{
		{analysis.Male, 3, "Essentieel vet"},
		{analysis.Male, 10, "Atleet"},
		{analysis.Male, 17.9, "Fit"},
		{analysis.Male, 18, "Gemiddeld"},
		{analysis.Male, 30, "Obesitas"},
		{analysis.Female, 12, "Essentieel vet"},
		{analysis.Female, 20, "Atleet"},
		{analysis.Female, 24, "Fit"},
		{analysis.Female, 31.9, "Gemiddeld"},
		{analysis.Female, 32, "Obesitas"},
	}

	for _, tt := range tests {
		if got := BodyFatCategory(tt.sex, tt.pct); got != tt.want {
			t.Errorf("BodyFatCategory(%v, %v) = %q, want %q", tt.sex, tt.pct, got, tt.want)
		}
	}
}

func TestCheckRange(t *testing.T) {
	tests := []struct {
		field   Field
		value   float64
		wantErr string
	}{
		{FieldHeight, 170, ""},
		{FieldHeight, 50, ""},
		{FieldHeight, 49.9, "Lengte moet tussen 50 en 250 cm liggen."},
		{FieldNeck, 81, "Nekomtrek moet tussen 20 en 80 cm liggen."},
		{FieldWaist, 29, "Tailleomtrek moet tussen 30 en 200 cm liggen."},
		{FieldHip, 201, "Heupomtrek moet tussen 30 en 200 cm liggen."},
		{FieldWeight, 251, "Gewicht moet tussen 20 en 250 kg liggen."},
		{FieldAge, 9, "Leeftijd moet tussen 10 en 100 jaar liggen."},
		{FieldAge, math.NaN(), "Leeftijd moet tussen 10 en 100 jaar liggen."},
		{Field("unknown"), -1, ""},
	}

	for _, tt := range tests {
		err := CheckRange(tt.field, tt.value)
		if tt.wantErr == "" {
			if err != nil {
				t.Errorf("CheckRange(%s, %v) = %v, want nil", tt.field, tt.value, err)
			}
			continue
		}
		if err == nil || err.Error() != tt.wantErr {
			t.Errorf("CheckRange(%s, %v) = %v, want %q", tt.field, tt.value, err, tt.wantErr)
		}
	}
}

func TestFormat(t *testing.T) {
	if got := FormatPercent(17.64); got != "17.6%" {
		t.Errorf("FormatPercent(17.64) = %q", got)
	}
	if got := FormatKcal(1681.25); got != "1681 kcal/dag" {
		t.Errorf("FormatKcal(1681.25) = %q", got)
	}
}
