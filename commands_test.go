package main

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fitcalc/internal/api"
	"fitcalc/internal/config"
)

// execute runs the CLI with an isolated config dir and no colors
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(config.HomeEnv, t.TempDir())

	old := noColor
	t.Cleanup(func() { noColor = old; logLevel = "" })

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--no-color"}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestBodyFatCommand(t *testing.T) {
	out, _, err := execute(t, "bodyfat", "--sex", "man", "--height", "170", "--neck", "40", "--waist", "85")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Geschat vetpercentage: 16.3%") {
		t.Errorf("output = %q, want the estimate line", out)
	}
	if !strings.Contains(out, "Tip:") {
		t.Errorf("output = %q, want the measuring tip", out)
	}
}

func TestBodyFatCommand_JSON(t *testing.T) {
	out, _, err := execute(t, "bodyfat", "--sex", "vrouw", "--height", "165", "--neck", "35", "--waist", "70", "--hip", "95", "--json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp api.BodyFatResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if resp.Sex != "female" || resp.Display != "23.5%" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestBodyFatCommand_Clamped(t *testing.T) {
	out, stderr, err := execute(t, "bodyfat", "--sex", "man", "--height", "150", "--neck", "20", "--waist", "300")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "75.0%") {
		t.Errorf("output = %q, want 75.0%%", out)
	}
	if !strings.Contains(stderr, "begrensd") {
		t.Errorf("stderr = %q, want a clamp warning", stderr)
	}
}

func TestBodyFatCommand_Defaults(t *testing.T) {
	out, _, err := execute(t, "bodyfat")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "16.3%") {
		t.Errorf("output = %q, want default estimate 16.3%%", out)
	}
}

func TestBodyFatCommand_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"bad sex", []string{"bodyfat", "--sex", "x"}, "--sex"},
		{"waist below neck", []string{"bodyfat", "--sex", "man", "--neck", "40", "--waist", "0.5"}, "Bij mannen moet taille groter zijn dan nek."},
		{"zero hip", []string{"bodyfat", "--sex", "vrouw", "--hip", "0"}, "heup moeten groter zijn dan 0"},
		{"extra args", []string{"bodyfat", "extra"}, "unknown command"},
		{"NaN height", []string{"bodyfat", "--sex", "man", "--height", "NaN"}, "Lengte, nek en taille moeten groter zijn dan 0."},
		{"infinite hip", []string{"bodyfat", "--sex", "vrouw", "--hip", "+Inf"}, "heup moeten groter zijn dan 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestKcalCommand(t *testing.T) {
	out, _, err := execute(t, "kcal", "--sex", "man", "--weight", "77", "--height", "169", "--age", "30", "--activity", "moderate")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"BMR: 1681 kcal/dag", "TDEE (onderhoud): 2606 kcal/dag", "x1.55"} {
		if !strings.Contains(out, want) {
			t.Errorf("output = %q, missing %q", out, want)
		}
	}
}

func TestKcalCommand_AllJSON(t *testing.T) {
	out, _, err := execute(t, "kcal", "--sex", "man", "--weight", "77", "--height", "169", "--age", "30", "--all", "--json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp struct {
		api.EnergyResponse
		Levels []api.ActivityLevelResponse `json:"levels"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if resp.Activity != "sedentary" {
		t.Errorf("activity = %q, want sedentary", resp.Activity)
	}
	if len(resp.Levels) != 5 || resp.Levels[4].TDEE == nil {
		t.Fatalf("levels = %+v", resp.Levels)
	}
	if got, want := *resp.Levels[4].TDEE, 3194.375; math.Abs(got-want) > 1e-9 {
		t.Errorf("extreme TDEE = %v, want %v", got, want)
	}
}

func TestKcalCommand_UnknownActivity(t *testing.T) {
	_, _, err := execute(t, "kcal", "--activity", "couch")
	if err == nil || !strings.Contains(err.Error(), "--activity") {
		t.Errorf("error = %v, want --activity error", err)
	}
}

func TestActivitiesCommand(t *testing.T) {
	out, _, err := execute(t, "activities")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"sedentary", "very_active", "1.375", "1.9"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "TDEE") {
		t.Error("TDEE column shown without --bmr")
	}

	out, _, err = execute(t, "activities", "--bmr", "1000", "--json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var levels []api.ActivityLevelResponse
	if err := json.Unmarshal([]byte(out), &levels); err != nil {
		t.Fatal(err)
	}
	if levels[0].TDEE == nil || *levels[0].TDEE != 1200 {
		t.Errorf("levels[0].TDEE = %v, want 1200", levels[0].TDEE)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	dir := t.TempDir()

	cmd := newRootCmd()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"--no-color", "config", "init"})
	t.Setenv(config.HomeEnv, dir)
	t.Cleanup(func() { noColor = false })

	if err := cmd.Execute(); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.json")); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Defaults.Sex = "vrouw"
	if err := config.Save(&cfg); err != nil {
		t.Fatal(err)
	}

	cmd = newRootCmd()
	stdout.Reset()
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"config", "show"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config show: %v", err)
	}

	var shown config.Config
	if err := json.Unmarshal(stdout.Bytes(), &shown); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if shown.Defaults.Sex != "vrouw" {
		t.Errorf("defaults.sex = %q, want vrouw", shown.Defaults.Sex)
	}
}

func TestInvalidLogLevel(t *testing.T) {
	_, _, err := execute(t, "--log-level", "loud", "activities", "--json")
	if err != nil {
		t.Fatalf("activities does not read config, got %v", err)
	}

	_, _, err = execute(t, "--log-level", "loud", "bodyfat")
	if err == nil || !strings.Contains(err.Error(), "log.level") {
		t.Errorf("error = %v, want log.level error", err)
	}
}

func TestColorize(t *testing.T) {
	old := noColor
	defer func() { noColor = old }()

	noColor = true
	if got := colorize(colorRed, "hello"); got != "hello" {
		t.Errorf("colorize with noColor=true = %q, want plain text", got)
	}

	noColor = false
	if got := colorize(colorRed, "hello"); !strings.Contains(got, "\033[") {
		t.Errorf("colorize with noColor=false should contain ANSI codes, got %q", got)
	}
}

func TestPrintMsg(t *testing.T) {
	old := noColor
	defer func() { noColor = old }()
	noColor = true

	tests := []struct {
		kind msgKind
		want string
	}{
		{msgSuccess, "✓ saved 2\n"},
		{msgError, "✗ saved 2\n"},
		{msgWarning, "⚠ saved 2\n"},
		{msgStep, "→ saved 2\n"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		printMsg(&buf, tt.kind, "saved %d", 2)
		if buf.String() != tt.want {
			t.Errorf("printMsg(%d) = %q, want %q", tt.kind, buf.String(), tt.want)
		}
	}
}
