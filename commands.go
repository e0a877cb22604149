package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"fitcalc/internal/analysis"
	"fitcalc/internal/api"
	"fitcalc/internal/config"
	"fitcalc/internal/service"
)

// --- bodyfat ---

func newBodyFatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bodyfat",
		Short: "Estimate body fat percentage (US Navy method)",
		Long: `Estimate body fat percentage from height and circumferences in cm.
Flags that are not given fall back to the defaults in the config file.

Examples:
  fitcalc bodyfat --sex man --height 170 --neck 40 --waist 85
  fitcalc bodyfat --sex vrouw --height 165 --neck 35 --waist 70 --hip 95 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			d := cfg.Defaults

			sex, err := sexFlag(cmd, d.Sex)
			if err != nil {
				return err
			}

			calc := service.NewCalculator(newLogger(cfg.Log.Level, cmd.ErrOrStderr()))
			res, err := calc.BodyFat(service.BodyFatRequest{
				Sex:      sex,
				HeightCM: floatFlag(cmd, "height", d.HeightCM),
				NeckCM:   floatFlag(cmd, "neck", d.NeckCM),
				WaistCM:  floatFlag(cmd, "waist", d.WaistCM),
				HipCM:    floatFlag(cmd, "hip", d.HipCM),
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSON(out, api.NewBodyFatResponse(res))
			}

			printResult(out, "Geschat vetpercentage", res.Display)
			printResult(out, "Categorie", res.Category)
			if res.Clamped {
				printMsg(cmd.ErrOrStderr(), msgWarning, "formule gaf %.1f%%, begrensd tot %s", res.Raw, res.Display)
			}
			fmt.Fprintln(out, service.MsgMeasureTip)
			return nil
		},
	}

	cmd.Flags().String("sex", "", "man or vrouw")
	cmd.Flags().Float64("height", 0, "height in cm")
	cmd.Flags().Float64("neck", 0, "neck circumference in cm")
	cmd.Flags().Float64("waist", 0, "waist circumference in cm")
	cmd.Flags().Float64("hip", 0, "hip circumference in cm (vrouw only)")
	cmd.Flags().Bool("json", false, "print the result as JSON")
	return cmd
}

// --- kcal ---

func newKcalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kcal",
		Short: "Compute BMR and TDEE (Mifflin-St Jeor)",
		Long: `Compute basal metabolic rate and total daily energy expenditure.
Flags that are not given fall back to the defaults in the config file.

Examples:
  fitcalc kcal --sex man --weight 77 --height 169 --age 30 --activity moderate
  fitcalc kcal --sex vrouw --weight 60 --height 165 --age 25 --all`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			d := cfg.Defaults

			sex, err := sexFlag(cmd, d.Sex)
			if err != nil {
				return err
			}

			activityKey := d.Activity
			if cmd.Flags().Changed("activity") {
				activityKey, _ = cmd.Flags().GetString("activity")
			}
			activity, err := analysis.ParseActivityLevel(activityKey)
			if err != nil {
				return fmt.Errorf("--activity must be one of sedentary, light, moderate, very_active, extreme, got %q", activityKey)
			}

			calc := service.NewCalculator(newLogger(cfg.Log.Level, cmd.ErrOrStderr()))
			res, err := calc.Energy(service.EnergyRequest{
				Sex:      sex,
				WeightKG: floatFlag(cmd, "weight", d.WeightKG),
				HeightCM: floatFlag(cmd, "height", d.HeightCM),
				AgeYears: floatFlag(cmd, "age", d.AgeYears),
				Activity: activity,
			})
			if err != nil {
				return err
			}

			all, _ := cmd.Flags().GetBool("all")
			out := cmd.OutOrStdout()

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				if !all {
					return writeJSON(out, api.NewEnergyResponse(res))
				}
				return writeJSON(out, struct {
					api.EnergyResponse
					Levels []api.ActivityLevelResponse `json:"levels"`
				}{api.NewEnergyResponse(res), api.ActivityResponses(calc.ActivityTable(res.BMR), true)})
			}

			printResult(out, "BMR", res.BMRDisplay)
			printResult(out, "TDEE (onderhoud)", fmt.Sprintf("%s (%s, x%s)", res.TDEEDisplay, res.Label, formatFactor(res.Activity.Multiplier())))
			if all {
				fmt.Fprintln(out)
				fmt.Fprintln(out, renderActivityTable(calc.ActivityTable(res.BMR), true))
			}
			return nil
		},
	}

	cmd.Flags().String("sex", "", "man or vrouw")
	cmd.Flags().Float64("weight", 0, "body weight in kg")
	cmd.Flags().Float64("height", 0, "height in cm")
	cmd.Flags().Float64("age", 0, "age in years")
	cmd.Flags().String("activity", "", "activity level (sedentary, light, moderate, very_active, extreme)")
	cmd.Flags().Bool("all", false, "also show TDEE for every activity level")
	cmd.Flags().Bool("json", false, "print the result as JSON")
	return cmd
}

// --- activities ---

func newActivitiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activities",
		Short: "List activity levels and their multipliers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			calc := service.NewCalculator(nil)
			bmr, _ := cmd.Flags().GetFloat64("bmr")
			withTDEE := cmd.Flags().Changed("bmr")
			rows := calc.ActivityTable(bmr)

			out := cmd.OutOrStdout()
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSON(out, api.ActivityResponses(rows, withTDEE))
			}

			fmt.Fprintln(out, renderActivityTable(rows, withTDEE))
			return nil
		},
	}

	cmd.Flags().Float64("bmr", 0, "show TDEE for this BMR (kcal/day)")
	cmd.Flags().Bool("json", false, "print the table as JSON")
	return cmd
}

// --- config ---

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create an example config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.CreateExample(); err != nil {
				return fmt.Errorf("creating example config: %w", err)
			}
			configDir, err := config.GetConfigDir()
			if err != nil {
				return err
			}
			printMsg(cmd.OutOrStdout(), msgSuccess, "config file at %s/config.json", configDir)
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), cfg)
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}

// --- helpers ---

// floatFlag returns the flag value if it was given, otherwise fallback
func floatFlag(cmd *cobra.Command, name string, fallback float64) float64 {
	if !cmd.Flags().Changed(name) {
		return fallback
	}
	v, _ := cmd.Flags().GetFloat64(name)
	return v
}

func sexFlag(cmd *cobra.Command, fallback string) (analysis.Sex, error) {
	raw := fallback
	if cmd.Flags().Changed("sex") {
		raw, _ = cmd.Flags().GetString("sex")
	}
	sex, err := analysis.ParseSex(raw)
	if err != nil {
		return 0, fmt.Errorf("--sex must be \"man\" or \"vrouw\", got %q", raw)
	}
	return sex, nil
}

func renderActivityTable(rows []service.ActivityRow, withTDEE bool) string {
	headers := []string{"Niveau", "Omschrijving", "Factor"}
	if withTDEE {
		headers = append(headers, "TDEE")
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
	for _, row := range rows {
		cells := []string{row.Key, row.LabelNL, formatFactor(row.Multiplier)}
		if withTDEE {
			cells = append(cells, service.FormatKcal(row.TDEE))
		}
		t.Row(cells...)
	}
	return t.String()
}

func formatFactor(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
