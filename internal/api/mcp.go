package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"fitcalc/internal/analysis"
	"fitcalc/internal/service"
)

// NewMCPServer creates an MCP server exposing the calculators as tools
func NewMCPServer(calc *service.Calculator, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"fitcalc",
		version,
		server.WithToolCapabilities(false),
		server.WithInstructions("fitcalc: body fat (US Navy) and BMR/TDEE (Mifflin-St Jeor) calculators. Lengths in cm, weight in kg."),
		server.WithRecovery(),
	)

	sexEnum := mcp.Enum("male", "female")

	activityKeys := make([]string, 0, 5)
	for _, level := range analysis.ActivityLevels() {
		activityKeys = append(activityKeys, level.Key())
	}

	s.AddTool(
		mcp.NewTool("body_fat",
			mcp.WithDescription("Estimate body fat percentage with the US Navy circumference method. The result is clamped to 0-75%."),
			mcp.WithString("sex", mcp.Description("male or female"), mcp.Required(), sexEnum),
			mcp.WithNumber("height_cm", mcp.Description("Height in centimeters"), mcp.Required()),
			mcp.WithNumber("neck_cm", mcp.Description("Neck circumference in centimeters"), mcp.Required()),
			mcp.WithNumber("waist_cm", mcp.Description("Waist circumference in centimeters"), mcp.Required()),
			mcp.WithNumber("hip_cm", mcp.Description("Hip circumference in centimeters (female only)")),
		),
		mcpBodyFat(calc),
	)

	s.AddTool(
		mcp.NewTool("energy",
			mcp.WithDescription("Compute basal metabolic rate (Mifflin-St Jeor) and total daily energy expenditure in kcal/day."),
			mcp.WithString("sex", mcp.Description("male or female"), mcp.Required(), sexEnum),
			mcp.WithNumber("weight_kg", mcp.Description("Body weight in kilograms"), mcp.Required()),
			mcp.WithNumber("height_cm", mcp.Description("Height in centimeters"), mcp.Required()),
			mcp.WithNumber("age_years", mcp.Description("Age in years"), mcp.Required()),
			mcp.WithString("activity", mcp.Description("Activity level (default sedentary)"), mcp.Enum(activityKeys...)),
		),
		mcpEnergy(calc),
	)

	s.AddTool(
		mcp.NewTool("activity_levels",
			mcp.WithDescription("List the activity levels and multipliers, optionally with TDEE for a given BMR."),
			mcp.WithNumber("bmr", mcp.Description("Basal metabolic rate in kcal/day")),
		),
		mcpActivityLevels(calc),
	)

	return s
}

func mcpBodyFat(calc *service.Calculator) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sex, err := analysis.ParseSex(req.GetString("sex", ""))
		if err != nil {
			return mcpError("sex must be male or female"), nil
		}

		height, err := req.RequireFloat("height_cm")
		if err != nil {
			return mcpError("height_cm is required"), nil
		}
		neck, err := req.RequireFloat("neck_cm")
		if err != nil {
			return mcpError("neck_cm is required"), nil
		}
		waist, err := req.RequireFloat("waist_cm")
		if err != nil {
			return mcpError("waist_cm is required"), nil
		}

		res, err := calc.BodyFat(service.BodyFatRequest{
			Sex:      sex,
			HeightCM: height,
			NeckCM:   neck,
			WaistCM:  waist,
			HipCM:    req.GetFloat("hip_cm", 0),
		})
		if err != nil {
			return mcpError(errorText(err)), nil
		}

		return mcpJSON(NewBodyFatResponse(res))
	}
}

func mcpEnergy(calc *service.Calculator) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sex, err := analysis.ParseSex(req.GetString("sex", ""))
		if err != nil {
			return mcpError("sex must be male or female"), nil
		}

		weight, err := req.RequireFloat("weight_kg")
		if err != nil {
			return mcpError("weight_kg is required"), nil
		}
		height, err := req.RequireFloat("height_cm")
		if err != nil {
			return mcpError("height_cm is required"), nil
		}
		age, err := req.RequireFloat("age_years")
		if err != nil {
			return mcpError("age_years is required"), nil
		}

		activity, err := analysis.ParseActivityLevel(req.GetString("activity", "sedentary"))
		if err != nil {
			return mcpError(fmt.Sprintf("unknown activity level %q", req.GetString("activity", ""))), nil
		}

		res, err := calc.Energy(service.EnergyRequest{
			Sex:      sex,
			WeightKG: weight,
			HeightCM: height,
			AgeYears: age,
			Activity: activity,
		})
		if err != nil {
			return mcpError(errorText(err)), nil
		}

		return mcpJSON(NewEnergyResponse(res))
	}
}

func mcpActivityLevels(calc *service.Calculator) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		_, given := req.GetArguments()["bmr"]
		bmr := req.GetFloat("bmr", 0)
		if math.IsNaN(bmr) || math.IsInf(bmr, 0) {
			return mcpError("bmr must be a finite number"), nil
		}
		return mcpJSON(ActivityResponses(calc.ActivityTable(bmr), given))
	}
}

func errorText(err error) string {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return service.MsgUnexpected
}

func mcpJSON(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}
	return mcpText(string(data)), nil
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
