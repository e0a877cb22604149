package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"fitcalc/internal/analysis"
	"fitcalc/internal/service"
)

const (
	maxRequestBodySize = 1 << 20 // 1MB
	requestIDHeader    = "X-Request-ID"
)

// BodyFatRequest is the JSON body of POST /v1/bodyfat
type BodyFatRequest struct {
	Sex      string  `json:"sex"`
	HeightCM float64 `json:"height_cm"`
	NeckCM   float64 `json:"neck_cm"`
	WaistCM  float64 `json:"waist_cm"`
	HipCM    float64 `json:"hip_cm,omitempty"`
}

// BodyFatResponse is returned by POST /v1/bodyfat
type BodyFatResponse struct {
	Sex        string  `json:"sex"`
	Raw        float64 `json:"raw"`
	Percentage float64 `json:"percentage"`
	Clamped    bool    `json:"clamped"`
	Display    string  `json:"display"`
	Category   string  `json:"category"`
}

// EnergyRequest is the JSON body of POST /v1/energy
type EnergyRequest struct {
	Sex      string  `json:"sex"`
	WeightKG float64 `json:"weight_kg"`
	HeightCM float64 `json:"height_cm"`
	AgeYears float64 `json:"age_years"`
	Activity string  `json:"activity"`
}

// EnergyResponse is returned by POST /v1/energy
type EnergyResponse struct {
	BMR         float64 `json:"bmr"`
	TDEE        float64 `json:"tdee"`
	BMRDisplay  string  `json:"bmr_display"`
	TDEEDisplay string  `json:"tdee_display"`
	Activity    string  `json:"activity"`
	Label       string  `json:"label"`
}

// ActivityLevelResponse is one element of GET /v1/activity-levels
type ActivityLevelResponse struct {
	Key        string   `json:"key"`
	Label      string   `json:"label"`
	LabelNL    string   `json:"label_nl"`
	Multiplier float64  `json:"multiplier"`
	TDEE       *float64 `json:"tdee,omitempty"`
}

// NewHandler returns the calculator REST API
func NewHandler(calc *service.Calculator, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(requestID, requestLogger(logger))

	r.Get("/health", handleHealth)
	r.Get("/v1/activity-levels", handleActivityLevels(calc))
	r.Post("/v1/bodyfat", handleBodyFat(calc))
	r.Post("/v1/energy", handleEnergy(calc))

	return r
}

// requestID tags every response with an X-Request-ID, reusing the caller's if present
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
			r.Header.Set(requestIDHeader, id)
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			logger.Info("request",
				"id", r.Header.Get(requestIDHeader),
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func handleActivityLevels(calc *service.Calculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var bmr *float64
		if raw := r.URL.Query().Get("bmr"); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				httpError(w, http.StatusBadRequest, "invalid_request_error", "bmr must be a number: %v", err)
				return
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				httpError(w, http.StatusBadRequest, "invalid_request_error", "bmr must be a finite number, got %q", raw)
				return
			}
			bmr = &v
		}

		var base float64
		if bmr != nil {
			base = *bmr
		}

		writeJSON(w, http.StatusOK, ActivityResponses(calc.ActivityTable(base), bmr != nil))
	}
}

func handleBodyFat(calc *service.Calculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BodyFatRequest
		if !decodeBody(w, r, &req) {
			return
		}

		sex, err := analysis.ParseSex(req.Sex)
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_input", "sex must be one of male, female, man, vrouw")
			return
		}

		res, err := calc.BodyFat(service.BodyFatRequest{
			Sex:      sex,
			HeightCM: req.HeightCM,
			NeckCM:   req.NeckCM,
			WaistCM:  req.WaistCM,
			HipCM:    req.HipCM,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, NewBodyFatResponse(res))
	}
}

func handleEnergy(calc *service.Calculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req EnergyRequest
		if !decodeBody(w, r, &req) {
			return
		}

		sex, err := analysis.ParseSex(req.Sex)
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_input", "sex must be one of male, female, man, vrouw")
			return
		}

		activity := analysis.ActivitySedentary
		if req.Activity != "" {
			activity, err = analysis.ParseActivityLevel(req.Activity)
			if err != nil {
				httpError(w, http.StatusBadRequest, "invalid_input", "unknown activity level %q", req.Activity)
				return
			}
		}

		res, err := calc.Energy(service.EnergyRequest{
			Sex:      sex,
			WeightKG: req.WeightKG,
			HeightCM: req.HeightCM,
			AgeYears: req.AgeYears,
			Activity: activity,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, NewEnergyResponse(res))
	}
}

// NewBodyFatResponse converts a calculator result to its wire form
func NewBodyFatResponse(res *service.BodyFatResult) BodyFatResponse {
	return BodyFatResponse{
		Sex:        res.Sex.String(),
		Raw:        res.Raw,
		Percentage: res.Percentage,
		Clamped:    res.Clamped,
		Display:    res.Display,
		Category:   res.Category,
	}
}

// NewEnergyResponse converts a calculator result to its wire form
func NewEnergyResponse(res *service.EnergyResult) EnergyResponse {
	return EnergyResponse{
		BMR:         res.BMR,
		TDEE:        res.TDEE,
		BMRDisplay:  res.BMRDisplay,
		TDEEDisplay: res.TDEEDisplay,
		Activity:    res.Activity.Key(),
		Label:       res.Label,
	}
}

// ActivityResponses converts the activity table. TDEE is only set when withTDEE is true.
func ActivityResponses(rows []service.ActivityRow, withTDEE bool) []ActivityLevelResponse {
	out := make([]ActivityLevelResponse, 0, len(rows))
	for _, row := range rows {
		resp := ActivityLevelResponse{
			Key:        row.Key,
			Label:      row.Label,
			LabelNL:    row.LabelNL,
			Multiplier: row.Multiplier,
		}
		if withTDEE {
			tdee := row.TDEE
			resp.TDEE = &tdee
		}
		out = append(out, resp)
	}
	return out
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
		return false
	}
	return true
}

func writeServiceError(w http.ResponseWriter, err error) {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		httpError(w, http.StatusBadRequest, "invalid_input", "%s", ve.Message)
		return
	}
	httpError(w, http.StatusInternalServerError, "api_error", "%s", service.MsgUnexpected)
}

// writeJSON encodes before writing the header so an encoding failure becomes a 500
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintf(w, `{"error":{"message":%q,"type":"api_error"}}`, service.MsgUnexpected)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(data, '\n'))
}

func httpError(w http.ResponseWriter, status int, errType, format string, args ...any) {
	writeJSON(w, status, map[string]any{
		"error": map[string]string{
			"message": fmt.Sprintf(format, args...),
			"type":    errType,
		},
	})
}
