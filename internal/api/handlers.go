package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rentvest/property-vs-fund/internal/cache"
	"github.com/rentvest/property-vs-fund/internal/calculation"
	"github.com/rentvest/property-vs-fund/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// errBadRequest marks request parsing failures.
var errBadRequest = errors.New("bad request")

// Handler holds the dependencies of the HTTP handlers.
type Handler struct {
	Engine *calculation.CalculationEngine
	Cache  *cache.ProjectionCache // optional
	Logger *zap.Logger
}

// NewHandler creates a handler. A nil logger discards logs; a nil cache computes every request.
func NewHandler(engine *calculation.CalculationEngine, pc *cache.ProjectionCache, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Engine: engine, Cache: pc, Logger: logger}
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Projection runs a full scenario: POST /api/projection?name=.
func (h *Handler) Projection(w http.ResponseWriter, r *http.Request) {
	const op = "api.Projection"
	var inputs domain.ScenarioInputs
	if err := decodeBody(w, r, &inputs); err != nil {
		h.fail(w, op, err)
		return
	}
	name := r.URL.Query().Get("name")
	if name == "" {
		name = "Scenario"
	}

	start := time.Now()
	summary, err := h.summarize(r.Context(), domain.Scenario{Name: name, Inputs: inputs})
	if err != nil {
		h.fail(w, op, err)
		return
	}
	h.Logger.Debug("projection computed",
		zap.String("op", op),
		zap.String("scenario", name),
		zap.Int("years", len(summary.Projection)-1),
		zap.Duration("duration", time.Since(start)),
	)
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) summarize(ctx context.Context, scenario domain.Scenario) (*domain.ScenarioSummary, error) {
	if h.Cache != nil {
		return h.Cache.Summary(ctx, scenario)
	}
	return h.Engine.RunScenario(ctx, scenario)
}

// LandTax answers GET /api/land-tax?land_value=.
func (h *Handler) LandTax(w http.ResponseWriter, r *http.Request) {
	landValue, err := queryDecimal(r, "land_value", true)
	if err != nil {
		h.fail(w, "api.LandTax", err)
		return
	}
	writeJSON(w, http.StatusOK, LandTaxResponse{
		LandValue: landValue,
		LandTax:   h.Engine.Projection.LandTax.Calculate(landValue),
	})
}

// StampDuty answers GET /api/stamp-duty?price=&first_home=.
func (h *Handler) StampDuty(w http.ResponseWriter, r *http.Request) {
	const op = "api.StampDuty"
	price, err := queryDecimal(r, "price", true)
	if err != nil {
		h.fail(w, op, err)
		return
	}
	firstHome, err := queryBool(r, "first_home")
	if err != nil {
		h.fail(w, op, err)
		return
	}
	sdc := h.Engine.Projection.StampDuty
	writeJSON(w, http.StatusOK, StampDutyResponse{
		Price:            price,
		FirstHome:        firstHome,
		StandardDuty:     sdc.Standard(price).Round(0),
		StampDuty:        sdc.Calculate(price, firstHome),
		ConcessionStatus: sdc.ConcessionStatus(price, firstHome),
	})
}

// MortgagePayment answers GET /api/mortgage-payment?principal=&rate=&term=.
// An absent term uses the rules' loan term.
func (h *Handler) MortgagePayment(w http.ResponseWriter, r *http.Request) {
	const op = "api.MortgagePayment"
	principal, err := queryDecimal(r, "principal", true)
	if err != nil {
		h.fail(w, op, err)
		return
	}
	rate, err := queryDecimal(r, "rate", true)
	if err != nil {
		h.fail(w, op, err)
		return
	}
	term := h.Engine.Rules().LoanTermYears
	if raw := r.URL.Query().Get("term"); raw != "" {
		term, err = strconv.Atoi(raw)
		if err != nil {
			h.fail(w, op, fmt.Errorf("%w: term must be an integer: %v", errBadRequest, err))
			return
		}
	}
	if err := domain.ValidateLoanTerms(rate, term); err != nil {
		h.fail(w, op, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	amort := h.Engine.Projection.Amortization
	writeJSON(w, http.StatusOK, MortgagePaymentResponse{
		Principal:      principal,
		AnnualRate:     rate,
		TermYears:      term,
		MonthlyPayment: amort.MonthlyPayment(principal, rate, term).Round(2),
	})
}

// CashFlow answers POST /api/cash-flow.
func (h *Handler) CashFlow(w http.ResponseWriter, r *http.Request) {
	var req CashFlowRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.fail(w, "api.CashFlow", err)
		return
	}
	cf := h.Engine.Projection.CashFlow
	writeJSON(w, http.StatusOK, CashFlowResponse{
		MonthlyRent: cf.MonthlyRent(req.WeeklyRent),
		NetMonthlyCashFlow: cf.NetMonthlyCashFlow(req.WeeklyRent, req.MonthlyPayment,
			req.AnnualMaintenance, req.AnnualLandTax, req.AnnualInsurance).Round(2),
	})
}

// Defaults answers GET /api/defaults.
func (h *Handler) Defaults(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, DefaultsResponse{
		Inputs: domain.DefaultScenarioInputs(),
		Rules:  h.Engine.Rules(),
	})
}

// CacheStats answers GET /api/cache/stats.
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	if h.Cache == nil {
		writeJSON(w, http.StatusOK, cache.Stats{})
		return
	}
	writeJSON(w, http.StatusOK, h.Cache.Stats())
}

// fail maps err to a status code and writes the error body.
func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	status := http.StatusInternalServerError
	message := "internal error"
	switch {
	case errors.Is(err, errBadRequest):
		status, message = http.StatusBadRequest, "invalid request"
	case errors.Is(err, domain.ErrInvalidInputs):
		status, message = http.StatusBadRequest, "invalid scenario inputs"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status, message = http.StatusServiceUnavailable, "request cancelled"
	}
	if status >= http.StatusInternalServerError {
		h.Logger.Error(message, zap.String("op", op), zap.Error(err))
	} else {
		h.Logger.Debug(message, zap.String("op", op), zap.Int("status", status), zap.Error(err))
	}
	writeError(w, status, message, err)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", errBadRequest, err)
	}
	return nil
}

func queryDecimal(r *http.Request, key string, required bool) (decimal.Decimal, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		if required {
			return decimal.Zero, fmt.Errorf("%w: %s is required", errBadRequest, key)
		}
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s must be a number: %v", errBadRequest, key, err)
	}
	return d, nil
}

func queryBool(r *http.Request, key string) (bool, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be true or false", errBadRequest, key)
	}
	return b, nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
