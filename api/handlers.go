/*
handlers.go - HTTP API handlers for the leave directory

PURPOSE:
  Exposes the leave directory via REST API. Handles HTTP request/response
  and JSON serialization; every rule lives in the leave package.

ENDPOINTS:
  Accounts:
    GET    /api/accounts               List all accounts
    POST   /api/accounts               Register an account
    GET    /api/accounts/{id}          Get account with its leaves

  Leaves:
    GET    /api/accounts/{id}/leaves   List stored leave records
    POST   /api/accounts/{id}/leaves   Apply a leave record

  Reports:
    GET    /api/reports/low-balance    Accounts below ?threshold=N

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid input (bad JSON, blank name, bad dates, unknown category)
  - 404: Account not found
  - 422: Business-rule rejection (limit exceeded, overlap, eligibility rule)
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/warp/leave-tracker/leave"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Directory *leave.Directory

	// DefaultThreshold is used by the low-balance report when the query
	// omits ?threshold.
	DefaultThreshold int

	logger *zap.Logger
}

// NewHandler creates a handler over dir.
func NewHandler(dir *leave.Directory, defaultThreshold int, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		Directory:        dir,
		DefaultThreshold: defaultThreshold,
		logger:           logger,
	}
}

// =============================================================================
// ACCOUNT HANDLERS
// =============================================================================

// ListAccounts returns all accounts.
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts := h.Directory.AllAccounts()
	dtos := make([]AccountDTO, len(accounts))
	for i, a := range accounts {
		dtos[i] = toAccountDTO(a)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateAccount registers a new account.
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	account, err := leave.NewAccount(req.Name, req.TotalAllotment)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	if err := h.Directory.Register(account); err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toAccountDTO(account))
}

// GetAccount returns a single account.
func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	account, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toAccountDTO(account))
}

// =============================================================================
// LEAVE HANDLERS
// =============================================================================

// ListLeaves returns the records stored on an account.
func (h *Handler) ListLeaves(w http.ResponseWriter, r *http.Request) {
	account, ok := h.lookup(w, r)
	if !ok {
		return
	}
	records := account.Records()
	dtos := make([]LeaveDTO, len(records))
	for i, rec := range records {
		dtos[i] = toLeaveDTO(rec)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ApplyLeave applies a leave record to an account.
// POST /api/accounts/{id}/leaves
func (h *Handler) ApplyLeave(w http.ResponseWriter, r *http.Request) {
	id := leave.AccountID(chi.URLParam(r, "id"))

	var req ApplyLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	record, err := parseRecord(req)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	if err := h.Directory.ApplyLeave(id, record); err != nil {
		h.writeDomainError(w, err)
		return
	}

	account, ok := h.Directory.FindByID(id)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Account disappeared after apply", nil)
		return
	}
	writeJSON(w, http.StatusCreated, toAccountDTO(account))
}

func parseRecord(req ApplyLeaveRequest) (leave.Record, error) {
	category, err := leave.ParseCategory(req.Category)
	if err != nil {
		return leave.Record{}, err
	}
	start, err := leave.ParseDay(req.StartDate)
	if err != nil {
		return leave.Record{}, err
	}
	end, err := leave.ParseDay(req.EndDate)
	if err != nil {
		return leave.Record{}, err
	}
	return leave.NewRecord(category, start, end)
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// LowBalanceReport lists accounts whose remaining balance is below the threshold.
// GET /api/reports/low-balance?threshold=5
func (h *Handler) LowBalanceReport(w http.ResponseWriter, r *http.Request) {
	threshold := h.DefaultThreshold
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid threshold", err)
			return
		}
		threshold = n
	}

	report, err := h.Directory.LowBalanceReport(threshold)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	dtos := make([]SummaryDTO, len(report))
	for i, s := range report {
		dtos[i] = toSummaryDTO(s)
	}
	writeJSON(w, http.StatusOK, LowBalanceReportDTO{Threshold: threshold, Accounts: dtos})
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (*leave.Account, bool) {
	id := leave.AccountID(chi.URLParam(r, "id"))
	account, ok := h.Directory.FindByID(id)
	if !ok {
		h.writeDomainError(w, &leave.NotFoundError{ID: id})
		return nil, false
	}
	return account, true
}

// writeDomainError maps leave errors onto HTTP statuses.
func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, leave.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, "Invalid argument", err)
	case leave.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Account not found", err)
	case errors.Is(err, leave.ErrLeaveLimitExceeded):
		writeError(w, http.StatusUnprocessableEntity, "Leave limit exceeded", err)
	case errors.Is(err, leave.ErrInvalidLeaveDate):
		writeError(w, http.StatusUnprocessableEntity, "Leave dates overlap", err)
	case errors.Is(err, leave.ErrRuleRejected):
		writeError(w, http.StatusUnprocessableEntity, "Leave not eligible", err)
	default:
		h.logger.Error("unexpected error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
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
