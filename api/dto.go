/*
dto.go - Data Transfer Objects for API requests and responses

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

DATES:
  All dates on the wire are calendar days formatted YYYY-MM-DD.

VALIDATION:
  Validation is done by the leave package constructors, not in DTOs.
  DTOs are pure data carriers.
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/warp/leave-tracker/leave"
)

// AccountDTO represents an account in API responses.
type AccountDTO struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	TotalAllotment int        `json:"total_allotment"`
	TakenDays      int        `json:"taken_days"`
	RemainingDays  int        `json:"remaining_days"`
	Leaves         []LeaveDTO `json:"leaves"`
}

// LeaveDTO represents one stored leave record.
type LeaveDTO struct {
	Category     string `json:"category"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	DurationDays int    `json:"duration_days"`
}

// SummaryDTO is one row of the low-balance report.
type SummaryDTO struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Total       int             `json:"total_allotment"`
	Taken       int             `json:"taken_days"`
	Remaining   int             `json:"remaining_days"`
	Records     int             `json:"records"`
	Utilization decimal.Decimal `json:"utilization"`
}

// LowBalanceReportDTO wraps the report with the threshold used.
type LowBalanceReportDTO struct {
	Threshold int          `json:"threshold"`
	Accounts  []SummaryDTO `json:"accounts"`
}

// CreateAccountRequest is the request to register an account.
type CreateAccountRequest struct {
	Name           string `json:"name"`
	TotalAllotment int    `json:"total_allotment"`
}

// ApplyLeaveRequest is the request to apply a leave record.
type ApplyLeaveRequest struct {
	Category  string `json:"category"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toAccountDTO(a *leave.Account) AccountDTO {
	records := a.Records()
	taken := 0
	leaves := make([]LeaveDTO, len(records))
	for i, r := range records {
		leaves[i] = toLeaveDTO(r)
		taken += r.DurationDays()
	}
	return AccountDTO{
		ID:             a.ID().String(),
		Name:           a.Name(),
		TotalAllotment: a.TotalAllotment(),
		TakenDays:      taken,
		RemainingDays:  a.TotalAllotment() - taken,
		Leaves:         leaves,
	}
}

func toLeaveDTO(r leave.Record) LeaveDTO {
	return LeaveDTO{
		Category:     r.Category().String(),
		StartDate:    r.Start().Format(leave.DateLayout),
		EndDate:      r.End().Format(leave.DateLayout),
		DurationDays: r.DurationDays(),
	}
}

func toSummaryDTO(s leave.Summary) SummaryDTO {
	return SummaryDTO{
		ID:          s.ID.String(),
		Name:        s.Name,
		Total:       s.Total,
		Taken:       s.Taken,
		Remaining:   s.Remaining,
		Records:     s.Records,
		Utilization: s.Utilization,
	}
}
