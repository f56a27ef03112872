package dto

import (
	"encoding/json"

	"github.com/mhmdevan/workload-radar/internal/domain/report"
)

// RequestReportBody is the caller-supplied filter bag for a report
// request. Arbitrary keys are accepted and stored as params.
type RequestReportBody map[string]interface{}

// ReportResponse is the wire representation of a report
type ReportResponse struct {
	ID         int64           `json:"id"`
	ProjectID  int64           `json:"project_id"`
	Type       string          `json:"type"`
	Params     json.RawMessage `json:"params,omitempty"`
	Status     string          `json:"status"`
	Result     json.RawMessage `json:"result,omitempty"`
	CreatedAt  string          `json:"created_at"`
	FinishedAt *string         `json:"finished_at,omitempty"`
}

// ReportToResponse maps a report model to its wire representation
func ReportToResponse(r *report.Report) ReportResponse {
	resp := ReportResponse{
		ID:        r.ID,
		ProjectID: r.ProjectID,
		Type:      r.Type,
		Params:    json.RawMessage(r.Params),
		Status:    string(r.Status),
		Result:    json.RawMessage(r.Result),
		CreatedAt: r.CreatedAt.UTC().Format(timestampLayout),
	}
	if r.FinishedAt != nil {
		finishedAt := r.FinishedAt.UTC().Format(timestampLayout)
		resp.FinishedAt = &finishedAt
	}
	return resp
}
