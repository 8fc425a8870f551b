package models

import (
	"time"

	"agri-market/internal/demographics"
	"agri-market/internal/market"
	"agri-market/internal/model"
)

// MarketResponse is the filtered record list. Empty is true when nothing
// matched, which the dashboard renders as its "no matches" state.
type MarketResponse struct {
	Records  []model.MarketRecord `json:"records"`
	Count    int                  `json:"count"`
	Total    int                  `json:"total"`
	Empty    bool                 `json:"empty"`
	Criteria model.FilterCriteria `json:"criteria"`
	Version  uint64               `json:"dataset_version"`
}

// CardsResponse is the filtered list formatted for the price grid.
type CardsResponse struct {
	Cards    []market.Card        `json:"cards"`
	Count    int                  `json:"count"`
	Empty    bool                 `json:"empty"`
	Criteria model.FilterCriteria `json:"criteria"`
}

// OptionInfo is one entry of a filter dropdown.
type OptionInfo struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type OptionsResponse struct {
	Categories []OptionInfo `json:"categories"`
	Markets    []OptionInfo `json:"markets"`
}

// SummaryResponse always describes the full dataset, whatever filter the
// client has active.
type SummaryResponse struct {
	market.Summary
	Total   int    `json:"total"`
	Version uint64 `json:"dataset_version"`
}

// RefreshResponse acknowledges a refresh request.
type RefreshResponse struct {
	Status   string    `json:"status"`
	EventID  string    `json:"event_id"`
	Version  uint64    `json:"dataset_version"`
	Records  int       `json:"records"`
	LoadedAt time.Time `json:"loaded_at"`
}

// AcceptedResponse acknowledges a fire-and-forget request.
type AcceptedResponse struct {
	Status  string `json:"status"`
	EventID string `json:"event_id"`
}

// SelectionResponse is the view right after a selection change. It is
// still loading; clients poll GET /demographics or listen on /ws.
type SelectionResponse struct {
	View demographics.View `json:"view"`
}

type HealthResponse struct {
	Status         string `json:"status"`
	DatasetVersion uint64 `json:"dataset_version"`
	Source         string `json:"source"`
	Clients        int    `json:"ws_clients"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// NewError builds an ErrorResponse.
func NewError(code, message string, details map[string]interface{}) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message, Details: details}}
}

// OptionInfos pairs filter values with their display labels.
func OptionInfos(dimension string, values []string) []OptionInfo {
	out := make([]OptionInfo, 0, len(values))
	for _, v := range values {
		out = append(out, OptionInfo{Value: v, Label: market.OptionLabel(dimension, v)})
	}
	return out
}
