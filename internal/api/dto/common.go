package dto

// timestampLayout matches the ISO-8601 UTC format used across the API
// and the analytics pipeline (microseconds, no offset suffix).
const timestampLayout = "2006-01-02T15:04:05.000000"

// ListResponse wraps a paginated collection
type ListResponse[T any] struct {
	Items  []T `json:"items"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Count  int `json:"count"`
}
