package models

// ReadingsPage is the response envelope of GET /api/v1/readings.
// Total is the number of rows matching the filters regardless of the
// pagination window; Items holds at most Limit rows starting at Offset.
type ReadingsPage struct {
	Items  []Reading `json:"items"`
	Total  int64     `json:"total"`
	Limit  int       `json:"limit"`
	Offset int       `json:"offset"`
}

// HealthResponse is the body of GET /api/v1/health.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// ErrorResponse is the generic error envelope returned by guard rejections
// and internal failures. Detail never contains database error text.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// FieldError points at a single invalid field of a request.
// Loc follows the "body"/"query" + field-name convention so clients can
// render errors next to the offending input.
type FieldError struct {
	Loc []string `json:"loc"`
	Msg string   `json:"msg"`
}

// ValidationErrorResponse is the 422 envelope carrying one entry per
// invalid field.
type ValidationErrorResponse struct {
	Detail []FieldError `json:"detail"`
}
