package dto

// ErrorResponse is the body of every rejected request. Code and Kind are
// set for rule rejections and empty for transport-level failures.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	Kind  string `json:"kind,omitempty"`
}
