package common

// UpdateResponse is the response from a bulk operation, specific to HTTP.
type UpdateResponse struct {
	// Updated is the number of objects altered (eg. tasks deleted, boxes refreshed).
	Updated int64 `json:"updated"`
}

// ErrorResponse is returned by the task processing endpoint, which always answers
// 200 so the queue doesn't redeliver.
type ErrorResponse struct {
	Error string `json:"error,omitempty"`
}
