package models

// ErrorResponse is the JSON body of every failed HTTP request.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// HealthResponse is returned by the liveness endpoint.
type HealthResponse struct {
	// Status is always "running" while the process serves requests.
	Status string `json:"status"`

	// AIModel reports whether the upscaling capability initialized at startup:
	// "loaded" or "failed".
	AIModel string `json:"ai_model"`
}
