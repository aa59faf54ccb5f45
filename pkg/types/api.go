package types

// DetectRequest is the payload accepted by POST /api/pii/detect.
type DetectRequest struct {
	// Free text to scan for entities. May be empty.
	// example: My name is John Doe
	Text string `json:"text" example:"My name is John Doe"`
}

// HealthResponse is returned by GET /health. It is liveness only and does not
// reflect whether the model is loaded.
type HealthResponse struct {
	// example: ok
	Status string `json:"status" example:"ok"`
	// example: API is running
	Message string `json:"message" example:"API is running"`
}

// ErrorResponse is a consistent JSON error payload for transport-level errors
// (bad content type, malformed JSON). Detection failures never use it.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// StatusResponse is returned by GET /api/status.
type StatusResponse struct {
	// Configured model identifier.
	// example: onnx-community/gliner-multitask-large-v0.5
	Model string `json:"model" example:"onnx-community/gliner-multitask-large-v0.5"`
	// Model slot state: empty, loading, loaded or failed.
	// example: loaded
	State string `json:"state" example:"loaded"`
	// Initialization error, if the load failed.
	Error string `json:"error,omitempty"`
	// Labels the model is asked to recognize.
	// example: ["person","email","phone","address","organization"]
	Labels []string `json:"labels"`
	// Requests currently waiting for the inference slot.
	// example: 0
	Waiting int `json:"waiting" example:"0"`
	// 1 while an inference call is executing, else 0.
	// example: 1
	Inflight int `json:"inflight" example:"1"`
	// Completed inference calls since start.
	// example: 42
	InferencesTotal uint64 `json:"inferences_total" example:"42"`
	// Failed inference calls since start.
	// example: 0
	InferenceErrors uint64 `json:"inference_errors" example:"0"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Unix time at which the model finished loading (0 if never).
	// example: 1700000000
	LoadedAtUnix int64 `json:"loaded_at_unix" example:"1700000000"`
}
