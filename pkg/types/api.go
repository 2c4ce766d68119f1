package types

// PreflightCheck is the outcome of one named check.
type PreflightCheck struct {
	// Check name.
	// example: model_path_exists
	Name string `json:"name" example:"model_path_exists"`
	// Whether the check passed.
	// example: true
	OK bool `json:"ok" example:"true"`
	// Required checks decide the overall outcome; others are informational.
	// example: true
	Required bool `json:"required" example:"true"`
	// Human-readable detail, e.g. the error naming the offending path.
	// example: model path does not exist: /models/m.gguf
	Detail string `json:"detail,omitempty" example:"model path does not exist: /models/m.gguf"`
}

// PreflightResponse is returned by GET /preflight.
type PreflightResponse struct {
	// True when every required check passed.
	// example: true
	OK bool `json:"ok" example:"true"`
	// Model path that was checked.
	// example: /models/codellama-13b-instruct.Q4_K_M.gguf
	ModelPath string `json:"model_path" example:"/models/codellama-13b-instruct.Q4_K_M.gguf"`
	// Individual checks in evaluation order.
	Checks []PreflightCheck `json:"checks"`
	// Check time in unix seconds.
	// example: 1700000000
	CheckedAtUnix int64 `json:"checked_at_unix" example:"1700000000"`
}

// HealthResponse is returned by GET /healthz.
type HealthResponse struct {
	// example: ok
	Status string `json:"status" example:"ok"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: not found
	Error string `json:"error" example:"not found"`
	// HTTP status code.
	// example: 404
	Code int `json:"code" example:"404"`
}
