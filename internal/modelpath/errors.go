package modelpath

import "errors"

// ConfigurationError reports that the configured model path is unusable.
type ConfigurationError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "model path does not exist"
	}
	if e.Path == "" {
		return reason
	}
	return reason + ": " + e.Path
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// ErrModelPathMissing builds the error returned when nothing exists at path.
func ErrModelPathMissing(path string, cause error) error {
	return &ConfigurationError{Path: path, Reason: "model path does not exist", Err: cause}
}

// ErrModelPathUnset builds the error returned when no model path was configured.
func ErrModelPathUnset() error {
	return &ConfigurationError{Reason: "model path is not configured (set --model-path, MODELGUARD_MODEL_PATH or model_path)"}
}

// IsConfigurationError reports whether err is, or wraps, a ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
