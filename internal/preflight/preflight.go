// Package preflight turns the model path check into named, reportable checks.
package preflight

import (
	"os"

	"modelguard/internal/modelpath"
	"modelguard/pkg/types"
)

// Check names.
const (
	CheckModelPathExists = "model_path_exists"
	CheckModelPathIsFile = "model_path_is_file"
	CheckRuntimeBuilt    = "llama_runtime_built"
)

// Checker runs preflight checks for one model path.
type Checker struct {
	// Path returns the model path to check; it is read on every call.
	Path func() string
	// RuntimeBuilt reports whether the inference runtime is linked in.
	RuntimeBuilt func() bool
}

// Preflight evaluates every check. Only the existence check is required: a
// directory or a CGO-free build is reported but does not fail preflight.
func (c Checker) Preflight() types.PreflightResponse {
	p := ""
	if c.Path != nil {
		p = c.Path()
	}
	res := modelpath.Check(p)
	resp := types.PreflightResponse{ModelPath: p, CheckedAtUnix: res.CheckedAt.Unix()}

	exists := types.PreflightCheck{Name: CheckModelPathExists, OK: res.OK(), Required: true}
	if res.Err != nil {
		exists.Detail = res.Err.Error()
	}
	resp.Checks = append(resp.Checks, exists)

	isFile := types.PreflightCheck{Name: CheckModelPathIsFile}
	if res.OK() {
		if fi, err := os.Stat(p); err == nil && fi.Mode().IsRegular() {
			isFile.OK = true
		} else if err == nil {
			isFile.Detail = "path is not a regular file"
		} else {
			isFile.Detail = err.Error()
		}
	} else {
		isFile.Detail = "skipped: path does not exist"
	}
	resp.Checks = append(resp.Checks, isFile)

	if c.RuntimeBuilt != nil {
		rt := types.PreflightCheck{Name: CheckRuntimeBuilt, OK: c.RuntimeBuilt()}
		if !rt.OK {
			rt.Detail = "binary built without the 'llama' tag"
		}
		resp.Checks = append(resp.Checks, rt)
	}

	resp.OK = true
	for _, ch := range resp.Checks {
		if ch.Required && !ch.OK {
			resp.OK = false
		}
	}
	return resp
}
