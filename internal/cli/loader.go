package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
)

// Session describes a full instrumentation pipeline, loaded from a CUE
// file. Relative paths are resolved against the session file's directory.
type Session struct {
	// Module is the input module path. Required.
	Module string `json:"module"`

	// Output is where the transformed module is written. Optional; when
	// empty the run is dry: passes execute and sinks are written, but the
	// module itself is discarded.
	Output string `json:"output,omitempty"`

	// Store is an optional provenance store path; labeling runs in the
	// session are recorded there.
	Store string `json:"store,omitempty"`

	// Passes are the pass invocation strings, executed in order. Each is a
	// base name with an optional bracketed parameter string, e.g.
	// "phase-analysis-pass<interval_length=100000>".
	Passes []string `json:"passes"`
}

// LoadError represents an error that occurred during session loading.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadSession loads and validates a session definition from a CUE file.
//
// The file must export a top-level "session" struct. CUE gives session
// authors defaults, interpolation, and schema constraints for free; the
// decoded result is plain data by the time the runner sees it.
func LoadSession(path string) (*Session, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeSession, Message: fmt.Sprintf("session file not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeSession, Message: fmt.Sprintf("error accessing session file: %v", err)}
	}
	if info.IsDir() {
		return nil, &LoadError{Code: ErrCodeSession, Message: fmt.Sprintf("not a file: %s", path)}
	}

	dir := filepath.Dir(path)
	ctx := cuecontext.New()
	cfg := &load.Config{Dir: dir}
	instances := load.Instances([]string{filepath.Base(path)}, cfg)
	if len(instances) == 0 {
		return nil, &LoadError{Code: ErrCodeSession, Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, &LoadError{Code: ErrCodeSession, Message: fmt.Sprintf("loading CUE file: %v", inst.Err)}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeSession, Message: fmt.Sprintf("building CUE value: %v", err)}
	}

	sessVal := value.LookupPath(cue.ParsePath("session"))
	if !sessVal.Exists() {
		return nil, &LoadError{Code: ErrCodeSession, Message: "session file must export a top-level \"session\" struct"}
	}

	var s Session
	if err := sessVal.Decode(&s); err != nil {
		return nil, &LoadError{Code: ErrCodeSession, Message: fmt.Sprintf("decoding session: %v", err)}
	}

	if s.Module == "" {
		return nil, &LoadError{Code: ErrCodeSession, Message: "session.module is required"}
	}
	if len(s.Passes) == 0 {
		return nil, &LoadError{Code: ErrCodeSession, Message: "session.passes must list at least one pass"}
	}

	s.Module = resolvePath(dir, s.Module)
	s.Output = resolvePath(dir, s.Output)
	s.Store = resolvePath(dir, s.Store)
	return &s, nil
}

// resolvePath resolves p against dir unless p is empty or absolute.
func resolvePath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
