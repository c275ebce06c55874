// Package llm wraps the generative reasoning service used for root-cause
// analysis and fix synthesis. The service returns free-form text; callers
// that expect structure must extract it themselves.
package llm

import (
	"context"
	"errors"
	"fmt"
)

var ErrEmptyResponse = errors.New("llm: empty response from model")

// Request carries one generation request: a system instruction, the user
// prompt, and optional generation parameters.
type Request struct {
	System string
	Prompt string
	Model  string // override of the client default, optional
	Effort string // low|medium|high generation effort, optional
}

// Client is the reasoning-service client. Implementations are injected into
// the analyzer and synthesizer at construction time; nothing in the
// pipeline reaches for a process-wide singleton.
type Client interface {
	Name() string
	Generate(ctx context.Context, req Request) (string, error)
	Close() error
}

// PermanentError marks a failure that retrying cannot help (bad request,
// revoked key). The retry middleware passes it through untouched.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string {
	return fmt.Sprintf("llm: permanent: %v", e.Err)
}

func (e *PermanentError) Unwrap() error { return e.Err }
