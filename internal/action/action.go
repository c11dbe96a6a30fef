// Package action provides the ordered stage pipeline every mutation runs
// through, and the discriminated result shape returned to clients.
package action

import (
	"context"
	"errors"
	"fmt"

	apperrors "reviewbox/internal/errors"
)

// Result is the payload returned to clients: exactly one of Data or Error
// is set.
type Result struct {
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// OK wraps a successful payload.
func OK(data interface{}) Result {
	return Result{Data: data}
}

// Fail wraps a caller-facing error message.
func Fail(msg string) Result {
	return Result{Error: msg}
}

// Stage is one named step of a pipeline. Stages run in order and the first
// failure short-circuits everything after it.
type Stage struct {
	Name string
	Run  func(ctx context.Context) error
}

// Pipeline is an ordered list of named stages composing one mutation:
// validate, authorize, business checks, persist, side effects.
type Pipeline struct {
	name   string
	stages []Stage
}

// New creates an empty pipeline with the given action name.
func New(name string) *Pipeline {
	return &Pipeline{name: name}
}

// Stage appends a named stage and returns the pipeline for chaining.
func (p *Pipeline) Stage(name string, fn func(ctx context.Context) error) *Pipeline {
	p.stages = append(p.stages, Stage{Name: name, Run: fn})
	return p
}

// Run executes the stages in order. Action errors pass through untouched so
// their message reaches the caller; anything else is annotated with the
// action and stage that produced it.
func (p *Pipeline) Run(ctx context.Context) error {
	for _, st := range p.stages {
		if err := st.Run(ctx); err != nil {
			var actionErr *apperrors.ActionError
			if errors.As(err, &actionErr) {
				return err
			}
			return fmt.Errorf("%s/%s: %w", p.name, st.Name, err)
		}
	}
	return nil
}
