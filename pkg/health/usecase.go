package health

import (
	"context"
	"fmt"
)

// Checker represents a dependency health check.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// Report holds each dependency's state: "ok" or the error text.
type Report struct {
	Ready  bool              `json:"ready"`
	Checks map[string]string `json:"checks"`
}

// ReadinessUseCase describes readiness verification.
type ReadinessUseCase interface {
	Ready(ctx context.Context) error
	Report(ctx context.Context) Report
}

type service struct {
	checkers []Checker
}

// NewService aggregates dependency checkers. With no checkers
// (in-memory mode) the service is always ready.
func NewService(checkers ...Checker) ReadinessUseCase {
	return &service{checkers: checkers}
}

// Ready fails on the first unhealthy dependency and names it.
func (s *service) Ready(ctx context.Context) error {
	for _, ch := range s.checkers {
		if err := ch.Check(ctx); err != nil {
			return fmt.Errorf("%s: %w", ch.Name(), err)
		}
	}
	return nil
}

// Report runs every checker, so one failure does not hide another.
func (s *service) Report(ctx context.Context) Report {
	r := Report{Ready: true, Checks: make(map[string]string, len(s.checkers))}
	for _, ch := range s.checkers {
		if err := ch.Check(ctx); err != nil {
			r.Ready = false
			r.Checks[ch.Name()] = err.Error()
			continue
		}
		r.Checks[ch.Name()] = "ok"
	}
	return r
}
