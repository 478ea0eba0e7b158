package server

import "context"

type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

type OkHealthChecker struct {
}

func NewOkHealthChecker() *OkHealthChecker {
	return &OkHealthChecker{}
}

func (hc *OkHealthChecker) Healthy(ctx context.Context) bool {
	return true
}

// HealthFunc adapts a probe function to HealthChecker.
type HealthFunc func(ctx context.Context) error

func (f HealthFunc) Healthy(ctx context.Context) bool {
	return f(ctx) == nil
}

// AllHealthy is healthy when every checker is.
type AllHealthy []HealthChecker

func (a AllHealthy) Healthy(ctx context.Context) bool {
	for _, hc := range a {
		if !hc.Healthy(ctx) {
			return false
		}
	}
	return true
}
