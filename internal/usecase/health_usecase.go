package usecase

import (
	"context"
	"time"

	"career-portal-backend/pkg/logger"
)

type HealthUsecase interface {
	// Check reports each dependency and whether all of them are reachable.
	Check(ctx context.Context) (map[string]string, bool)
}

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) error

type healthUsecase struct {
	checks map[string]HealthCheck
}

// NewHealthUsecase takes named probes. A dependency that is optional
// (Redis) should be given a probe that only fails when it was configured.
func NewHealthUsecase(checks map[string]HealthCheck) HealthUsecase {
	return &healthUsecase{checks: checks}
}

func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	out := map[string]string{"status": "ok"}
	healthy := true
	for name, check := range u.checks {
		if err := check(ctx); err != nil {
			logger.Log.Warn("health check failed", "component", name, "error", err)
			out[name] = "unavailable"
			healthy = false
			continue
		}
		out[name] = "ok"
	}
	if !healthy {
		out["status"] = "degraded"
	}
	return out, healthy
}
