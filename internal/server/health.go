package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kapu/ayovirals-go/internal/constants"
	"github.com/sourcegraph/conc/pool"
)

// HealthCheck probes one dependency. A nil error means healthy; detail is
// reported either way.
type HealthCheck struct {
	Name  string
	Probe func(ctx context.Context) (detail string, err error)
}

type componentStatus struct {
	Name   string `json:"-"`
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

var errStoreDisabled = errors.New("persistence disabled")

const (
	statusOK          = "ok"
	statusUnavailable = "unavailable"
)

func (s *Server) handleHealth(c *gin.Context) {
	checks := s.allChecks()
	components := runChecks(c.Request.Context(), checks, constants.RequestLimits.HealthTimeout)

	overall := "healthy"
	byName := make(map[string]componentStatus, len(components))
	for _, comp := range components {
		byName[comp.Name] = comp
		if comp.Status != statusOK {
			overall = "degraded"
		}
	}

	database := "disconnected"
	if comp, ok := byName["database"]; ok && comp.Status == statusOK {
		database = "connected"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     overall,
		"database":   database,
		"components": byName,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) allChecks() []HealthCheck {
	checks := make([]HealthCheck, 0, len(s.deps.Checks)+1)
	store := s.deps.Store
	checks = append(checks, HealthCheck{
		Name: "database",
		Probe: func(ctx context.Context) (string, error) {
			if store == nil {
				return "none", errStoreDisabled
			}
			return store.Name(), store.Ping(ctx)
		},
	})
	return append(checks, s.deps.Checks...)
}

// runChecks probes concurrently, each bounded by timeout.
func runChecks(ctx context.Context, checks []HealthCheck, timeout time.Duration) []componentStatus {
	if len(checks) == 0 {
		return nil
	}

	p := pool.NewWithResults[componentStatus]().WithMaxGoroutines(len(checks))
	for _, check := range checks {
		check := check
		p.Go(func() componentStatus {
			cctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			detail, err := check.Probe(cctx)
			if err != nil {
				if detail == "" {
					detail = err.Error()
				} else {
					detail = detail + ": " + err.Error()
				}
				return componentStatus{Name: check.Name, Status: statusUnavailable, Detail: detail}
			}
			return componentStatus{Name: check.Name, Status: statusOK, Detail: detail}
		})
	}
	return p.Wait()
}
