// Package remote implements the read side of cross-service consistency:
// bounded-timeout existence checks against other services and ordered
// reference validation on top of them.
package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"hospital-services/internal/metrics"
)

// Verdict classifies the result of a remote existence check.
type Verdict int

const (
	Exists Verdict = iota
	NotFound
	Unreachable
)

// String returns the verdict name used in logs and metrics labels.
func (v Verdict) String() string {
	switch v {
	case Exists:
		return "exists"
	case NotFound:
		return "not_found"
	default:
		return "unreachable"
	}
}

// ExistenceChecker resolves a (service, id) pair to a Verdict.
type ExistenceChecker interface {
	Check(ctx context.Context, service string, id uint) Verdict
}

// Checker performs existence checks over HTTP against the owning service's
// entity-by-id endpoint. A single failed attempt is classified Unreachable;
// there are no retries.
type Checker struct {
	services map[string]string
	client   *http.Client
	recorder metrics.Recorder
}

var _ ExistenceChecker = (*Checker)(nil)

// NewChecker creates a Checker over the injected service address map.
func NewChecker(services map[string]string, timeout time.Duration, recorder metrics.Recorder) *Checker {
	return &Checker{
		services: services,
		client:   &http.Client{Timeout: timeout},
		recorder: recorder,
	}
}

// Check issues one GET to the named service's entity-by-id endpoint and
// classifies the response. 200 means the entity exists, 404 means it does
// not; anything else, including transport failures and timeouts, means the
// dependency is unreachable.
func (c *Checker) Check(ctx context.Context, service string, id uint) Verdict {
	verdict := c.check(ctx, service, id)
	c.recorder.RecordCheck(service, verdict.String())
	return verdict
}

func (c *Checker) check(ctx context.Context, service string, id uint) Verdict {
	base, ok := c.services[service]
	if !ok {
		return Unreachable
	}

	url := fmt.Sprintf("%s/api/%s/%d/", base, service, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Unreachable
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Unreachable
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body) // drain so the connection can be reused

	switch resp.StatusCode {
	case http.StatusOK:
		return Exists
	case http.StatusNotFound:
		return NotFound
	default:
		return Unreachable
	}
}
