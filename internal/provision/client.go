package provision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"hospital-services/internal/models"
)

// HTTPRoleClient implements RoleClient over the role services' public create
// endpoints. Cross-service effects go through the same API external clients
// use; no service writes to another service's store directly.
type HTTPRoleClient struct {
	services map[string]string
	client   *http.Client
}

var _ RoleClient = (*HTTPRoleClient)(nil)

// NewHTTPRoleClient creates an HTTPRoleClient over the injected service
// address map.
func NewHTTPRoleClient(services map[string]string, timeout time.Duration) *HTTPRoleClient {
	return &HTTPRoleClient{
		services: services,
		client:   &http.Client{Timeout: timeout},
	}
}

// CreateRoleRecord POSTs the payload to the owning service's create endpoint.
// The response body is returned verbatim whatever the status code.
func (c *HTTPRoleClient) CreateRoleRecord(ctx context.Context, role models.Role, req RoleRecordRequest) (*RoleRecordResponse, error) {
	base, ok := c.services[string(role)]
	if !ok {
		return nil, fmt.Errorf("no address configured for service %q", role)
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode role record payload: %w", err)
	}

	url := fmt.Sprintf("%s/api/%s/", base, role)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read role service response: %w", err)
	}

	return &RoleRecordResponse{StatusCode: resp.StatusCode, Body: body}, nil
}
