// Package timestamp normalizes free-form date strings into canonical calendar
// dates. Resolution may call an external timestamp service, so it sits behind
// a small interface and handlers can run with a deterministic fake.
package timestamp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/crucial707/fittrack/internal/models"
)

// Resolver converts a free-form date string into a canonical date.
// An empty input resolves to the current date.
type Resolver interface {
	Resolve(ctx context.Context, s string) (models.Date, error)
}

// Service resolves dates locally for the common layouts and defers to an
// external timestamp API for anything else. With no BaseURL configured it is
// local-only.
type Service struct {
	BaseURL string
	Client  *http.Client
}

func NewService(baseURL string) *Service {
	return &Service{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func (s *Service) Resolve(ctx context.Context, input string) (models.Date, error) {
	if input == "" {
		return models.Today(), nil
	}

	if d, err := models.ParseDate(input); err == nil {
		return d, nil
	}
	if t, err := time.Parse(time.RFC3339, input); err == nil {
		return models.NewDate(t), nil
	}

	if s.BaseURL == "" {
		return models.Date{}, fmt.Errorf("unrecognized date %q", input)
	}
	return s.resolveRemote(ctx, input)
}

// resolveRemote asks the timestamp service for the unix time (in milliseconds)
// of the given string.
func (s *Service) resolveRemote(ctx context.Context, input string) (models.Date, error) {
	endpoint := s.BaseURL + "/api/" + url.PathEscape(input)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.Date{}, fmt.Errorf("timestamp request: %w", err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return models.Date{}, fmt.Errorf("timestamp service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Date{}, fmt.Errorf("timestamp service: status %d", resp.StatusCode)
	}

	var out struct {
		Unix int64 `json:"unix"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.Date{}, fmt.Errorf("timestamp response: %w", err)
	}
	if out.Unix == 0 {
		return models.Date{}, fmt.Errorf("timestamp service: no unix value for %q", input)
	}

	return models.NewDate(time.UnixMilli(out.Unix).UTC()), nil
}

// Fixed always resolves to the same date. For tests.
type Fixed struct {
	Date models.Date
}

func (f Fixed) Resolve(_ context.Context, s string) (models.Date, error) {
	if s == "" {
		return f.Date, nil
	}
	if d, err := models.ParseDate(s); err == nil {
		return d, nil
	}
	return f.Date, nil
}
