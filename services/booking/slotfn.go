package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"velora/models"

	"github.com/go-redis/redis/v8"
)

// slotFnCacheTTL keeps remote responses briefly so paging back and forth
// between days does not hammer the function.
const slotFnCacheTTL = 60 * time.Second

// SlotFunctionClient calls the external get-available-slots function. When
// configured it replaces the local time-grid computation; the function is
// expected to honour the same granularity and overlap semantics.
type SlotFunctionClient struct {
	URL        string
	APIKey     string
	HTTPClient *http.Client
	Cache      *redis.Client
}

// NewSlotFunctionClient builds a client for the remote slot function. The
// cache client is optional.
func NewSlotFunctionClient(url, apiKey string, cache *redis.Client) *SlotFunctionClient {
	return &SlotFunctionClient{
		URL:        url,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Cache:      cache,
	}
}

type slotFunctionRequest struct {
	ServiceID      string `json:"serviceId"`
	ProfessionalID string `json:"professionalId,omitempty"`
	Date           string `json:"date"`
}

type slotFunctionResponse struct {
	Slots []string `json:"slots"`
	Error string   `json:"error,omitempty"`
}

// AvailableSlots returns the available time-of-day labels for the service
// on the given date ("2006-01-02").
func (c *SlotFunctionClient) AvailableSlots(serviceID string, choice models.ProfessionalChoice, date string) ([]string, error) {
	ctx := context.Background()

	cacheKey := fmt.Sprintf("slotfn:%s:%s:%s", serviceID, choice.ID, date)
	if c.Cache != nil {
		if cached, err := c.Cache.Get(ctx, cacheKey).Result(); err == nil {
			var slots []string
			if err := json.Unmarshal([]byte(cached), &slots); err == nil {
				return slots, nil
			}
		}
	}

	payload := slotFunctionRequest{ServiceID: serviceID, Date: date}
	if !choice.Any {
		payload.ProfessionalID = choice.ID
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal slot function request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build slot function request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("slot function request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read slot function response: %w", err)
	}

	var parsed slotFunctionResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse slot function response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != "" {
			return nil, fmt.Errorf("slot function rejected request: %s", parsed.Error)
		}
		return nil, fmt.Errorf("slot function returned status %d", resp.StatusCode)
	}

	if c.Cache != nil {
		if encoded, err := json.Marshal(parsed.Slots); err == nil {
			c.Cache.Set(ctx, cacheKey, encoded, slotFnCacheTTL)
		}
	}
	return parsed.Slots, nil
}
