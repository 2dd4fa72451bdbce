// Package syndication pushes new listings to an external adoption aggregator.
package syndication

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	listingdomain "github.com/pawfectmatch/adoption-api/internal/domains/listings/domain"
	listingports "github.com/pawfectmatch/adoption-api/internal/domains/listings/ports"
)

var _ listingports.PartnerSync = (*Client)(nil)

// Client talks to the partner aggregator's listing-sync endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New instantiates the syndication client with sane defaults.
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("syndication base URL is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}, nil
}

type listingPayload struct {
	Reference   string   `json:"reference"`
	Name        string   `json:"name"`
	Breed       string   `json:"breed"`
	Age         string   `json:"age"`
	Type        string   `json:"type"`
	Location    string   `json:"location"`
	Description string   `json:"description,omitempty"`
	Images      []string `json:"images,omitempty"`
	Available   bool     `json:"available"`
	Shelter     string   `json:"shelter,omitempty"`
}

type errorBody struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Sync upserts the listing at the partner keyed by its reference. The
// Idempotency-Key header makes retries after a timeout safe.
func (c *Client) Sync(ctx context.Context, pet *listingdomain.Pet) error {
	if c == nil || c.httpClient == nil {
		return errors.New("syndication client not configured")
	}
	if pet == nil || strings.TrimSpace(pet.ID) == "" {
		return errors.New("listing reference is required")
	}

	payload := listingPayload{
		Reference:   pet.ID,
		Name:        pet.Name,
		Breed:       pet.Breed,
		Age:         pet.Age,
		Type:        pet.Type,
		Location:    pet.Location,
		Description: pet.Description,
		Images:      append([]string{}, pet.Images...),
		Available:   pet.Available,
		Shelter:     pet.Shelter,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode listing payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/partners/listings/%s", c.baseURL, url.PathEscape(pet.ID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build syndication request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", "listing-"+pet.ID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call syndication API: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
		return nil
	case resp.StatusCode == http.StatusConflict:
		return fmt.Errorf("syndication API idempotency conflict: %s", errorMessage(resp))
	default:
		return fmt.Errorf("syndication API error: %s", errorMessage(resp))
	}
}

func errorMessage(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil {
		var body errorBody
		if json.Unmarshal(data, &body) == nil {
			if msg := strings.TrimSpace(body.Message); msg != "" {
				return msg
			}
			if msg := strings.TrimSpace(body.Status); msg != "" {
				return msg
			}
		}
	}
	return resp.Status
}
