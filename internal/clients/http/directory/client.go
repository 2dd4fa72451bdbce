// Package directory is the HTTP client for the remote account directory, a
// role-partitioned document store keyed by email.
package directory

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

	accountdomain "github.com/pawfectmatch/adoption-api/internal/domains/accounts/domain"
	accountports "github.com/pawfectmatch/adoption-api/internal/domains/accounts/ports"
)

var _ accountports.Directory = (*Client)(nil)

// Client consumes the four document-store operations the accounts context
// needs: get-by-key, set-by-key, delete-by-key, list-all-in-collection.
// Transport faults are wrapped in ErrDirectoryUnavailable so callers can
// surface a generic remote-fault message without retrying.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New instantiates the directory client with sane defaults.
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("directory base URL is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}, nil
}

type document struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Get fetches the document keyed by (collection, email).
func (c *Client) Get(ctx context.Context, collection, email string) (*accountdomain.Account, error) {
	resp, err := c.do(ctx, http.MethodGet, c.documentURL(collection, email), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var doc document
		if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: decode document: %v", accountports.ErrDirectoryUnavailable, err)
		}
		return doc.toAccount(email), nil
	case http.StatusNotFound:
		return nil, accountports.ErrAccountNotFound
	default:
		return nil, c.statusError(resp)
	}
}

// Put creates or overwrites the document keyed by the account's email.
func (c *Client) Put(ctx context.Context, collection string, account *accountdomain.Account) error {
	if account == nil {
		return errors.New("cannot store nil account")
	}
	body, err := json.Marshal(document{
		Email:    account.Email,
		Name:     account.Name,
		Password: account.Password,
		Role:     string(account.Role),
	})
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	resp, err := c.do(ctx, http.MethodPut, c.documentURL(collection, account.Email), bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}
	return c.statusError(resp)
}

// Delete removes the document; missing keys are reported as not found.
func (c *Client) Delete(ctx context.Context, collection, email string) error {
	resp, err := c.do(ctx, http.MethodDelete, c.documentURL(collection, email), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return accountports.ErrAccountNotFound
	default:
		return c.statusError(resp)
	}
}

// List enumerates all documents in a collection.
func (c *Client) List(ctx context.Context, collection string) ([]*accountdomain.Account, error) {
	endpoint := fmt.Sprintf("%s/collections/%s/documents", c.baseURL, url.PathEscape(collection))
	resp, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp)
	}
	var docs []document
	if err := json.NewDecoder(resp.Body).Decode(&docs); err != nil {
		return nil, fmt.Errorf("%w: decode collection: %v", accountports.ErrDirectoryUnavailable, err)
	}
	list := make([]*accountdomain.Account, 0, len(docs))
	for _, doc := range docs {
		list = append(list, doc.toAccount(doc.Email))
	}
	return list, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader) (*http.Response, error) {
	if c == nil || c.httpClient == nil {
		return nil, errors.New("directory client not configured")
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build directory request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", accountports.ErrDirectoryUnavailable, err)
	}
	return resp, nil
}

func (c *Client) documentURL(collection, email string) string {
	return fmt.Sprintf("%s/collections/%s/documents/%s", c.baseURL, url.PathEscape(collection), url.PathEscape(email))
}

func (c *Client) statusError(resp *http.Response) error {
	return fmt.Errorf("%w: directory returned %s", accountports.ErrDirectoryUnavailable, resp.Status)
}

func (d document) toAccount(email string) *accountdomain.Account {
	if strings.TrimSpace(d.Email) != "" {
		email = d.Email
	}
	return &accountdomain.Account{
		Name:     d.Name,
		Email:    email,
		Password: d.Password,
		Role:     accountdomain.Role(d.Role),
	}
}
