package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MasteraSnackin/lazorkit-passkey-demo/internal/domain"
)

// Client talks to the passkey portal over HTTP.
type Client struct {
	base string
	http *http.Client
}

// NewClient returns a Client for the portal at base.
func NewClient(base string, timeout time.Duration) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

// RegisterDevice runs the connect ceremony. With an empty credential id the
// portal mints a fresh credential and smart wallet; with one set it re-binds
// the existing wallet to the presented device key.
func (c *Client) RegisterDevice(ctx context.Context, req domain.RegisterDeviceRequest) (domain.WalletAccount, error) {
	var out domain.WalletAccount
	if err := c.post(ctx, "/v1/register", req, &out); err != nil {
		return domain.WalletAccount{}, err
	}
	return out, nil
}

// ResolveWallet looks up the wallet bound to an existing credential.
func (c *Client) ResolveWallet(ctx context.Context, id domain.CredentialID) (domain.WalletAccount, error) {
	var out domain.WalletAccount
	if err := c.getJSON(ctx, "/v1/wallet/"+url.PathEscape(string(id)), &out); err != nil {
		return domain.WalletAccount{}, err
	}
	return out, nil
}

// Health reports whether the portal is reachable.
func (c *Client) Health(ctx context.Context) error {
	var out struct {
		Status string `json:"status"`
	}
	return c.getJSON(ctx, "/health", &out)
}

func (c *Client) post(ctx context.Context, path string, in any, out any) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("portal post %s: %s", path, responseError(resp))
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("portal get %s: %s", path, responseError(resp))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// responseError prefers the portal's JSON error message over the bare status.
func responseError(resp *http.Response) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return fmt.Sprintf("%s (%s)", body.Error, resp.Status)
	}
	return resp.Status
}

// Compile-time assertion that Client implements domain.PortalClient.
var _ domain.PortalClient = (*Client)(nil)
