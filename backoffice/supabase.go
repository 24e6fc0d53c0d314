package backoffice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/awnumar/memguard"

	"github.com/royalkeys/royalkeys/catalog"
)

// SupabaseConfig holds Supabase connection configuration.
type SupabaseConfig struct {
	// URL is the project base URL, e.g. https://xyz.supabase.co.
	URL string
	// AnonKey authenticates auth-endpoint requests.
	AnonKey string
	// ServiceKey authenticates REST requests. Moved into a guarded
	// enclave by NewSupabaseClient.
	ServiceKey string
	// Table is the products table name. Empty means "products".
	Table string
	// Admins is the sign-in allowlist. Empty means DefaultAdmins.
	Admins []string
}

// SupabaseClient implements Service against Supabase's GoTrue auth and
// PostgREST data APIs.
type SupabaseClient struct {
	baseURL    string
	anonKey    string
	serviceKey *memguard.Enclave
	table      string
	admins     []string
	client     *http.Client
}

var _ Service = (*SupabaseClient)(nil)

// SupabaseOption configures a SupabaseClient.
type SupabaseOption func(*SupabaseClient)

// WithHTTPClient overrides the HTTP client. Intended for tests.
func WithHTTPClient(hc *http.Client) SupabaseOption {
	return func(c *SupabaseClient) { c.client = hc }
}

// NewSupabaseClient creates a client for the given project.
func NewSupabaseClient(cfg SupabaseConfig, opts ...SupabaseOption) (*SupabaseClient, error) {
	if cfg.URL == "" {
		return nil, ErrNotConfigured
	}
	c := &SupabaseClient{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		anonKey: cfg.AnonKey,
		table:   cfg.Table,
		admins:  cfg.Admins,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	if c.table == "" {
		c.table = "products"
	}
	if len(c.admins) == 0 {
		c.admins = DefaultAdmins
	}
	if cfg.ServiceKey != "" {
		c.serviceKey = memguard.NewEnclave([]byte(cfg.ServiceKey))
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *SupabaseClient) restURL() string {
	return fmt.Sprintf("%s/rest/v1/%s", c.baseURL, c.table)
}

// setRESTHeaders attaches the service-role key to a PostgREST request.
func (c *SupabaseClient) setRESTHeaders(req *http.Request) error {
	if c.serviceKey == nil {
		return ErrNotConfigured
	}
	keyBuf, err := c.serviceKey.Open()
	if err != nil {
		return fmt.Errorf("opening service key enclave: %w", err)
	}
	key := string(keyBuf.Bytes())
	keyBuf.Destroy()
	req.Header.Set("apikey", key)
	req.Header.Set("Authorization", "Bearer "+key)
	req.Header.Set("Content-Type", "application/json")
	return nil
}

func supabaseError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return fmt.Errorf("supabase returned %d: %s", resp.StatusCode, string(body))
}

// SignIn performs a password-grant sign-in against the auth API. Emails
// outside the allowlist are rejected before any network call.
func (c *SupabaseClient) SignIn(ctx context.Context, email, password string) error {
	if !allowlisted(c.admins, email) {
		return ErrNotAllowed
	}

	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/auth/v1/token?grant_type=password", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
		return ErrInvalidCredentials
	}
	if resp.StatusCode >= 400 {
		return supabaseError(resp)
	}
	return nil
}

// ResetPassword triggers the hosted recovery-email flow for email.
func (c *SupabaseClient) ResetPassword(ctx context.Context, email string) error {
	body, err := json.Marshal(map[string]string{"email": email})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/auth/v1/recover", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return supabaseError(resp)
	}
	return nil
}

// ListProducts returns every row of the products table ordered by ID.
func (c *SupabaseClient) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	reqURL := c.restURL() + "?select=*&order=id.asc"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	if err := c.setRESTHeaders(req); err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, supabaseError(resp)
	}
	var products []catalog.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("decoding products: %w", err)
	}
	return products, nil
}

// UpsertProduct inserts or updates a product row keyed by ID.
func (c *SupabaseClient) UpsertProduct(ctx context.Context, p catalog.Product) error {
	body, err := json.Marshal(p)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.restURL(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	if err := c.setRESTHeaders(req); err != nil {
		return err
	}
	req.Header.Set("Prefer", "resolution=merge-duplicates")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return supabaseError(resp)
	}
	return nil
}

// DeleteProduct removes the product row with the given ID.
func (c *SupabaseClient) DeleteProduct(ctx context.Context, id string) error {
	reqURL := fmt.Sprintf("%s?id=eq.%s", c.restURL(), url.QueryEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, reqURL, nil)
	if err != nil {
		return err
	}
	if err := c.setRESTHeaders(req); err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return supabaseError(resp)
	}
	return nil
}
