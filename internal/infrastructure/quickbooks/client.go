package quickbooks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wms/backend/internal/domain/accounting"
)

// maxResponseSize is the maximum allowed response size from the QuickBooks API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// Client implements accounting.LedgerProvider against the QuickBooks
// Online REST API
type Client struct {
	config     *Config
	httpClient *http.Client
}

var _ accounting.LedgerProvider = (*Client)(nil)

// NewClient creates a QuickBooks client with the given configuration
func NewClient(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

// AuthorizationURL builds the Intuit consent page URL for the given state
func (c *Client) AuthorizationURL(state string) string {
	values := url.Values{}
	values.Set("client_id", c.config.ClientID)
	values.Set("response_type", "code")
	values.Set("scope", accountingScope)
	values.Set("redirect_uri", c.config.RedirectURI)
	values.Set("state", state)
	return c.config.AuthorizeURL + "?" + values.Encode()
}

// ExchangeCode trades an authorization code for a token pair
func (c *Client) ExchangeCode(ctx context.Context, code string) (*accounting.TokenSet, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", c.config.RedirectURI)

	tokens, err := c.requestTokens(ctx, form)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", accounting.ErrExchangeFailed, err)
	}
	return tokens, nil
}

// RefreshTokens exchanges a refresh token for a fresh token pair.
// QuickBooks rotates the refresh token on every call, so callers must
// persist the returned pair.
func (c *Client) RefreshTokens(ctx context.Context, refreshToken string) (*accounting.TokenSet, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)

	tokens, err := c.requestTokens(ctx, form)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", accounting.ErrRefreshFailed, err)
	}
	return tokens, nil
}

// FetchCompanyInfo reads the company metadata for a realm
func (c *Client) FetchCompanyInfo(ctx context.Context, accessToken, realmID string) (*accounting.CompanyInfo, error) {
	endpoint := fmt.Sprintf("%s/v3/company/%s/companyinfo/%s?minorversion=%s",
		c.config.APIBaseURL, url.PathEscape(realmID), url.PathEscape(realmID), minorVersion)

	body, err := c.doAPIRequest(ctx, accessToken, endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", accounting.ErrMetadataFetchFailed, err)
	}

	var parsed companyInfoResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", accounting.ErrMetadataFetchFailed, err)
	}
	if parsed.CompanyInfo.CompanyName == "" {
		return nil, fmt.Errorf("%w: response has no company name", accounting.ErrMetadataFetchFailed)
	}

	return &accounting.CompanyInfo{
		CompanyName: parsed.CompanyInfo.CompanyName,
		Country:     parsed.CompanyInfo.Country,
	}, nil
}

// QueryItems reads one page of the item catalog for a realm
func (c *Client) QueryItems(ctx context.Context, accessToken, realmID string, startPos, pageSize int) (*accounting.ItemPage, error) {
	query := fmt.Sprintf("SELECT * FROM Item STARTPOSITION %d MAXRESULTS %d", startPos, pageSize)
	endpoint := fmt.Sprintf("%s/v3/company/%s/query?query=%s&minorversion=%s",
		c.config.APIBaseURL, url.PathEscape(realmID), url.QueryEscape(query), minorVersion)

	body, err := c.doAPIRequest(ctx, accessToken, endpoint)
	if err != nil {
		return nil, err
	}

	var parsed queryResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("quickbooks: malformed query response: %w", err)
	}

	page := &accounting.ItemPage{
		Items:      make([]accounting.LedgerItem, 0, len(parsed.QueryResponse.Item)),
		StartPos:   startPos,
		MaxResults: pageSize,
	}
	for _, item := range parsed.QueryResponse.Item {
		page.Items = append(page.Items, convertItem(item))
	}
	return page, nil
}

// requestTokens posts a form to the token endpoint with client basic auth
func (c *Client) requestTokens(ctx context.Context, form url.Values) (*accounting.TokenSet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.config.ClientID, c.config.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var tokenErr tokenErrorResponse
		if json.Unmarshal(body, &tokenErr) == nil && tokenErr.Error != "" {
			return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, tokenErr.Error)
		}
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	var parsed tokenResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("malformed token response: %w", err)
	}
	if parsed.AccessToken == "" || parsed.RefreshToken == "" {
		return nil, errors.New("token response missing tokens")
	}

	return &accounting.TokenSet{
		AccessToken:  parsed.AccessToken,
		RefreshToken: parsed.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(parsed.ExpiresIn) * time.Second),
	}, nil
}

// doAPIRequest performs an authenticated GET against the QuickBooks API
func (c *Client) doAPIRequest(ctx context.Context, accessToken, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("quickbooks: failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("quickbooks: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var fault faultResponse
		if json.Unmarshal(body, &fault) == nil && len(fault.Fault.Error) > 0 {
			return nil, fmt.Errorf("quickbooks: HTTP %d: %s", resp.StatusCode, fault.Fault.Error[0].Message)
		}
		return nil, fmt.Errorf("quickbooks: HTTP %d", resp.StatusCode)
	}

	return body, nil
}

// classifyTransportError maps network failures to domain sentinels
func classifyTransportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %v", accounting.ErrProviderTimeout, err)
	}
	return fmt.Errorf("%w: %v", accounting.ErrProviderUnavailable, err)
}

func convertItem(item qbItem) accounting.LedgerItem {
	converted := accounting.LedgerItem{
		ID:          item.ID,
		Name:        item.Name,
		SKU:         item.Sku,
		Description: item.Description,
		Type:        accounting.ItemType(item.Type),
		UnitPrice:   decimal.NewFromFloat(item.UnitPrice),
		Active:      item.Active,
	}
	return converted
}
