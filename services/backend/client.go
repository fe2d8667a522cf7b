package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/schema"
	"go.uber.org/zap"

	"visionpay/models"
)

const maxBodyBytes = 1 << 20

// Client talks to the license backend. It is built once in main and shared
// by every service; it holds no per-request state.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
	encoder *schema.Encoder
}

// NewClient returns a Client for baseURL. A nil httpClient means http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger,
		encoder: schema.NewEncoder(),
	}
}

var _ API = (*Client)(nil)

func (c *Client) Health(ctx context.Context) (*models.HealthResponse, error) {
	req, err := c.healthRequest(ctx)
	if err != nil {
		return nil, err
	}
	var out models.HealthResponse
	if err := c.do(req, "health", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UserExists treats a 404 as "no such user".
func (c *Client) UserExists(ctx context.Context, email string) (bool, error) {
	req, err := c.userExistsRequest(ctx, email)
	if err != nil {
		return false, err
	}
	var out models.UserExistsResponse
	if err := c.do(req, "user-exists", &out); err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return out.Exists, nil
}

func (c *Client) CreateAccount(ctx context.Context, in models.CreateAccountRequest) (*models.CreateAccountResponse, error) {
	req, err := c.createAccountRequest(ctx, in)
	if err != nil {
		return nil, err
	}
	var out models.CreateAccountResponse
	if err := c.do(req, "create-account", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetUser(ctx context.Context, email string) (*models.UserRecord, error) {
	req, err := c.getUserRequest(ctx, email)
	if err != nil {
		return nil, err
	}
	var out models.UserRecord
	if err := c.do(req, "get-user", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetAPIKeyByEmail(ctx context.Context, email string) (*models.APIKeyResponse, error) {
	req, err := c.apiKeyByEmailRequest(ctx, email)
	if err != nil {
		return nil, err
	}
	var out models.APIKeyResponse
	if err := c.do(req, "api-key-by-email", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetAPIKeyByLicense(ctx context.Context, licenseCode string) (*models.APIKeyResponse, error) {
	req, err := c.apiKeyByLicenseRequest(ctx, licenseCode)
	if err != nil {
		return nil, err
	}
	var out models.APIKeyResponse
	if err := c.do(req, "api-key-by-license", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateAPIKey(ctx context.Context, in models.UpdateAPIKeyRequest) (*models.MessageResponse, error) {
	req, err := c.updateAPIKeyRequest(ctx, in)
	if err != nil {
		return nil, err
	}
	var out models.MessageResponse
	if err := c.do(req, "update-api-key", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CheckLicense(ctx context.Context, licenseCode string) (*models.LicenseInfo, error) {
	req, err := c.checkLicenseRequest(ctx, licenseCode)
	if err != nil {
		return nil, err
	}
	var out models.LicenseInfo
	if err := c.do(req, "check-license", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SendLicenseEmail(ctx context.Context, email string) (*models.SendLicenseEmailResponse, error) {
	req, err := c.sendLicenseEmailRequest(ctx, models.SendLicenseEmailRequest{Email: email})
	if err != nil {
		return nil, err
	}
	var out models.SendLicenseEmailResponse
	if err := c.do(req, "send-license-email", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCheckoutSession(ctx context.Context, in models.CheckoutSessionRequest) (*models.CheckoutSessionResponse, error) {
	req, err := c.checkoutSessionRequest(ctx, in)
	if err != nil {
		return nil, err
	}
	var out models.CheckoutSessionResponse
	if err := c.do(req, "create-checkout-session", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do sends req and decodes a 2xx JSON body into out. Anything else becomes an *APIError.
func (c *Client) do(req *http.Request, op string, out any) error {
	start := time.Now()
	fields := []zap.Field{
		zap.String("op", op),
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("backend call failed", append(fields, zap.Error(err))...)
		return &APIError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	fields = append(fields, zap.Int("status", resp.StatusCode), zap.Duration("took", time.Since(start)))
	if err != nil {
		c.logger.Warn("backend response unreadable", append(fields, zap.Error(err))...)
		return &APIError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := errorDetail(body)
		c.logger.Warn("backend call rejected", append(fields, zap.String("detail", detail))...)
		return &APIError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Detail:     detail,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	c.logger.Debug("backend call", fields...)
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &APIError{Op: op, StatusCode: resp.StatusCode, Detail: "malformed response", Err: err}
	}
	return nil
}
