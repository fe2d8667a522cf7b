package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"visionpay/models"
)

const formContentType = "application/x-www-form-urlencoded"

// One builder per endpoint. Reads escape the identifier into the path,
// writes encode a typed struct as a urlencoded form.

func (c *Client) healthRequest(ctx context.Context) (*http.Request, error) {
	return c.newRequest(ctx, "health", http.MethodGet, "/", nil)
}

func (c *Client) userExistsRequest(ctx context.Context, email string) (*http.Request, error) {
	return c.newRequest(ctx, "user-exists", http.MethodGet, "/user-exists/"+url.PathEscape(email), nil)
}

func (c *Client) createAccountRequest(ctx context.Context, in models.CreateAccountRequest) (*http.Request, error) {
	return c.newFormRequest(ctx, "create-account", http.MethodPost, "/create-account", &in)
}

func (c *Client) getUserRequest(ctx context.Context, email string) (*http.Request, error) {
	return c.newRequest(ctx, "get-user", http.MethodGet, "/user/"+url.PathEscape(email), nil)
}

func (c *Client) apiKeyByEmailRequest(ctx context.Context, email string) (*http.Request, error) {
	return c.newRequest(ctx, "api-key-by-email", http.MethodGet, "/api-key/by-email/"+url.PathEscape(email), nil)
}

func (c *Client) apiKeyByLicenseRequest(ctx context.Context, licenseCode string) (*http.Request, error) {
	return c.newRequest(ctx, "api-key-by-license", http.MethodGet, "/api-key/by-license/"+url.PathEscape(licenseCode), nil)
}

func (c *Client) updateAPIKeyRequest(ctx context.Context, in models.UpdateAPIKeyRequest) (*http.Request, error) {
	return c.newFormRequest(ctx, "update-api-key", http.MethodPut, "/update-api-key", &in)
}

func (c *Client) checkLicenseRequest(ctx context.Context, licenseCode string) (*http.Request, error) {
	return c.newRequest(ctx, "check-license", http.MethodGet, "/check_license/"+url.PathEscape(licenseCode), nil)
}

func (c *Client) sendLicenseEmailRequest(ctx context.Context, in models.SendLicenseEmailRequest) (*http.Request, error) {
	return c.newFormRequest(ctx, "send-license-email", http.MethodPost, "/send-license-email", &in)
}

func (c *Client) checkoutSessionRequest(ctx context.Context, in models.CheckoutSessionRequest) (*http.Request, error) {
	return c.newFormRequest(ctx, "create-checkout-session", http.MethodPost, "/create-checkout-session", &in)
}

func (c *Client) newFormRequest(ctx context.Context, op, method, path string, form any) (*http.Request, error) {
	values := url.Values{}
	if err := c.encoder.Encode(form, values); err != nil {
		return nil, &APIError{Op: op, Err: fmt.Errorf("encode form: %w", err)}
	}
	req, err := c.newRequest(ctx, op, method, path, strings.NewReader(values.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", formContentType)
	return req, nil
}

func (c *Client) newRequest(ctx context.Context, op, method, path string, body *strings.Reader) (*http.Request, error) {
	var req *http.Request
	var err error
	if body == nil {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	}
	if err != nil {
		return nil, &APIError{Op: op, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}
