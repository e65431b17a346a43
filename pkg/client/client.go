// Package client is the Go SDK for the PrintHub API: a thin HTTP client
// plus the stateful pieces a frontend needs (AuthStore, EstimateSession).
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 60 * time.Second

// APIError is a non-2xx answer from the API, carrying the server's
// {"error": ...} message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
}

// Client talks to one PrintHub API server. It is stateless and safe for
// concurrent use; auth state lives in AuthStore.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient builds a client for the given base URL, e.g.
// "http://localhost:8080/v1". httpc may be nil.
func NewClient(baseURL string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   httpc,
	}
}

func (c *Client) Register(ctx context.Context, name, email, password string) (AuthPayload, error) {
	var out AuthPayload
	err := c.doJSON(ctx, http.MethodPost, "/auth/register", "", map[string]string{
		"name": name, "email": email, "password": password,
	}, &out)
	return out, err
}

func (c *Client) Login(ctx context.Context, email, password string) (AuthPayload, error) {
	var out AuthPayload
	err := c.doJSON(ctx, http.MethodPost, "/auth/login", "", map[string]string{
		"email": email, "password": password,
	}, &out)
	return out, err
}

func (c *Client) Refresh(ctx context.Context, userID, refreshToken string) (AuthPayload, error) {
	var out AuthPayload
	err := c.doJSON(ctx, http.MethodPost, "/auth/refresh", "", map[string]string{
		"userId": userID, "refreshToken": refreshToken,
	}, &out)
	return out, err
}

func (c *Client) Me(ctx context.Context, accessToken string) (User, error) {
	var out User
	err := c.doJSON(ctx, http.MethodGet, "/auth/me", accessToken, nil, &out)
	return out, err
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/forgot-password", "", map[string]string{"email": email}, nil)
}

func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) (AuthPayload, error) {
	var out AuthPayload
	err := c.doJSON(ctx, http.MethodPost, "/auth/reset-password", "", map[string]string{
		"token": token, "newPassword": newPassword,
	}, &out)
	return out, err
}

// RequestEstimate uploads a model file as multipart/form-data and returns
// the estimate. accessToken may be empty; estimates are public.
func (c *Client) RequestEstimate(ctx context.Context, accessToken, fileName string, contents io.Reader, material, quality string) (Estimate, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return Estimate{}, err
	}
	if _, err := io.Copy(part, contents); err != nil {
		return Estimate{}, err
	}
	if material != "" {
		if err := mw.WriteField("material", material); err != nil {
			return Estimate{}, err
		}
	}
	if quality != "" {
		if err := mw.WriteField("quality", quality); err != nil {
			return Estimate{}, err
		}
	}
	if err := mw.Close(); err != nil {
		return Estimate{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/estimates", &body)
	if err != nil {
		return Estimate{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	var out Estimate
	if err := c.send(req, &out); err != nil {
		return Estimate{}, err
	}
	return out, nil
}

func (c *Client) GetCart(ctx context.Context, accessToken string) (Cart, error) {
	var out Cart
	err := c.doJSON(ctx, http.MethodGet, "/cart", accessToken, nil, &out)
	return out, err
}

func (c *Client) AddCartItem(ctx context.Context, accessToken string, item AddCartItemInput) (Cart, error) {
	var out Cart
	err := c.doJSON(ctx, http.MethodPost, "/cart/items", accessToken, item, &out)
	return out, err
}

func (c *Client) RemoveCartItem(ctx context.Context, accessToken, itemID string) (Cart, error) {
	var out Cart
	err := c.doJSON(ctx, http.MethodDelete, "/cart/items/"+itemID, accessToken, nil, &out)
	return out, err
}

func (c *Client) Checkout(ctx context.Context, accessToken, notes string) (Order, error) {
	var out Order
	err := c.doJSON(ctx, http.MethodPost, "/orders", accessToken, map[string]string{"notes": notes}, &out)
	return out, err
}

func (c *Client) ListOrders(ctx context.Context, accessToken string) ([]Order, error) {
	var out []Order
	err := c.doJSON(ctx, http.MethodGet, "/orders", accessToken, nil, &out)
	return out, err
}

func (c *Client) GetOrder(ctx context.Context, accessToken, orderID string) (Order, error) {
	var out Order
	err := c.doJSON(ctx, http.MethodGet, "/orders/"+orderID, accessToken, nil, &out)
	return out, err
}

func (c *Client) doJSON(ctx context.Context, method, path, accessToken string, in, out any) error {
	var body io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	res, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &APIError{StatusCode: res.StatusCode, Message: errorMessage(payload, res.StatusCode)}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(payload, out)
}

func errorMessage(payload []byte, status int) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(payload, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return http.StatusText(status)
}
