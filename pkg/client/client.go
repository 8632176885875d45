// Package client is a session-scoped consumer of the task API. Each
// Client carries its own bearer token, so two sessions in one process
// never share credentials through global state.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"tasktracker/internal/core/model/request"
	"tasktracker/internal/core/model/response"
	"tasktracker/pkg/apierrors"

	"github.com/google/uuid"
)

// ErrSessionExpired reports a 401 from the API. The client drops its
// token before returning it; the caller must re-authenticate.
var ErrSessionExpired = errors.New("session expired")

// APIError carries the error envelope of a rejected request.
type APIError struct {
	Envelope apierrors.Envelope
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Envelope.Error, e.Envelope.Status, e.Envelope.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Register creates an account. It does not log the session in.
func (c *Client) Register(ctx context.Context, login, password, confirmation string) error {
	payload := request.SignUpRequest{
		Login:                login,
		Password:             password,
		PasswordConfirmation: confirmation,
	}

	return c.do(ctx, http.MethodPost, "/register", payload, nil)
}

// Login authenticates and stores the issued token on this client only.
func (c *Client) Login(ctx context.Context, login, password string) error {
	payload := request.LoginRequest{
		Login:    login,
		Password: password,
	}

	var result struct {
		RefreshToken string `json:"refresh_token"`
	}

	if err := c.do(ctx, http.MethodPost, "/login", payload, &result); err != nil {
		return err
	}

	c.token = result.RefreshToken

	return nil
}

// Logout discards the session token.
func (c *Client) Logout() {
	c.token = ""
}

// Authenticated reports whether the client currently holds a token.
func (c *Client) Authenticated() bool {
	return c.token != ""
}

func (c *Client) Tasks(ctx context.Context, cursor string, limit int) (response.CursorResponse, error) {
	path := "/tasks?limit=" + strconv.Itoa(limit)
	if cursor != "" {
		path += "&cursor=" + cursor
	}

	var result response.CursorResponse
	err := c.do(ctx, http.MethodGet, path, nil, &result)

	return result, err
}

func (c *Client) Task(ctx context.Context, id uuid.UUID) (response.TaskResponse, error) {
	var result struct {
		Data response.TaskResponse `json:"data"`
	}

	err := c.do(ctx, http.MethodGet, "/tasks/"+id.String(), nil, &result)

	return result.Data, err
}

func (c *Client) CreateTask(ctx context.Context, task request.TaskRequest) (response.TaskResponse, error) {
	var result struct {
		Data response.TaskResponse `json:"data"`
	}

	err := c.do(ctx, http.MethodPost, "/tasks", task, &result)

	return result.Data, err
}

func (c *Client) UpdateTask(ctx context.Context, id uuid.UUID, task request.TaskRequest) (response.TaskResponse, error) {
	var result struct {
		Data response.TaskResponse `json:"data"`
	}

	err := c.do(ctx, http.MethodPut, "/tasks/"+id.String(), task, &result)

	return result.Data, err
}

func (c *Client) DeleteTask(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+id.String(), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body *bytes.Reader

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// Any 401 invalidates the local session, not just expired tokens.
		c.token = ""
		return ErrSessionExpired
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var envelope apierrors.Envelope
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
			return fmt.Errorf("request failed with status %d", resp.StatusCode)
		}

		return &APIError{Envelope: envelope}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
