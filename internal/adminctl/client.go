// Package adminctl implements a small operator tool that bootstraps an
// administrator account against a running accounts server.
package adminctl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the accounts server's HTTP endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type createAdminRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Role        string `json:"role"`
}

// CreateAdmin registers an ADMIN account. The server makes the new account
// its own group owner.
func (c *Client) CreateAdmin(ctx context.Context, username, email, password, phoneNumber string) error {

	body, err := json.Marshal(createAdminRequest{
		Username:    username,
		Email:       email,
		Password:    password,
		PhoneNumber: phoneNumber,
		Role:        "ADMIN",
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/users/create", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("server answered %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	return nil
}
