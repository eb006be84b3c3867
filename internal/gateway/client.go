// Package gateway is a thin typed wrapper over the banking backend's REST
// contract. One method per backend capability, one round trip per call, no
// retries and no caching.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/cashpoint/atm-client/internal/apperrors"
	"github.com/cashpoint/atm-client/internal/models"
)

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the banking backend. Stateless; safe for reuse across
// operations.
type Client struct {
	client  httpClient
	baseURL url.URL
}

// NewClient builds a gateway client around the given HTTP client and
// backend base URL.
func NewClient(client httpClient, baseURL url.URL) *Client {
	return &Client{
		client:  client,
		baseURL: baseURL,
	}
}

// Authenticate posts credentials and returns the backend's response body
// verbatim. The backend signals success with a literal marker string rather
// than a structured status, so interpretation is left to the caller.
func (c *Client) Authenticate(ctx context.Context, creds models.Credentials) (string, error) {
	body, err := c.post(ctx, c.baseURL.JoinPath("authentication"), creds)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// FindUserByEmail looks up the user record for an email address.
func (c *Client) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	u := c.baseURL.JoinPath("transaction", "user")
	q := u.Query()
	q.Set("email", email)
	u.RawQuery = q.Encode()

	var user models.User
	if err := c.getJSON(ctx, u, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// FetchBalance returns the authoritative account snapshot for a user.
func (c *Client) FetchBalance(ctx context.Context, userID int64) (models.Account, error) {
	u := c.baseURL.JoinPath("transaction", "balance", strconv.FormatInt(userID, 10))

	var account models.Account
	if err := c.getJSON(ctx, u, &account); err != nil {
		return models.Account{}, err
	}
	return account, nil
}

// Deposit submits a deposit for the given account.
func (c *Client) Deposit(ctx context.Context, accountID int64, amount decimal.Decimal) error {
	u := c.baseURL.JoinPath("transaction", "deposit", strconv.FormatInt(accountID, 10))
	_, err := c.post(ctx, u, models.TransactionRequest{Amount: amount, Type: models.TypeDeposit})
	return err
}

// Withdraw submits a withdrawal for the given account.
func (c *Client) Withdraw(ctx context.Context, accountID int64, amount decimal.Decimal) error {
	u := c.baseURL.JoinPath("transaction", "withdrawal", strconv.FormatInt(accountID, 10))
	_, err := c.post(ctx, u, models.TransactionRequest{Amount: amount, Type: models.TypeWithdraw})
	return err
}

// FetchHistory returns one page of transaction history for an account.
func (c *Client) FetchHistory(ctx context.Context, accountID int64, pageNo, pageSize int) (models.HistoryPage, error) {
	u := c.baseURL.JoinPath("transaction", "history", strconv.FormatInt(accountID, 10))
	q := u.Query()
	q.Set("pageNo", strconv.Itoa(pageNo))
	q.Set("pageSize", strconv.Itoa(pageSize))
	u.RawQuery = q.Encode()

	var page models.HistoryPage
	if err := c.getJSON(ctx, u, &page); err != nil {
		return models.HistoryPage{}, err
	}
	return page, nil
}

func (c *Client) post(ctx context.Context, u *url.URL, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, &apperrors.NetworkError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(data))
	if err != nil {
		return nil, &apperrors.NetworkError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

func (c *Client) getJSON(ctx context.Context, u *url.URL, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return &apperrors.NetworkError{Err: err}
	}

	body, err := c.do(req)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &apperrors.RemoteError{StatusCode: http.StatusOK, Message: "malformed backend response"}
	}
	return nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		log.Printf("[GATEWAY] %s %s failed: %v", req.Method, req.URL.Path, err)
		return nil, &apperrors.NetworkError{Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperrors.NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("[GATEWAY] %s %s returned %d", req.Method, req.URL.Path, resp.StatusCode)
		return nil, &apperrors.RemoteError{
			StatusCode: resp.StatusCode,
			Message:    backendMessage(body),
		}
	}

	return body, nil
}

// backendMessage pulls the human-readable message out of an error body.
// The backend wraps errors as {"message": "..."}; anything else is passed
// through as-is.
func backendMessage(body []byte) string {
	var wrapped struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Message != "" {
		return wrapped.Message
	}
	return string(body)
}
