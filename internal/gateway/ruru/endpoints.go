package ruru

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"ruru-backoffice/internal/apperr"
	"ruru-backoffice/internal/domain"
)

// API paths.
const (
	pathLogin              = "/auth/login"
	pathUserDetails        = "/auth/user/details"
	pathChangePassword     = "/auth/change-password"
	pathUser               = "/user"
	pathActivateDeactivate = "/user/activate-deactivate"
	pathDocumentStatus     = "/admin/update-document-status/"
	pathCounts             = "/admin/users/counts"
	pathCouriers           = "/admin/couriers"
	pathCustomers          = "/admin/customers"
	pathRiders             = "/admin/riders"
	pathTransactions       = "/admin/transactions"
	pathGetInTouch         = "/demo/get-in-touch"
	pathLocalShipping      = "/demo/request-local-demo-shipping"
	pathIntlShipping       = "/demo/request-international-demo-shipping"
)

// LoginResult is the answer to a successful login.
type LoginResult struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, identifier, password string) (LoginResult, error) {
	r, err := jsonRequest(http.MethodPost, pathLogin, map[string]string{
		"identifier": identifier,
		"password":   password,
	})
	if err != nil {
		return LoginResult{}, err
	}
	env, raw, err := c.do(ctx, r)
	if err != nil {
		return LoginResult{}, err
	}

	var res LoginResult
	if env.hasData() {
		err = json.Unmarshal(env.Data, &res)
	} else {
		err = json.Unmarshal(raw, &res)
	}
	if err != nil {
		return LoginResult{}, fmt.Errorf("ruru api login: decode: %w: %w", apperr.Upstream, err)
	}
	if res.Token == "" {
		return LoginResult{}, &apperr.APIError{Status: http.StatusUnauthorized, Message: "login response carried no token"}
	}
	return res, nil
}

func listPage[T any](ctx context.Context, c *Client, path string, pr domain.PageRequest) (domain.Page[T], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(pr.Page))
	q.Set("limit", strconv.Itoa(pr.Limit))
	env, _, err := c.do(ctx, request{method: http.MethodGet, path: path, query: q})
	if err != nil {
		return domain.Page[T]{}, err
	}

	var items []T
	if env.hasData() {
		if err := json.Unmarshal(env.Data, &items); err != nil {
			return domain.Page[T]{}, fmt.Errorf("ruru api %s: decode data: %w: %w", path, apperr.Upstream, err)
		}
	}
	if items == nil {
		items = []T{}
	}

	p := domain.Pagination{Total: len(items), Page: pr.Page, Limit: pr.Limit}
	if len(items) > 0 {
		p.TotalPages = 1
	}
	if env.Pagination != nil {
		p = *env.Pagination
	}
	return domain.Page[T]{Data: items, Pagination: p}, nil
}

// ListCouriers fetches one page of courier companies.
func (c *Client) ListCouriers(ctx context.Context, pr domain.PageRequest) (domain.Page[domain.Courier], error) {
	return listPage[domain.Courier](ctx, c, pathCouriers, pr)
}

// ListCustomers fetches one page of customers.
func (c *Client) ListCustomers(ctx context.Context, pr domain.PageRequest) (domain.Page[domain.Customer], error) {
	return listPage[domain.Customer](ctx, c, pathCustomers, pr)
}

// ListRiders fetches one page of riders.
func (c *Client) ListRiders(ctx context.Context, pr domain.PageRequest) (domain.Page[domain.Rider], error) {
	return listPage[domain.Rider](ctx, c, pathRiders, pr)
}

// ListTransactions fetches one page of transactions.
func (c *Client) ListTransactions(ctx context.Context, pr domain.PageRequest) (domain.Page[domain.Transaction], error) {
	return listPage[domain.Transaction](ctx, c, pathTransactions, pr)
}

// UpdateDocumentStatus approves or rejects one courier document. The returned
// document is nil when the server answers without one.
func (c *Client) UpdateDocumentStatus(ctx context.Context, docID int64, isVerified bool, comment string) (*domain.Document, error) {
	path := pathDocumentStatus + strconv.FormatInt(docID, 10)
	r, err := jsonRequest(http.MethodPut, path, map[string]any{
		"isVerified": isVerified,
		"comment":    comment,
	})
	if err != nil {
		return nil, err
	}
	env, _, err := c.do(ctx, r)
	if err != nil {
		return nil, err
	}
	if !env.hasData() {
		return nil, nil
	}
	var doc domain.Document
	if err := json.Unmarshal(env.Data, &doc); err != nil || doc.ID == 0 {
		return nil, nil
	}
	return &doc, nil
}

// SetUserActive activates or deactivates a user account.
func (c *Client) SetUserActive(ctx context.Context, userID int64, active bool) error {
	r, err := jsonRequest(http.MethodPatch, pathActivateDeactivate, map[string]any{
		"userId": userID,
		"status": active,
	})
	if err != nil {
		return err
	}
	_, _, err = c.do(ctx, r)
	return err
}

// Counts fetches the dashboard totals.
func (c *Client) Counts(ctx context.Context) (domain.Counts, error) {
	env, _, err := c.do(ctx, request{method: http.MethodGet, path: pathCounts})
	if err != nil {
		return domain.Counts{}, err
	}
	var counts domain.Counts
	if err := decodeData(env, pathCounts, &counts); err != nil {
		return domain.Counts{}, err
	}
	return counts, nil
}

// UserDetails fetches the signed-in admin's profile.
func (c *Client) UserDetails(ctx context.Context) (domain.User, error) {
	env, _, err := c.do(ctx, request{method: http.MethodGet, path: pathUserDetails})
	if err != nil {
		return domain.User{}, err
	}
	var u domain.User
	if err := decodeData(env, pathUserDetails, &u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// UpdateProfile saves the admin's profile and returns the stored user.
func (c *Client) UpdateProfile(ctx context.Context, p domain.ProfileUpdate) (domain.User, error) {
	r, err := jsonRequest(http.MethodPut, pathUser, p)
	if err != nil {
		return domain.User{}, err
	}
	env, _, err := c.do(ctx, r)
	if err != nil {
		return domain.User{}, err
	}
	u := domain.User{FirstName: p.FirstName, LastName: p.LastName, Email: p.Email, PhoneNumber: p.PhoneNumber}
	if env.hasData() {
		_ = json.Unmarshal(env.Data, &u)
	}
	return u, nil
}

// ChangePassword changes the admin's password.
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	r, err := jsonRequest(http.MethodPost, pathChangePassword, map[string]string{
		"currentPassword": current,
		"newPassword":     next,
	})
	if err != nil {
		return err
	}
	_, _, err = c.do(ctx, r)
	return err
}

// GetInTouch posts the contact form.
func (c *Client) GetInTouch(ctx context.Context, m domain.ContactMessage) error {
	r, err := jsonRequest(http.MethodPost, pathGetInTouch, m)
	if err != nil {
		return err
	}
	_, _, err = c.do(ctx, r)
	return err
}

// RequestLocalShipping posts a local shipping quote request as multipart form data.
func (c *Client) RequestLocalShipping(ctx context.Context, q domain.LocalQuote) error {
	body, ct, err := EncodeLocalQuote(q)
	if err != nil {
		return err
	}
	_, _, err = c.do(ctx, request{method: http.MethodPost, path: pathLocalShipping, body: body, contentType: ct})
	return err
}

// RequestInternationalShipping posts an international shipping quote request as multipart form data.
func (c *Client) RequestInternationalShipping(ctx context.Context, q domain.InternationalQuote) error {
	body, ct, err := EncodeInternationalQuote(q)
	if err != nil {
		return err
	}
	_, _, err = c.do(ctx, request{method: http.MethodPost, path: pathIntlShipping, body: body, contentType: ct})
	return err
}
