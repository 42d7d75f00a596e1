package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/soldiers/admin-gateway/internal/core/domain"
	"github.com/soldiers/admin-gateway/internal/core/ports"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type permissionDTO struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
	Active   *bool  `json:"active"`
}

type profileDTO struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Permissions []permissionDTO `json:"permissions"`
}

type loginResponse struct {
	Status string `json:"status"`
	Token  string `json:"token"`
	User   struct {
		ID          int64       `json:"id"`
		Name        string      `json:"name"`
		Email       string      `json:"email"`
		Role        string      `json:"role"`
		Profile     *profileDTO `json:"profile"`
		Permissions []string    `json:"permissions"`
	} `json:"user"`
}

// activeKeys renders the active permissions as "RESOURCE:ACTION". A missing
// active flag counts as active.
func activeKeys(perms []permissionDTO) []string {
	out := make([]string, 0, len(perms))
	for _, p := range perms {
		if p.Active != nil && !*p.Active {
			continue
		}
		if p.Resource == "" || p.Action == "" {
			continue
		}
		out = append(out, domain.PermissionKey(domain.Resource(p.Resource), domain.Action(p.Action)))
	}
	return out
}

func (c *Client) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	var resp loginResponse
	if err := c.Do(ctx, "", http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}

	res := &ports.LoginResult{
		Status:      resp.Status,
		Token:       resp.Token,
		User:        domain.User{ID: resp.User.ID, Name: resp.User.Name, Email: resp.User.Email},
		Role:        domain.Role(resp.User.Role),
		Permissions: resp.User.Permissions,
	}
	if p := resp.User.Profile; p != nil {
		res.Profile = &domain.Profile{ID: p.ID, Name: p.Name, Description: p.Description}
		if res.Permissions == nil && p.Permissions != nil {
			res.Permissions = activeKeys(p.Permissions)
		}
	}
	return res, nil
}

func (c *Client) GetProfile(ctx context.Context, token string, id int64) (*ports.ProfileDetail, error) {
	var p profileDTO
	if err := c.Do(ctx, token, http.MethodGet, fmt.Sprintf("/profiles/%d", id), nil, &p); err != nil {
		return nil, err
	}
	return &ports.ProfileDetail{
		Profile:     domain.Profile{ID: p.ID, Name: p.Name, Description: p.Description},
		Permissions: activeKeys(p.Permissions),
	}, nil
}

func (c *Client) ListProducts(ctx context.Context, token string) ([]domain.Product, error) {
	var out []domain.Product
	if err := c.Do(ctx, token, http.MethodGet, "/products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListGames(ctx context.Context, token string) ([]domain.Game, error) {
	var out []domain.Game
	if err := c.Do(ctx, token, http.MethodGet, "/games", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateSale(ctx context.Context, token string, req domain.SaleRequest) (*domain.Sale, error) {
	var out domain.Sale
	if err := c.Do(ctx, token, http.MethodPost, "/sales", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListSales(ctx context.Context, token string) ([]domain.Sale, error) {
	var out []domain.Sale
	if err := c.Do(ctx, token, http.MethodGet, "/sales", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
