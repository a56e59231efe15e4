package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/aimingmed/sctracker-console/pkg/enums"
	"github.com/aimingmed/sctracker-console/pkg/models"
)

const resourceAuth = "accounts"

type AuthAPI struct{ c *Client }

// Login exchanges credentials for a bearer token.
func (a *AuthAPI) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	var out models.LoginResponse
	err := a.c.do(ctx, call{
		resource:  resourceAuth,
		operation: "login",
		method:    http.MethodPost,
		path:      "/accounts/login",
		body:      models.Credentials{Username: username, Password: password},
		out:       &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CurrentUser fetches the profile the token belongs to.
func (a *AuthAPI) CurrentUser(ctx context.Context, token string) (*models.UserProfile, error) {
	var out models.UserProfile
	err := a.c.do(ctx, call{
		resource:  resourceAuth,
		operation: "me",
		method:    http.MethodGet,
		path:      "/accounts/me",
		out:       &out,
		token:     token,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ResetPassword sets a new password for the account identified by token.
func (a *AuthAPI) ResetPassword(ctx context.Context, token, newPassword string) (*models.MessageResponse, error) {
	var out models.MessageResponse
	err := a.c.do(ctx, call{
		resource:  resourceAuth,
		operation: "reset_password",
		method:    http.MethodPost,
		path:      "/accounts/reset-password",
		body:      models.ResetPasswordRequest{Token: token, NewPassword: newPassword},
		out:       &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUsers returns the accounts holding role.
func (a *AuthAPI) ListUsers(ctx context.Context, role enums.Role) ([]models.UserProfile, error) {
	var out []models.UserProfile
	err := a.c.do(ctx, call{
		resource:  resourceAuth,
		operation: "list_users",
		method:    http.MethodGet,
		path:      "/accounts/users",
		query:     url.Values{"role": []string{role.String()}},
		out:       &out,
	})
	return out, err
}
