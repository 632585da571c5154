package views

import (
	"context"
	"errors"
	"fmt"

	"github.com/mylittlefarma/pharmacy-api/client"
	"github.com/mylittlefarma/pharmacy-api/client/session"
	"github.com/mylittlefarma/pharmacy-api/entities"
)

// LoginView signs a user in and stores the resulting session.
type LoginView struct {
	api      client.API
	sessions session.Store
}

// NewLoginView creates the login view.
func NewLoginView(api client.API, sessions session.Store) *LoginView {
	return &LoginView{api: api, sessions: sessions}
}

// Render returns the login prompt.
func (v *LoginView) Render() string {
	return "Sign in\n\nEnter your username and password."
}

// Submit authenticates and persists the session on success.
func (v *LoginView) Submit(ctx context.Context, username, password string) (entities.Session, error) {
	if username == "" || password == "" {
		return entities.Session{}, errors.New("username and password are required")
	}

	sess, err := v.api.Login(ctx, username, password)
	if err != nil {
		return entities.Session{}, err
	}

	if err := v.sessions.Set(sess); err != nil {
		return entities.Session{}, fmt.Errorf("signed in but failed to save session: %w", err)
	}

	return sess, nil
}

// SignupView registers a new account.
type SignupView struct {
	api      client.API
	sessions session.Store
}

// NewSignupView creates the signup view.
func NewSignupView(api client.API, sessions session.Store) *SignupView {
	return &SignupView{api: api, sessions: sessions}
}

// Render returns the signup prompt.
func (v *SignupView) Render() string {
	return "Create an account\n\nRoles: customer, pharmacist, practitioner."
}

// Submit registers the account, then signs in and stores the session. The
// client-side gate runs before any network call: passwords must match and a
// known role must be chosen.
func (v *SignupView) Submit(ctx context.Context, username, email, password, confirm string, role entities.Role) (entities.Session, error) {
	if password != confirm {
		return entities.Session{}, errors.New("passwords do not match")
	}
	if !entities.KnownRole(role) {
		return entities.Session{}, errors.New("please choose a role")
	}

	if err := v.api.Signup(ctx, username, email, password, role); err != nil {
		return entities.Session{}, err
	}

	sess, err := v.api.Login(ctx, username, password)
	if err != nil {
		return entities.Session{}, err
	}

	if err := v.sessions.Set(sess); err != nil {
		return entities.Session{}, fmt.Errorf("registered but failed to save session: %w", err)
	}

	return sess, nil
}
