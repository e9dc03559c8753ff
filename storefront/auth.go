package storefront

import "context"

// AuthService handles sign-in and registration.
type AuthService struct {
	client *Client
	base   string
}

type authRequest struct {
	Action   string `json:"action"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username,omitempty"`
}

// Login exchanges credentials for the account record. Invalid credentials
// return an *Error with status 401; banned accounts are rejected with 403.
func (s *AuthService) Login(ctx context.Context, email, password string) (*User, error) {
	var resp userResponse
	err := s.client.post(ctx, s.base, authRequest{
		Action:   "login",
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Register creates a new account and returns its record. Uniqueness of
// email and username is validated server-side only.
func (s *AuthService) Register(ctx context.Context, email, username, password string) (*User, error) {
	var resp userResponse
	err := s.client.post(ctx, s.base, authRequest{
		Action:   "register",
		Email:    email,
		Password: password,
		Username: username,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.User, nil
}
