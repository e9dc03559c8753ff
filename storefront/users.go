package storefront

import (
	"context"
	"net/url"
	"strconv"
)

// UsersService handles user records: profile lookups, profile updates and
// the moderation actions of the admin console.
type UsersService struct {
	client *Client
	base   string
}

// Get retrieves a public profile by id.
func (s *UsersService) Get(ctx context.Context, userID int64) (*User, error) {
	query := url.Values{"user_id": {strconv.FormatInt(userID, 10)}}
	var resp userResponse
	if err := s.client.get(ctx, s.base, query, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Search returns public profiles whose username contains the query,
// verified accounts first.
func (s *UsersService) Search(ctx context.Context, search string) ([]User, error) {
	query := url.Values{"search": {search}}
	var resp usersResponse
	if err := s.client.get(ctx, s.base, query, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// List returns full account records. The service trusts the caller; in
// practice only the admin console requests this.
func (s *UsersService) List(ctx context.Context) ([]User, error) {
	var resp usersResponse
	if err := s.client.get(ctx, s.base, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// UpdateProfileRequest carries the editable profile fields.
type UpdateProfileRequest struct {
	DisplayName string
	Username    string
	AvatarURL   string
}

type updateUserRequest struct {
	UserID      int64    `json:"user_id"`
	Action      string   `json:"action"`
	DisplayName string   `json:"display_name,omitempty"`
	Username    string   `json:"username,omitempty"`
	AvatarURL   string   `json:"avatar_url,omitempty"`
	Balance     *float64 `json:"balance,omitempty"`
}

// UpdateProfile replaces the profile fields and returns the full updated
// account record.
func (s *UsersService) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*User, error) {
	var resp userResponse
	err := s.client.put(ctx, s.base, updateUserRequest{
		UserID:      userID,
		Action:      "update_profile",
		DisplayName: req.DisplayName,
		Username:    req.Username,
		AvatarURL:   req.AvatarURL,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// SetVerified toggles the verified badge on an account.
func (s *UsersService) SetVerified(ctx context.Context, userID int64, verified bool) error {
	action := "admin_verify"
	if !verified {
		action = "admin_unverify"
	}
	return s.client.put(ctx, s.base, updateUserRequest{UserID: userID, Action: action}, nil)
}

// SetBanned toggles the ban flag on an account.
func (s *UsersService) SetBanned(ctx context.Context, userID int64, banned bool) error {
	action := "admin_ban"
	if !banned {
		action = "admin_unban"
	}
	return s.client.put(ctx, s.base, updateUserRequest{UserID: userID, Action: action}, nil)
}

// SetBalance overwrites an account's balance.
func (s *UsersService) SetBalance(ctx context.Context, userID int64, balance float64) error {
	return s.client.put(ctx, s.base, updateUserRequest{
		UserID:  userID,
		Action:  "update_balance",
		Balance: &balance,
	}, nil)
}
