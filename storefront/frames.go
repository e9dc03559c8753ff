package storefront

import (
	"context"
	"net/url"
	"strconv"
)

// FramesService handles cosmetic frames: the purchasable catalog, per-user
// ownership and the active-frame selection.
type FramesService struct {
	client *Client
	base   string
}

// Catalog returns every frame available for purchase.
func (s *FramesService) Catalog(ctx context.Context) ([]Frame, error) {
	var resp framesResponse
	if err := s.client.get(ctx, s.base, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Frames, nil
}

// Owned returns the frames owned by a user, including which one is
// active.
func (s *FramesService) Owned(ctx context.Context, userID int64) ([]Frame, error) {
	query := url.Values{"user_id": {strconv.FormatInt(userID, 10)}}
	var resp framesResponse
	if err := s.client.get(ctx, s.base, query, &resp); err != nil {
		return nil, err
	}
	return resp.Frames, nil
}

type frameActionRequest struct {
	Action   string  `json:"action"`
	Name     string  `json:"name,omitempty"`
	Price    float64 `json:"price,omitempty"`
	ImageURL string  `json:"image_url,omitempty"`
	UserID   int64   `json:"user_id,omitempty"`
	FrameID  int64   `json:"frame_id,omitempty"`
}

// Create adds a new frame to the catalog (admin console).
func (s *FramesService) Create(ctx context.Context, name string, price float64, imageURL string) (*CreateFrameResult, error) {
	var resp CreateFrameResult
	err := s.client.post(ctx, s.base, frameActionRequest{
		Action:   "create",
		Name:     name,
		Price:    price,
		ImageURL: imageURL,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Buy purchases a catalog frame for a user. The server re-validates the
// balance and rejects with 400 on insufficient funds.
func (s *FramesService) Buy(ctx context.Context, userID, frameID int64) error {
	return s.client.post(ctx, s.base, frameActionRequest{
		Action:  "buy",
		UserID:  userID,
		FrameID: frameID,
	}, nil)
}

// SetActive marks one owned frame active; the server deactivates the
// rest.
func (s *FramesService) SetActive(ctx context.Context, userID, frameID int64) error {
	return s.client.put(ctx, s.base, frameActionRequest{
		Action:  "set_active",
		UserID:  userID,
		FrameID: frameID,
	}, nil)
}
