package storefront

import (
	"context"
	"net/url"
)

// GamesService handles the game catalog: listing, publishing and
// moderation.
type GamesService struct {
	client *Client
	base   string
}

// List returns games with the given moderation status.
func (s *GamesService) List(ctx context.Context, status GameStatus) ([]Game, error) {
	query := url.Values{"status": {string(status)}}
	var resp gamesResponse
	if err := s.client.get(ctx, s.base, query, &resp); err != nil {
		return nil, err
	}
	return resp.Games, nil
}

// PublishGameRequest carries a new game submission. The server forces the
// initial status to pending regardless of the payload.
type PublishGameRequest struct {
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Price             float64  `json:"price"`
	DeveloperEmail    string   `json:"developer_email,omitempty"`
	Genre             string   `json:"genre,omitempty"`
	AgeRating         string   `json:"age_rating,omitempty"`
	FileURL           string   `json:"file_url,omitempty"`
	LogoURL           string   `json:"logo_url,omitempty"`
	Screenshots       []string `json:"screenshots,omitempty"`
	PublisherUsername string   `json:"publisher_username"`
}

// Publish submits a game for moderation.
func (s *GamesService) Publish(ctx context.Context, req PublishGameRequest) (*PublishResult, error) {
	var resp PublishResult
	if err := s.client.post(ctx, s.base, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type moderateGameRequest struct {
	GameID     int64  `json:"game_id"`
	Action     string `json:"action"`
	IsFeatured *bool  `json:"is_featured,omitempty"`
}

// Approve moves a pending game into the public catalog.
func (s *GamesService) Approve(ctx context.Context, gameID int64) error {
	return s.client.put(ctx, s.base, moderateGameRequest{GameID: gameID, Action: "approve"}, nil)
}

// Reject marks a pending game as rejected.
func (s *GamesService) Reject(ctx context.Context, gameID int64) error {
	return s.client.put(ctx, s.base, moderateGameRequest{GameID: gameID, Action: "reject"}, nil)
}

// SetFeatured toggles the admin-curated promotion flag on a game.
func (s *GamesService) SetFeatured(ctx context.Context, gameID int64, featured bool) error {
	return s.client.put(ctx, s.base, moderateGameRequest{
		GameID:     gameID,
		Action:     "set_featured",
		IsFeatured: &featured,
	}, nil)
}
