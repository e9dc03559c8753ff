// Package storefront provides an HTTP client for the FTeam storefront
// backend services: authentication, user records, the game catalog,
// cosmetic frames and the peer-to-peer marketplace.
package storefront

import (
	"net/http"
	"time"
)

// DefaultTimeout is the default HTTP client timeout.
const DefaultTimeout = 30 * time.Second

// Endpoints holds the base URL of each backend service.
type Endpoints struct {
	Auth   string
	Users  string
	Games  string
	Frames string
	Market string
}

// Client is the FTeam storefront API client.
//
// Use NewClient to create a client bound to a set of service endpoints:
//
//	client := storefront.NewClient(endpoints)
//	user, err := client.Auth.Login(ctx, "a@b.c", "secret")
type Client struct {
	endpoints  Endpoints
	httpClient *http.Client

	// Services
	Auth   *AuthService
	Users  *UsersService
	Games  *GamesService
	Frames *FramesService
	Market *MarketService
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if c.httpClient == nil {
			c.httpClient = &http.Client{}
		}
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new storefront API client for the given endpoints.
func NewClient(endpoints Endpoints, opts ...Option) *Client {
	c := &Client{
		endpoints: endpoints,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	// Initialize services
	c.Auth = &AuthService{client: c, base: endpoints.Auth}
	c.Users = &UsersService{client: c, base: endpoints.Users}
	c.Games = &GamesService{client: c, base: endpoints.Games}
	c.Frames = &FramesService{client: c, base: endpoints.Frames}
	c.Market = &MarketService{client: c, base: endpoints.Market}

	return c
}

// Endpoints returns the configured service endpoints.
func (c *Client) Endpoints() Endpoints {
	return c.endpoints
}
