package storefront

// Role values for User.Role.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// GameStatus represents the moderation status of a game listing.
type GameStatus string

const (
	GameStatusPending  GameStatus = "pending"
	GameStatusApproved GameStatus = "approved"
	GameStatusRejected GameStatus = "rejected"
)

// ItemType represents the kind of item behind a marketplace listing.
type ItemType string

const (
	ItemTypeGame  ItemType = "game"
	ItemTypeFrame ItemType = "frame"
)

// User is an account record. The full record (with email and balance) is
// returned by the auth service and the unfiltered users listing; public
// profile lookups omit the email and include hours_online.
type User struct {
	ID          int64   `json:"id"`
	Email       string  `json:"email,omitempty"`
	Username    string  `json:"username"`
	DisplayName string  `json:"display_name"`
	AvatarURL   string  `json:"avatar_url"`
	Balance     float64 `json:"balance"`
	Role        string  `json:"role"`
	IsVerified  bool    `json:"is_verified"`
	IsBanned    bool    `json:"is_banned"`
	HoursOnline int     `json:"hours_online,omitempty"`
}

// IsAdmin reports whether the account carries the admin role. This is a
// rendering hint only; authorization is enforced by the backend services.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Game is a game listing. Status transitions are server-authoritative.
type Game struct {
	ID                int64      `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Price             float64    `json:"price"`
	DeveloperEmail    string     `json:"developer_email,omitempty"`
	Genre             string     `json:"genre,omitempty"`
	AgeRating         string     `json:"age_rating,omitempty"`
	FileURL           string     `json:"file_url,omitempty"`
	LogoURL           string     `json:"logo_url,omitempty"`
	Screenshots       []string   `json:"screenshots,omitempty"`
	PublisherUsername string     `json:"publisher_username,omitempty"`
	Status            GameStatus `json:"status"`
	IsFeatured        bool       `json:"is_featured,omitempty"`
}

// Frame is a cosmetic avatar decoration. IsActive is only meaningful in
// the owned-frames view; the server guarantees at most one active frame
// per owner.
type Frame struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url"`
	IsActive bool    `json:"is_active,omitempty"`
}

// MarketItem is a resale listing with denormalized seller and item
// display fields.
type MarketItem struct {
	ID             int64    `json:"id"`
	SellerID       int64    `json:"seller_id"`
	ItemType       ItemType `json:"item_type"`
	ItemID         int64    `json:"item_id"`
	Price          float64  `json:"price"`
	SellerUsername string   `json:"seller_username"`
	ItemName       string   `json:"item_name"`
	ItemImage      string   `json:"item_image"`
}

// PublishResult is the acknowledgement for a submitted game.
type PublishResult struct {
	GameID  int64  `json:"game_id"`
	Message string `json:"message"`
}

// SellResult is the acknowledgement for a created marketplace listing.
type SellResult struct {
	ItemID  int64  `json:"item_id"`
	Message string `json:"message"`
}

// CreateFrameResult is the acknowledgement for a created frame.
type CreateFrameResult struct {
	FrameID int64  `json:"frame_id"`
	Message string `json:"message"`
}

// BuyResult is the acknowledgement for a marketplace purchase.
type BuyResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// API response wrappers

type userResponse struct {
	User User `json:"user"`
}

type usersResponse struct {
	Users []User `json:"users"`
}

type gamesResponse struct {
	Games []Game `json:"games"`
}

type framesResponse struct {
	Frames []Frame `json:"frames"`
}

type itemsResponse struct {
	Items []MarketItem `json:"items"`
}
