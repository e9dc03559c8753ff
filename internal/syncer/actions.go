package syncer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pr-poehali-dev/fteam-dark-site/storefront"
)

// ErrValidation is returned when a client-side guard stops an action
// before any request is sent.
var ErrValidation = errors.New("syncer: validation failed")

// withKey attaches a fresh idempotency key to the outgoing request.
func withKey(ctx context.Context) context.Context {
	return storefront.WithIdempotencyKey(ctx, uuid.NewString())
}

// guard registers the action in the in-flight set and returns a release
// func. A duplicate dispatch is rejected locally with a notification.
func (s *Syncer) guard(key string) (func(), error) {
	if !s.begin(key) {
		s.notify.Error("Action already in progress")
		return nil, ErrActionInFlight
	}
	return func() { s.end(key) }, nil
}

// Login exchanges credentials for an identity. On success the identity
// replaces the current one and is persisted; on failure nothing changes.
func (s *Syncer) Login(ctx context.Context, email, password string) error {
	done, err := s.guard("login")
	if err != nil {
		return err
	}
	defer done()

	user, err := s.client.Auth.Login(withKey(ctx), email, password)
	if err != nil {
		s.fail(err, "Sign-in failed, try again later")
		return err
	}

	s.state.SetUser(user)
	if err := s.session.Save(user); err != nil {
		s.log.Warn("failed to persist identity", zap.Error(err))
	}
	s.notify.Success(fmt.Sprintf("Welcome back, %s!", user.DisplayName))
	return nil
}

// Register creates an account; success behaves like Login. Uniqueness is
// not validated client-side.
func (s *Syncer) Register(ctx context.Context, email, username, password string) error {
	if email == "" || username == "" || password == "" {
		s.notify.Error("Fill in every field")
		return ErrValidation
	}

	done, err := s.guard("register")
	if err != nil {
		return err
	}
	defer done()

	user, err := s.client.Auth.Register(withKey(ctx), email, username, password)
	if err != nil {
		s.fail(err, "Registration failed, try again later")
		return err
	}

	s.state.SetUser(user)
	if err := s.session.Save(user); err != nil {
		s.log.Warn("failed to persist identity", zap.Error(err))
	}
	s.notify.Success("Registration complete!")
	return nil
}

// Logout is purely local: it clears the identity, its persisted copy and
// every dependent collection. No server call is made.
func (s *Syncer) Logout() {
	s.state.Reset()
	if err := s.session.Clear(); err != nil {
		s.log.Warn("failed to clear persisted session", zap.Error(err))
	}
	s.notify.Success("Signed out")
}

// UpdateProfile replaces the identity with the server-returned record.
func (s *Syncer) UpdateProfile(ctx context.Context, req storefront.UpdateProfileRequest) error {
	user := s.state.User()
	if user == nil {
		s.notify.Error("Sign in first")
		return ErrNotSignedIn
	}

	done, err := s.guard("update_profile")
	if err != nil {
		return err
	}
	defer done()

	updated, err := s.client.Users.UpdateProfile(withKey(ctx), user.ID, req)
	if err != nil {
		s.fail(err, "Profile update failed")
		return err
	}

	if updated.Email == "" {
		updated.Email = user.Email
	}
	s.state.SetUser(updated)
	if err := s.session.Save(updated); err != nil {
		s.log.Warn("failed to persist identity", zap.Error(err))
	}
	s.notify.Success("Profile updated")
	return nil
}

// PublishForm carries the raw publish inputs. Price arrives as entered
// and is coerced to a number before the request is built.
type PublishForm struct {
	Title          string
	Description    string
	Price          string
	DeveloperEmail string
	Genre          string
	AgeRating      string
	FileURL        string
	LogoURL        string
	Screenshots    []string
}

// PublishGame submits a game for moderation. Title, description and
// price must be non-empty and the price numeric; otherwise no request is
// sent.
func (s *Syncer) PublishGame(ctx context.Context, form PublishForm) error {
	user := s.state.User()
	if user == nil {
		s.notify.Error("Sign in first")
		return ErrNotSignedIn
	}

	if strings.TrimSpace(form.Title) == "" || strings.TrimSpace(form.Description) == "" || strings.TrimSpace(form.Price) == "" {
		s.notify.Error("Title, description and price are required")
		return ErrValidation
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(form.Price), 64)
	if err != nil {
		s.notify.Error("Price must be a number")
		return ErrValidation
	}

	done, err := s.guard("publish_game")
	if err != nil {
		return err
	}
	defer done()

	result, err := s.client.Games.Publish(withKey(ctx), storefront.PublishGameRequest{
		Title:             form.Title,
		Description:       form.Description,
		Price:             price,
		DeveloperEmail:    form.DeveloperEmail,
		Genre:             form.Genre,
		AgeRating:         form.AgeRating,
		FileURL:           form.FileURL,
		LogoURL:           form.LogoURL,
		Screenshots:       form.Screenshots,
		PublisherUsername: user.Username,
	})
	if err != nil {
		s.fail(err, "Failed to submit the game")
		return err
	}

	if result.Message != "" {
		s.notify.Success(result.Message)
	} else {
		s.notify.Success("Game submitted for moderation")
	}
	return nil
}

// ApproveGame moves a pending game into the catalog, then refreshes both
// moderation and catalog views.
func (s *Syncer) ApproveGame(ctx context.Context, gameID int64) error {
	return s.moderateGame(ctx, gameID, "approve", "Game approved", s.client.Games.Approve)
}

// RejectGame rejects a pending game, then refreshes both moderation and
// catalog views.
func (s *Syncer) RejectGame(ctx context.Context, gameID int64) error {
	return s.moderateGame(ctx, gameID, "reject", "Game rejected", s.client.Games.Reject)
}

func (s *Syncer) moderateGame(ctx context.Context, gameID int64, action, successMsg string, call func(context.Context, int64) error) error {
	done, err := s.guard(fmt.Sprintf("%s_game:%d", action, gameID))
	if err != nil {
		return err
	}
	defer done()

	if err := call(withKey(ctx), gameID); err != nil {
		s.fail(err, "Moderation action failed")
		return err
	}

	s.refresh("pending_games", func() error { return s.RefreshPendingGames(ctx) })
	s.refresh("approved_games", func() error { return s.RefreshApprovedGames(ctx) })
	s.notify.Success(successMsg)
	return nil
}

// SetFeatured toggles the promotion flag, then refreshes the catalog and
// the featured set.
func (s *Syncer) SetFeatured(ctx context.Context, gameID int64, featured bool) error {
	done, err := s.guard(fmt.Sprintf("set_featured:%d", gameID))
	if err != nil {
		return err
	}
	defer done()

	if err := s.client.Games.SetFeatured(withKey(ctx), gameID, featured); err != nil {
		s.fail(err, "Failed to update the featured flag")
		return err
	}

	s.refresh("approved_games", func() error { return s.RefreshApprovedGames(ctx) })
	s.refresh("featured_games", func() error { return s.RefreshFeatured(ctx) })
	if featured {
		s.notify.Success("Game added to featured")
	} else {
		s.notify.Success("Game removed from featured")
	}
	return nil
}

// SetUserVerified toggles the verified badge, then refreshes the admin
// user list.
func (s *Syncer) SetUserVerified(ctx context.Context, userID int64, verified bool) error {
	return s.adminUserAction(ctx, fmt.Sprintf("verify:%d", userID), "User record updated", func(ctx context.Context) error {
		return s.client.Users.SetVerified(ctx, userID, verified)
	})
}

// SetUserBanned toggles the ban flag, then refreshes the admin user list.
func (s *Syncer) SetUserBanned(ctx context.Context, userID int64, banned bool) error {
	return s.adminUserAction(ctx, fmt.Sprintf("ban:%d", userID), "User record updated", func(ctx context.Context) error {
		return s.client.Users.SetBanned(ctx, userID, banned)
	})
}

func (s *Syncer) adminUserAction(ctx context.Context, key, successMsg string, call func(context.Context) error) error {
	done, err := s.guard(key)
	if err != nil {
		return err
	}
	defer done()

	if err := call(withKey(ctx)); err != nil {
		s.fail(err, "User action failed")
		return err
	}

	s.refresh("users", func() error { return s.RefreshUsers(ctx) })
	s.notify.Success(successMsg)
	return nil
}

// SetBalance overwrites a user's balance, then refreshes the admin user
// list; if the target is the signed-in user, the identity is refreshed
// too.
func (s *Syncer) SetBalance(ctx context.Context, userID int64, balance float64) error {
	done, err := s.guard(fmt.Sprintf("set_balance:%d", userID))
	if err != nil {
		return err
	}
	defer done()

	if err := s.client.Users.SetBalance(withKey(ctx), userID, balance); err != nil {
		s.fail(err, "Balance update failed")
		return err
	}

	s.refresh("users", func() error { return s.RefreshUsers(ctx) })
	if user := s.state.User(); user != nil && user.ID == userID {
		s.refresh("identity", func() error { return s.RefreshIdentity(ctx) })
	}
	s.notify.Success("Balance updated")
	return nil
}

// CreateFrame adds a new frame to the catalog, then refreshes it.
func (s *Syncer) CreateFrame(ctx context.Context, name string, price float64, imageURL string) error {
	if strings.TrimSpace(name) == "" {
		s.notify.Error("Frame name is required")
		return ErrValidation
	}

	done, err := s.guard("create_frame")
	if err != nil {
		return err
	}
	defer done()

	result, err := s.client.Frames.Create(withKey(ctx), name, price, imageURL)
	if err != nil {
		s.fail(err, "Failed to create the frame")
		return err
	}

	s.refresh("frame_catalog", func() error { return s.RefreshFrameCatalog(ctx) })
	if result.Message != "" {
		s.notify.Success(result.Message)
	} else {
		s.notify.Success("Frame created")
	}
	return nil
}

// BuyFrame purchases a catalog frame. When the cached balance is already
// below the price, the purchase request is never issued; the server
// re-validates in every other case. Success refreshes owned frames and
// the identity (the balance changed).
func (s *Syncer) BuyFrame(ctx context.Context, frameID int64) error {
	user := s.state.User()
	if user == nil {
		s.notify.Error("Sign in first")
		return ErrNotSignedIn
	}

	for _, frame := range s.state.FrameCatalog() {
		if frame.ID == frameID && user.Balance < frame.Price {
			s.notify.Error("Insufficient funds")
			return ErrValidation
		}
	}

	done, err := s.guard(fmt.Sprintf("buy_frame:%d", frameID))
	if err != nil {
		return err
	}
	defer done()

	if err := s.client.Frames.Buy(withKey(ctx), user.ID, frameID); err != nil {
		s.fail(err, "Purchase failed")
		return err
	}

	s.refresh("owned_frames", func() error { return s.RefreshOwnedFrames(ctx) })
	s.refresh("identity", func() error { return s.RefreshIdentity(ctx) })
	s.notify.Success("Frame purchased!")
	return nil
}

// SetActiveFrame activates one owned frame. The frame must already be
// owned; the server deactivates every other frame for the owner.
func (s *Syncer) SetActiveFrame(ctx context.Context, frameID int64) error {
	user := s.state.User()
	if user == nil {
		s.notify.Error("Sign in first")
		return ErrNotSignedIn
	}

	owned := false
	for _, frame := range s.state.OwnedFrames() {
		if frame.ID == frameID {
			owned = true
			break
		}
	}
	if !owned {
		s.notify.Error("You do not own this frame")
		return ErrValidation
	}

	done, err := s.guard(fmt.Sprintf("set_active_frame:%d", frameID))
	if err != nil {
		return err
	}
	defer done()

	if err := s.client.Frames.SetActive(withKey(ctx), user.ID, frameID); err != nil {
		s.fail(err, "Failed to set the active frame")
		return err
	}

	s.refresh("owned_frames", func() error { return s.RefreshOwnedFrames(ctx) })
	s.notify.Success("Frame activated")
	return nil
}

// SellItem lists an owned item on the marketplace, then refreshes the
// listings.
func (s *Syncer) SellItem(ctx context.Context, itemType storefront.ItemType, itemID int64, price float64) error {
	user := s.state.User()
	if user == nil {
		s.notify.Error("Sign in first")
		return ErrNotSignedIn
	}
	if itemID <= 0 || price <= 0 {
		s.notify.Error("Item and a positive price are required")
		return ErrValidation
	}

	done, err := s.guard(fmt.Sprintf("sell:%s:%d", itemType, itemID))
	if err != nil {
		return err
	}
	defer done()

	result, err := s.client.Market.Sell(withKey(ctx), storefront.SellRequest{
		SellerID: user.ID,
		ItemType: itemType,
		ItemID:   itemID,
		Price:    price,
	})
	if err != nil {
		s.fail(err, "Failed to create the listing")
		return err
	}

	s.refresh("marketplace", func() error { return s.RefreshMarketplace(ctx) })
	if result.Message != "" {
		s.notify.Success(result.Message)
	} else {
		s.notify.Success("Item listed for sale")
	}
	return nil
}

// CancelListing withdraws a listing, then refreshes the listings. The
// seller check is a rendering concern; the server rejects a cancel from
// anyone else.
func (s *Syncer) CancelListing(ctx context.Context, listingID int64) error {
	user := s.state.User()
	if user == nil {
		s.notify.Error("Sign in first")
		return ErrNotSignedIn
	}

	done, err := s.guard(fmt.Sprintf("cancel:%d", listingID))
	if err != nil {
		return err
	}
	defer done()

	if err := s.client.Market.Cancel(withKey(ctx), listingID, user.ID); err != nil {
		s.fail(err, "Failed to cancel the listing")
		return err
	}

	s.refresh("marketplace", func() error { return s.RefreshMarketplace(ctx) })
	s.notify.Success("Listing canceled")
	return nil
}

// BuyMarketItem purchases a listing. No client-side guard: the server is
// the sole authority. Success refreshes the listings and the identity
// (balance and ownership changed).
func (s *Syncer) BuyMarketItem(ctx context.Context, listingID int64) error {
	user := s.state.User()
	if user == nil {
		s.notify.Error("Sign in first")
		return ErrNotSignedIn
	}

	done, err := s.guard(fmt.Sprintf("buy_item:%d", listingID))
	if err != nil {
		return err
	}
	defer done()

	result, err := s.client.Market.Buy(withKey(ctx), listingID, user.ID)
	if err != nil {
		s.fail(err, "Purchase failed")
		return err
	}

	s.refresh("marketplace", func() error { return s.RefreshMarketplace(ctx) })
	s.refresh("identity", func() error { return s.RefreshIdentity(ctx) })
	s.refresh("owned_frames", func() error { return s.RefreshOwnedFrames(ctx) })
	if result.Message != "" {
		s.notify.Success(result.Message)
	} else {
		s.notify.Success("Purchase complete!")
	}
	return nil
}
