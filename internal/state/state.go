// Package state holds the client-visible mirror of remote collections in
// a single typed container. Every slice is a cache replaced wholesale by
// a refresh; nothing here is a source of truth.
package state

import (
	"sync"

	"github.com/pr-poehali-dev/fteam-dark-site/storefront"
)

// State is the container for all client-side view state. Collections are
// mutated only through the explicit setters below, and getters hand out
// copies so callers cannot alias the internal slices.
type State struct {
	mu sync.RWMutex

	user          *storefront.User
	approvedGames []storefront.Game
	pendingGames  []storefront.Game
	featuredGames []storefront.Game
	frameCatalog  []storefront.Frame
	ownedFrames   []storefront.Frame
	listings      []storefront.MarketItem
	users         []storefront.User
}

// New returns an empty state container.
func New() *State {
	return &State{}
}

// User returns a copy of the current identity, or nil when signed out.
func (s *State) User() *storefront.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// SetUser replaces the current identity.
func (s *State) SetUser(user *storefront.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user == nil {
		s.user = nil
		return
	}
	u := *user
	s.user = &u
}

// Reset clears the identity and every collection back to defaults.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.approvedGames = nil
	s.pendingGames = nil
	s.featuredGames = nil
	s.frameCatalog = nil
	s.ownedFrames = nil
	s.listings = nil
	s.users = nil
}

func copyGames(games []storefront.Game) []storefront.Game {
	if games == nil {
		return nil
	}
	out := make([]storefront.Game, len(games))
	copy(out, games)
	return out
}

func copyFrames(frames []storefront.Frame) []storefront.Frame {
	if frames == nil {
		return nil
	}
	out := make([]storefront.Frame, len(frames))
	copy(out, frames)
	return out
}

// ApprovedGames returns the public catalog.
func (s *State) ApprovedGames() []storefront.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyGames(s.approvedGames)
}

// SetApprovedGames replaces the public catalog.
func (s *State) SetApprovedGames(games []storefront.Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.approvedGames = copyGames(games)
}

// PendingGames returns the moderation queue.
func (s *State) PendingGames() []storefront.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyGames(s.pendingGames)
}

// SetPendingGames replaces the moderation queue.
func (s *State) SetPendingGames(games []storefront.Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingGames = copyGames(games)
}

// FeaturedGames returns the admin-curated promotion set.
func (s *State) FeaturedGames() []storefront.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyGames(s.featuredGames)
}

// SetFeaturedGames replaces the promotion set.
func (s *State) SetFeaturedGames(games []storefront.Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.featuredGames = copyGames(games)
}

// FrameCatalog returns the purchasable frames.
func (s *State) FrameCatalog() []storefront.Frame {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyFrames(s.frameCatalog)
}

// SetFrameCatalog replaces the purchasable frames.
func (s *State) SetFrameCatalog(frames []storefront.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frameCatalog = copyFrames(frames)
}

// OwnedFrames returns the signed-in user's frames.
func (s *State) OwnedFrames() []storefront.Frame {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyFrames(s.ownedFrames)
}

// SetOwnedFrames replaces the signed-in user's frames.
func (s *State) SetOwnedFrames(frames []storefront.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ownedFrames = copyFrames(frames)
}

// Listings returns the marketplace listings.
func (s *State) Listings() []storefront.MarketItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listings == nil {
		return nil
	}
	out := make([]storefront.MarketItem, len(s.listings))
	copy(out, s.listings)
	return out
}

// SetListings replaces the marketplace listings.
func (s *State) SetListings(items []storefront.MarketItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if items == nil {
		s.listings = nil
		return
	}
	out := make([]storefront.MarketItem, len(items))
	copy(out, items)
	s.listings = out
}

// Users returns the admin user list.
func (s *State) Users() []storefront.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.users == nil {
		return nil
	}
	out := make([]storefront.User, len(s.users))
	copy(out, s.users)
	return out
}

// SetUsers replaces the admin user list.
func (s *State) SetUsers(users []storefront.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if users == nil {
		s.users = nil
		return
	}
	out := make([]storefront.User, len(users))
	copy(out, users)
	s.users = out
}
