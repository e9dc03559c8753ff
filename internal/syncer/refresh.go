package syncer

import (
	"context"

	"go.uber.org/zap"

	"github.com/pr-poehali-dev/fteam-dark-site/storefront"
)

// RefreshApprovedGames replaces the public catalog wholesale.
func (s *Syncer) RefreshApprovedGames(ctx context.Context) error {
	games, err := s.client.Games.List(ctx, storefront.GameStatusApproved)
	if err != nil {
		return err
	}
	s.state.SetApprovedGames(games)
	return nil
}

// RefreshPendingGames replaces the moderation queue wholesale.
func (s *Syncer) RefreshPendingGames(ctx context.Context) error {
	games, err := s.client.Games.List(ctx, storefront.GameStatusPending)
	if err != nil {
		return err
	}
	s.state.SetPendingGames(games)
	return nil
}

// RefreshFeatured re-derives the promotion set. The games service has no
// featured query, so the set is filtered out of an approved-games fetch.
func (s *Syncer) RefreshFeatured(ctx context.Context) error {
	games, err := s.client.Games.List(ctx, storefront.GameStatusApproved)
	if err != nil {
		return err
	}
	featured := make([]storefront.Game, 0, len(games))
	for _, game := range games {
		if game.IsFeatured {
			featured = append(featured, game)
		}
	}
	s.state.SetFeaturedGames(featured)
	return nil
}

// RefreshFrameCatalog replaces the purchasable frame set wholesale.
func (s *Syncer) RefreshFrameCatalog(ctx context.Context) error {
	frames, err := s.client.Frames.Catalog(ctx)
	if err != nil {
		return err
	}
	s.state.SetFrameCatalog(frames)
	return nil
}

// RefreshOwnedFrames replaces the signed-in user's frames wholesale.
func (s *Syncer) RefreshOwnedFrames(ctx context.Context) error {
	user := s.state.User()
	if user == nil {
		return ErrNotSignedIn
	}
	frames, err := s.client.Frames.Owned(ctx, user.ID)
	if err != nil {
		return err
	}
	s.state.SetOwnedFrames(frames)
	return nil
}

// RefreshMarketplace replaces the listing set wholesale.
func (s *Syncer) RefreshMarketplace(ctx context.Context) error {
	items, err := s.client.Market.Listings(ctx)
	if err != nil {
		return err
	}
	s.state.SetListings(items)
	return nil
}

// RefreshUsers replaces the admin user list wholesale.
func (s *Syncer) RefreshUsers(ctx context.Context) error {
	users, err := s.client.Users.List(ctx)
	if err != nil {
		return err
	}
	s.state.SetUsers(users)
	return nil
}

// SearchUsers looks up public profiles by username substring. The result
// feeds no cached collection; it is returned to the caller directly.
func (s *Syncer) SearchUsers(ctx context.Context, query string) ([]storefront.User, error) {
	return s.client.Users.Search(ctx, query)
}

// RefreshIdentity re-fetches the signed-in user's record and persists
// it. The public profile lookup omits the email, so the cached email is
// carried over into the merged record.
func (s *Syncer) RefreshIdentity(ctx context.Context) error {
	current := s.state.User()
	if current == nil {
		return ErrNotSignedIn
	}

	fresh, err := s.client.Users.Get(ctx, current.ID)
	if err != nil {
		return err
	}

	merged := *fresh
	if merged.Email == "" {
		merged.Email = current.Email
	}
	s.state.SetUser(&merged)

	if err := s.session.Save(&merged); err != nil {
		s.log.Warn("failed to persist identity", zap.Error(err))
	}
	return nil
}
