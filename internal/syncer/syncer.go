// Package syncer is the session and catalog synchronizer. It mirrors
// remote collections into local state, dispatches mutation requests and
// re-fetches every collection a mutation could have touched.
package syncer

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/pr-poehali-dev/fteam-dark-site/internal/notify"
	"github.com/pr-poehali-dev/fteam-dark-site/internal/session"
	"github.com/pr-poehali-dev/fteam-dark-site/internal/state"
	"github.com/pr-poehali-dev/fteam-dark-site/storefront"
)

// ErrNotSignedIn is returned by actions that need an identity when
// nobody is signed in.
var ErrNotSignedIn = errors.New("syncer: not signed in")

// ErrActionInFlight is returned when the same action is dispatched again
// before the first request resolved.
var ErrActionInFlight = errors.New("syncer: action already in flight")

// Syncer holds the client-visible state and drives all traffic to the
// backend services. Mutations are two-phase: send the request, then
// refresh dependent collections and notify.
type Syncer struct {
	client  *storefront.Client
	session *session.Store
	state   *state.State
	notify  notify.Notifier
	log     *zap.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
}

// New wires a syncer over the given client, session store and state
// container.
func New(client *storefront.Client, store *session.Store, st *state.State, notifier notify.Notifier, log *zap.Logger) *Syncer {
	return &Syncer{
		client:   client,
		session:  store,
		state:    st,
		notify:   notifier,
		log:      log,
		inflight: make(map[string]struct{}),
	}
}

// State exposes the state container for rendering.
func (s *Syncer) State() *state.State {
	return s.state
}

// Restore loads the persisted identity, if any, into state. The record
// is trusted until a later action fails against the server.
func (s *Syncer) Restore() {
	if user := s.session.Current(); user != nil {
		s.state.SetUser(user)
		s.log.Debug("restored session", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	}
}

// begin registers an action key in the in-flight set. It reports false
// when the same action is already pending, in which case the duplicate
// must not be sent.
func (s *Syncer) begin(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, pending := s.inflight[key]; pending {
		return false
	}
	s.inflight[key] = struct{}{}
	return true
}

func (s *Syncer) end(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, key)
}

// fail surfaces an action failure. Business rejections carry the
// server's message; transport failures fall back to the generic text.
func (s *Syncer) fail(err error, fallback string) {
	var apiErr *storefront.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		s.notify.Error(apiErr.Message)
		return
	}
	s.notify.Error(fallback)
}

// refresh runs a single collection re-fetch, swallowing failure to a
// warn-level log entry so the previous collection stays on screen.
func (s *Syncer) refresh(name string, fn func() error) {
	if err := fn(); err != nil {
		s.log.Warn("refresh failed", zap.String("collection", name), zap.Error(err))
	}
}
