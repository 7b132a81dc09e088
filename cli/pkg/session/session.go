// Package session holds the signed-in user's credentials and the one
// shared current-user lookup that every post card consults.
package session

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/vartaverse/varta/cli/pkg/api"
	"github.com/vartaverse/varta/cli/pkg/client"
	"github.com/vartaverse/varta/cli/pkg/credentials"
	"github.com/vartaverse/varta/cli/pkg/logger"
	"golang.org/x/sync/singleflight"
)

// ErrNotAuthenticated is returned by lookups that need a signed-in user
var ErrNotAuthenticated = errors.New("not authenticated")

// UserStore is the subset of the ContentStore the session needs
type UserStore interface {
	GetMe(ctx context.Context) (*api.User, error)
	GetFollowing(ctx context.Context, userID string) ([]api.FollowRecord, error)
}

// Session is safe for concurrent use
type Session struct {
	store UserStore
	creds *credentials.Credentials

	mu    sync.RWMutex
	me    *api.User
	group singleflight.Group
}

// New creates a session over the given credentials. creds may be nil.
func New(store UserStore, creds *credentials.Credentials) *Session {
	return &Session{store: store, creds: creds}
}

// Load reads stored credentials and installs the token on the HTTP clients
func Load(store UserStore) (*Session, error) {
	creds, err := credentials.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load credentials")
	}

	if creds.IsValid() {
		client.SetAuthToken(creds.AccessToken)
	} else if creds != nil {
		logger.Debug("Stored credentials expired", "user_id", creds.UserID)
	}

	return New(store, creds), nil
}

// IsAuthenticated reports whether a valid, unexpired token is present
func (s *Session) IsAuthenticated() bool {
	return s.creds.IsValid()
}

// Credentials returns the stored credentials, or nil
func (s *Session) Credentials() *credentials.Credentials {
	return s.creds
}

// CurrentUser returns the signed-in user, fetching it at most once
func (s *Session) CurrentUser(ctx context.Context) (*api.User, error) {
	if !s.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}

	s.mu.RLock()
	me := s.me
	s.mu.RUnlock()
	if me != nil {
		return me, nil
	}

	v, err, _ := s.group.Do("me", func() (interface{}, error) {
		user, err := s.store.GetMe(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to fetch current user")
		}
		s.mu.Lock()
		s.me = user
		s.mu.Unlock()
		return user, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*api.User), nil
}

// CurrentUserID returns the signed-in user's id, falling back to the stored one
func (s *Session) CurrentUserID(ctx context.Context) string {
	me, err := s.CurrentUser(ctx)
	if err == nil && me.ID != "" {
		return me.ID.String()
	}
	if err != nil {
		logger.Debug("Current user lookup failed", "error", err)
	}
	if s.IsAuthenticated() {
		return s.creds.UserID
	}
	return ""
}

// DisplayName returns the current user's name, then email, then fallback
func (s *Session) DisplayName(ctx context.Context, fallback string) string {
	if me, err := s.CurrentUser(ctx); err == nil {
		return me.DisplayName(s.creds.DisplayName(fallback))
	}
	if s.IsAuthenticated() {
		return s.creds.DisplayName(fallback)
	}
	return fallback
}

// IsFollowing reports whether the current user follows targetID. Any failure is false.
func (s *Session) IsFollowing(ctx context.Context, targetID string) bool {
	if targetID == "" {
		return false
	}

	me := s.CurrentUserID(ctx)
	if me == "" {
		return false
	}

	records, err := s.store.GetFollowing(ctx, me)
	if err != nil {
		logger.Debug("Follow lookup failed", "target_id", targetID, "error", err)
		return false
	}

	for _, r := range records {
		if r.Targets(targetID) {
			return true
		}
	}
	return false
}
