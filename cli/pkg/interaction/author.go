package interaction

import (
	"context"
	"sync"

	"github.com/vartaverse/varta/cli/pkg/api"
	"github.com/vartaverse/varta/cli/pkg/logger"
	"golang.org/x/sync/singleflight"
)

// Anonymous is shown when an author cannot be resolved
const Anonymous = "Anonymous"

// UserGetter looks up a user by id
type UserGetter interface {
	GetUser(ctx context.Context, userID string) (*api.User, error)
}

// AuthorResolver turns user ids into display names. Results live as long as the resolver.
type AuthorResolver struct {
	users UserGetter

	mu    sync.Mutex
	cache map[string]string
	group singleflight.Group
}

func NewAuthorResolver(users UserGetter) *AuthorResolver {
	return &AuthorResolver{users: users, cache: make(map[string]string)}
}

// Name returns the user's name, then email, then Anonymous. It never fails.
func (r *AuthorResolver) Name(ctx context.Context, userID string) string {
	if userID == "" {
		return Anonymous
	}

	r.mu.Lock()
	name, ok := r.cache[userID]
	r.mu.Unlock()
	if ok {
		return name
	}

	v, _, _ := r.group.Do(userID, func() (interface{}, error) {
		r.mu.Lock()
		cached, ok := r.cache[userID]
		r.mu.Unlock()
		if ok {
			return cached, nil
		}

		name := Anonymous
		user, err := r.users.GetUser(ctx, userID)
		if err != nil {
			logger.Debug("Failed to resolve author", "user_id", userID, "error", err)
		} else {
			name = user.DisplayName(Anonymous)
		}

		r.mu.Lock()
		r.cache[userID] = name
		r.mu.Unlock()
		return name, nil
	})
	return v.(string)
}
