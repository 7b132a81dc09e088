package feed

import "sync"

// FollowState maps user ids to whether the current user follows them.
// The feed owns it and every post card shares the same instance.
type FollowState struct {
	mu sync.RWMutex
	m  map[string]bool
}

// NewFollowState returns an empty FollowState
func NewFollowState() *FollowState {
	return &FollowState{m: make(map[string]bool)}
}

// Replace discards the current mapping
func (s *FollowState) Replace(m map[string]bool) {
	next := make(map[string]bool, len(m))
	for k, v := range m {
		next[k] = v
	}
	s.mu.Lock()
	s.m = next
	s.mu.Unlock()
}

// Merge overwrites only the given entries
func (s *FollowState) Merge(m map[string]bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range m {
		s.m[k] = v
	}
}

func (s *FollowState) Set(userID string, following bool) {
	s.mu.Lock()
	s.m[userID] = following
	s.mu.Unlock()
}

// IsFollowing is false for unknown users
func (s *FollowState) IsFollowing(userID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m[userID]
}

// Known reports whether a value has been resolved for userID
func (s *FollowState) Known(userID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.m[userID]
	return ok
}
