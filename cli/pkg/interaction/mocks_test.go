package interaction

import (
	"context"
	"fmt"
	"sync"

	"github.com/vartaverse/varta/cli/pkg/api"
)

// mockStore records every call as "Method:arg" and lets tests override behaviour
type mockStore struct {
	mu    sync.Mutex
	Calls []string

	ToggleLikeFunc      func(ctx context.Context, postID string) error
	GetLikeStatusFunc   func(ctx context.Context, postID string) (bool, error)
	GetCommentsFunc     func(ctx context.Context, postID string) ([]api.Comment, error)
	AddCommentFunc      func(ctx context.Context, postID, text string) (*api.Comment, error)
	GetCommentCountFunc func(ctx context.Context, postID string) (int, error)
	UpdatePostFunc      func(ctx context.Context, postID string, req api.PostRequest) (*api.Post, error)
	DeletePostFunc      func(ctx context.Context, postID string) error
	GetUserFunc         func(ctx context.Context, userID string) (*api.User, error)
	FollowFunc          func(ctx context.Context, targetID string) error
	UnfollowFunc        func(ctx context.Context, targetID string) error
}

func (m *mockStore) record(method, arg string) {
	m.mu.Lock()
	m.Calls = append(m.Calls, fmt.Sprintf("%s:%s", method, arg))
	m.mu.Unlock()
}

func (m *mockStore) calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.Calls))
	copy(out, m.Calls)
	return out
}

func (m *mockStore) count(prefix string) int {
	n := 0
	for _, c := range m.calls() {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

func (m *mockStore) ToggleLike(ctx context.Context, postID string) error {
	m.record("ToggleLike", postID)
	if m.ToggleLikeFunc != nil {
		return m.ToggleLikeFunc(ctx, postID)
	}
	return nil
}

func (m *mockStore) GetLikeStatus(ctx context.Context, postID string) (bool, error) {
	m.record("GetLikeStatus", postID)
	if m.GetLikeStatusFunc != nil {
		return m.GetLikeStatusFunc(ctx, postID)
	}
	return false, nil
}

func (m *mockStore) GetComments(ctx context.Context, postID string) ([]api.Comment, error) {
	m.record("GetComments", postID)
	if m.GetCommentsFunc != nil {
		return m.GetCommentsFunc(ctx, postID)
	}
	return []api.Comment{}, nil
}

func (m *mockStore) AddComment(ctx context.Context, postID, text string) (*api.Comment, error) {
	m.record("AddComment", postID)
	if m.AddCommentFunc != nil {
		return m.AddCommentFunc(ctx, postID, text)
	}
	return &api.Comment{CommentID: "99", Text: text}, nil
}

func (m *mockStore) GetCommentCount(ctx context.Context, postID string) (int, error) {
	m.record("GetCommentCount", postID)
	if m.GetCommentCountFunc != nil {
		return m.GetCommentCountFunc(ctx, postID)
	}
	return 0, nil
}

func (m *mockStore) UpdatePost(ctx context.Context, postID string, req api.PostRequest) (*api.Post, error) {
	m.record("UpdatePost", postID)
	if m.UpdatePostFunc != nil {
		return m.UpdatePostFunc(ctx, postID, req)
	}
	return &api.Post{ID: api.ID(postID), Title: req.Title, Content: req.Content}, nil
}

func (m *mockStore) DeletePost(ctx context.Context, postID string) error {
	m.record("DeletePost", postID)
	if m.DeletePostFunc != nil {
		return m.DeletePostFunc(ctx, postID)
	}
	return nil
}

func (m *mockStore) GetUser(ctx context.Context, userID string) (*api.User, error) {
	m.record("GetUser", userID)
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, userID)
	}
	return &api.User{ID: api.ID(userID), Name: "User " + userID}, nil
}

func (m *mockStore) Follow(ctx context.Context, targetID string) error {
	m.record("Follow", targetID)
	if m.FollowFunc != nil {
		return m.FollowFunc(ctx, targetID)
	}
	return nil
}

func (m *mockStore) Unfollow(ctx context.Context, targetID string) error {
	m.record("Unfollow", targetID)
	if m.UnfollowFunc != nil {
		return m.UnfollowFunc(ctx, targetID)
	}
	return nil
}

type mockSession struct {
	authenticated bool
	user          *api.User
	following     map[string]bool
}

func (s *mockSession) IsAuthenticated() bool { return s.authenticated }

func (s *mockSession) CurrentUser(ctx context.Context) (*api.User, error) {
	if !s.authenticated || s.user == nil {
		return nil, fmt.Errorf("no current user")
	}
	return s.user, nil
}

func (s *mockSession) CurrentUserID(ctx context.Context) string {
	if u, err := s.CurrentUser(ctx); err == nil {
		return u.ID.String()
	}
	return ""
}

func (s *mockSession) IsFollowing(ctx context.Context, userID string) bool {
	return s.following[userID]
}

type recordingNotifier struct {
	mu      sync.Mutex
	Notices []Notice
}

func (n *recordingNotifier) Notify(notice Notice) {
	n.mu.Lock()
	n.Notices = append(n.Notices, notice)
	n.mu.Unlock()
}

func (n *recordingNotifier) titles() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.Notices))
	for i, notice := range n.Notices {
		out[i] = notice.Title
	}
	return out
}

type fixedConfirmer struct {
	answer  bool
	Prompts []string
}

func (c *fixedConfirmer) Confirm(prompt string) bool {
	c.Prompts = append(c.Prompts, prompt)
	return c.answer
}

type countingReloader struct {
	Count int
	Err   error
}

func (r *countingReloader) Reload(ctx context.Context) error {
	r.Count++
	return r.Err
}

type mapImages map[string]string

func (m mapImages) Resolve(key string) string { return m[key] }
