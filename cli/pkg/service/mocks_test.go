package service

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
	"github.com/vartaverse/varta/cli/pkg/api"
	"github.com/vartaverse/varta/cli/pkg/config"
	"github.com/vartaverse/varta/cli/pkg/credentials"
	"github.com/vartaverse/varta/cli/pkg/feed"
	"github.com/vartaverse/varta/cli/pkg/interaction"
	"github.com/vartaverse/varta/cli/pkg/output"
	"github.com/vartaverse/varta/cli/pkg/session"
)

// fakeStore is an in-memory ContentStore. Errs fails a method by name.
type fakeStore struct {
	mu    sync.Mutex
	Calls []string
	Errs  map[string]error

	posts     []api.Post
	users     map[string]api.User
	following map[string][]api.FollowRecord
	followers map[string][]api.FollowRecord
	comments  map[string][]api.Comment

	Created  []api.PostRequest
	Updated  map[string]api.PostRequest
	LoginAs  *api.LoginResponse
	Ratings  map[string]int
	nextPost int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		Errs:      map[string]error{},
		users:     map[string]api.User{},
		following: map[string][]api.FollowRecord{},
		followers: map[string][]api.FollowRecord{},
		comments:  map[string][]api.Comment{},
		Updated:   map[string]api.PostRequest{},
		Ratings:   map[string]int{},
		nextPost:  100,
	}
}

func (f *fakeStore) call(method, arg string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, fmt.Sprintf("%s:%s", method, arg))
	return f.Errs[method]
}

func (f *fakeStore) calls(prefix string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.Calls {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}

func (f *fakeStore) post(id string) (api.Post, bool) {
	for _, p := range f.posts {
		if p.Key() == id {
			return p, true
		}
	}
	return api.Post{}, false
}

func (f *fakeStore) ListPosts(ctx context.Context, q api.PostsQuery) ([]api.Post, error) {
	if err := f.call("ListPosts", fmt.Sprintf("%d", q.Page)); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var matching []api.Post
	for _, p := range f.posts {
		if q.Category == "" || p.Category == q.Category {
			matching = append(matching, p)
		}
	}
	start := (q.Page - 1) * q.Limit
	if start >= len(matching) {
		return []api.Post{}, nil
	}
	end := start + q.Limit
	if end > len(matching) {
		end = len(matching)
	}
	return matching[start:end], nil
}

func (f *fakeStore) GetPost(ctx context.Context, postID string) (*api.Post, error) {
	if err := f.call("GetPost", postID); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.post(postID)
	if !ok {
		return nil, &api.APIError{StatusCode: 404, Message: "Post not found"}
	}
	return &p, nil
}

func (f *fakeStore) CreatePost(ctx context.Context, req api.PostRequest) (*api.Post, error) {
	if err := f.call("CreatePost", req.Title); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Created = append(f.Created, req)
	f.nextPost++
	p := api.Post{ID: api.ID(fmt.Sprintf("%d", f.nextPost)), Title: req.Title, Content: req.Content, Category: req.Category}
	f.posts = append(f.posts, p)
	return &p, nil
}

func (f *fakeStore) UpdatePost(ctx context.Context, postID string, req api.PostRequest) (*api.Post, error) {
	if err := f.call("UpdatePost", postID); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Updated[postID] = req
	return &api.Post{ID: api.ID(postID), Title: req.Title, Content: req.Content}, nil
}

func (f *fakeStore) DeletePost(ctx context.Context, postID string) error {
	if err := f.call("DeletePost", postID); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.posts[:0]
	for _, p := range f.posts {
		if p.Key() != postID {
			kept = append(kept, p)
		}
	}
	f.posts = kept
	return nil
}

func (f *fakeStore) ToggleLike(ctx context.Context, postID string) error {
	return f.call("ToggleLike", postID)
}

func (f *fakeStore) GetLikeStatus(ctx context.Context, postID string) (bool, error) {
	return false, f.call("GetLikeStatus", postID)
}

func (f *fakeStore) GetComments(ctx context.Context, postID string) ([]api.Comment, error) {
	if err := f.call("GetComments", postID); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.comments[postID], nil
}

func (f *fakeStore) AddComment(ctx context.Context, postID, text string) (*api.Comment, error) {
	if err := f.call("AddComment", postID); err != nil {
		return nil, err
	}
	return &api.Comment{CommentID: "900", Text: text}, nil
}

func (f *fakeStore) GetCommentCount(ctx context.Context, postID string) (int, error) {
	if err := f.call("GetCommentCount", postID); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.comments[postID]), nil
}

func (f *fakeStore) GetMe(ctx context.Context) (*api.User, error) {
	if err := f.call("GetMe", ""); err != nil {
		return nil, err
	}
	return &api.User{ID: "1", Name: "Current User", Email: "user@example.com"}, nil
}

func (f *fakeStore) GetUser(ctx context.Context, userID string) (*api.User, error) {
	if err := f.call("GetUser", userID); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return nil, &api.APIError{StatusCode: 404, Message: "User not found"}
	}
	return &u, nil
}

func (f *fakeStore) Follow(ctx context.Context, targetID string) error {
	return f.call("Follow", targetID)
}

func (f *fakeStore) Unfollow(ctx context.Context, targetID string) error {
	return f.call("Unfollow", targetID)
}

func (f *fakeStore) GetFollowing(ctx context.Context, userID string) ([]api.FollowRecord, error) {
	if err := f.call("GetFollowing", userID); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.following[userID], nil
}

func (f *fakeStore) GetFollowers(ctx context.Context, userID string) ([]api.FollowRecord, error) {
	if err := f.call("GetFollowers", userID); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.followers[userID], nil
}

func (f *fakeStore) TrendingPosts(ctx context.Context) ([]api.Post, error) {
	if err := f.call("TrendingPosts", ""); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.posts, nil
}

func (f *fakeStore) TopRatedPosts(ctx context.Context, category string) ([]api.Post, error) {
	if err := f.call("TopRatedPosts", category); err != nil {
		return nil, err
	}
	return []api.Post{}, nil
}

func (f *fakeStore) SearchPosts(ctx context.Context, query string) ([]api.Post, error) {
	if err := f.call("SearchPosts", query); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []api.Post
	for _, p := range f.posts {
		if strings.Contains(strings.ToLower(p.Title), strings.ToLower(query)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) RatePost(ctx context.Context, postID string, value int) error {
	if err := f.call("RatePost", postID); err != nil {
		return err
	}
	f.mu.Lock()
	f.Ratings[postID] = value
	f.mu.Unlock()
	return nil
}

func (f *fakeStore) GetAverageRating(ctx context.Context, postID string) (float64, error) {
	if err := f.call("GetAverageRating", postID); err != nil {
		return 0, err
	}
	return 4.5, nil
}

func (f *fakeStore) GetLikesCount(ctx context.Context, postID string) (int, error) {
	if err := f.call("GetLikesCount", postID); err != nil {
		return 0, err
	}
	return 12, nil
}

func (f *fakeStore) GetUserRating(ctx context.Context, postID string) (int, error) {
	if err := f.call("GetUserRating", postID); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Ratings[postID], nil
}

func (f *fakeStore) Login(ctx context.Context, email, password string) (*api.LoginResponse, error) {
	if err := f.call("Login", email); err != nil {
		return nil, err
	}
	if f.LoginAs != nil {
		return f.LoginAs, nil
	}
	return &api.LoginResponse{JWTToken: "tok", UserName: "Asha", UserID: "7"}, nil
}

func (f *fakeStore) Register(ctx context.Context, req api.RegisterRequest) (*api.User, error) {
	if err := f.call("Register", req.Email); err != nil {
		return nil, err
	}
	return &api.User{ID: "50", Name: req.Name, Email: req.Email, Role: "user"}, nil
}

type recordingNotifier struct {
	mu      sync.Mutex
	Notices []interaction.Notice
}

func (n *recordingNotifier) Notify(notice interaction.Notice) {
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

type fixedConfirmer bool

func (c fixedConfirmer) Confirm(string) bool { return bool(c) }

type countingReloader struct {
	Count int
}

func (r *countingReloader) Reload(ctx context.Context) error {
	r.Count++
	return nil
}

type testEnv struct {
	*Env
	store    *fakeStore
	notifier *recordingNotifier
	out      *bytes.Buffer
}

// newTestEnv builds an Env over a fakeStore with output captured in text mode
func newTestEnv(t *testing.T, authenticated bool) *testEnv {
	t.Helper()
	require.NoError(t, config.Init(filepath.Join(t.TempDir(), "config.toml")))
	config.Set("output.format", "text")

	color.NoColor = true
	buf := &bytes.Buffer{}
	prev := output.Out
	output.Out = buf
	t.Cleanup(func() { output.Out = prev })

	store := newFakeStore()
	var creds *credentials.Credentials
	if authenticated {
		creds = credentials.New("tok", "1", "Current User", "user@example.com")
	}
	notifier := &recordingNotifier{}

	return &testEnv{
		Env: &Env{
			Store:     store,
			Session:   session.New(store, creds),
			Notifier:  notifier,
			Confirmer: fixedConfirmer(true),
			Follows:   feed.NewFollowState(),
		},
		store:    store,
		notifier: notifier,
		out:      buf,
	}
}

func seedPosts(store *fakeStore, n int, category string) {
	for i := 1; i <= n; i++ {
		store.posts = append(store.posts, api.Post{
			ID:        api.ID(fmt.Sprintf("%d", i)),
			Title:     fmt.Sprintf("Post %d", i),
			Content:   fmt.Sprintf("body %d", i),
			Category:  category,
			UserID:    "7",
			CreatedAt: api.Timestamp(fmt.Sprintf("2024-01-%02dT00:00:00Z", i)),
		})
	}
	store.users["7"] = api.User{ID: "7", Name: "Asha", Email: "asha@example.com"}
}
