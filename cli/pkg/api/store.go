package api

import "context"

// Store exposes the ContentStore calls as methods so that the feed,
// session and interaction packages can depend on narrow interfaces.
type Store struct{}

// NewStore returns a Store backed by the shared service clients
func NewStore() *Store {
	return &Store{}
}

func (Store) ListPosts(ctx context.Context, q PostsQuery) ([]Post, error) { return ListPosts(ctx, q) }

func (Store) GetPost(ctx context.Context, postID string) (*Post, error) { return GetPost(ctx, postID) }

func (Store) CreatePost(ctx context.Context, req PostRequest) (*Post, error) {
	return CreatePost(ctx, req)
}

func (Store) UpdatePost(ctx context.Context, postID string, req PostRequest) (*Post, error) {
	return UpdatePost(ctx, postID, req)
}

func (Store) DeletePost(ctx context.Context, postID string) error { return DeletePost(ctx, postID) }

func (Store) ToggleLike(ctx context.Context, postID string) error { return ToggleLike(ctx, postID) }

func (Store) GetLikeStatus(ctx context.Context, postID string) (bool, error) {
	return GetLikeStatus(ctx, postID)
}

func (Store) GetComments(ctx context.Context, postID string) ([]Comment, error) {
	return GetComments(ctx, postID)
}

func (Store) AddComment(ctx context.Context, postID, text string) (*Comment, error) {
	return AddComment(ctx, postID, text)
}

func (Store) GetCommentCount(ctx context.Context, postID string) (int, error) {
	return GetCommentCount(ctx, postID)
}

func (Store) GetMe(ctx context.Context) (*User, error) { return GetMe(ctx) }

func (Store) GetUser(ctx context.Context, userID string) (*User, error) { return GetUser(ctx, userID) }

func (Store) Follow(ctx context.Context, targetID string) error { return Follow(ctx, targetID) }

func (Store) Unfollow(ctx context.Context, targetID string) error { return Unfollow(ctx, targetID) }

func (Store) GetFollowing(ctx context.Context, userID string) ([]FollowRecord, error) {
	return GetFollowing(ctx, userID)
}

func (Store) GetFollowers(ctx context.Context, userID string) ([]FollowRecord, error) {
	return GetFollowers(ctx, userID)
}

func (Store) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	return Login(ctx, email, password)
}

func (Store) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	return Register(ctx, req)
}

func (Store) TrendingPosts(ctx context.Context) ([]Post, error) { return TrendingPosts(ctx) }

func (Store) TopRatedPosts(ctx context.Context, category string) ([]Post, error) {
	return TopRatedPosts(ctx, category)
}

func (Store) SearchPosts(ctx context.Context, query string) ([]Post, error) {
	return SearchPosts(ctx, query)
}

func (Store) RatePost(ctx context.Context, postID string, value int) error {
	return RatePost(ctx, postID, value)
}

func (Store) GetAverageRating(ctx context.Context, postID string) (float64, error) {
	return GetAverageRating(ctx, postID)
}

func (Store) GetUserRating(ctx context.Context, postID string) (int, error) {
	return GetUserRating(ctx, postID)
}

func (Store) GetLikesCount(ctx context.Context, postID string) (int, error) {
	return GetLikesCount(ctx, postID)
}
