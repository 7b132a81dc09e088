package service

import (
	"context"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/vartaverse/varta/cli/pkg/api"
	"github.com/vartaverse/varta/cli/pkg/content"
	clierrors "github.com/vartaverse/varta/cli/pkg/errors"
	"github.com/vartaverse/varta/cli/pkg/feed"
	"github.com/vartaverse/varta/cli/pkg/formatter"
	"github.com/vartaverse/varta/cli/pkg/imagestore"
	"github.com/vartaverse/varta/cli/pkg/interaction"
	"github.com/vartaverse/varta/cli/pkg/logger"
	"github.com/vartaverse/varta/cli/pkg/output"
)

// PostService runs single-post commands through the same card controller the feed uses
type PostService struct {
	env      *Env
	reloader interaction.Reloader
}

// NewPostService creates a post service. reloader runs after edits and deletes and may be nil.
func NewPostService(env *Env, reloader interaction.Reloader) *PostService {
	return &PostService{env: env, reloader: reloader}
}

// Card fetches a post and mounts a card for it
func (s *PostService) Card(ctx context.Context, postID string) (*interaction.Card, error) {
	postID = strings.TrimSpace(postID)
	if postID == "" {
		return nil, clierrors.ValidationError("post id", "required")
	}

	post, err := s.env.Store.GetPost(ctx, postID)
	if api.IsNotFound(err) {
		return nil, clierrors.NotFoundError("Post", postID).WithCause(err)
	}
	if err != nil {
		return nil, clierrors.CategorizeError(err)
	}
	if post.Key() == "" {
		post.ID = api.ID(postID)
	}

	if owner := post.Owner(); owner != "" && s.env.Session.IsAuthenticated() && !s.env.Follows.Known(owner) {
		s.env.Follows.Set(owner, s.env.Session.IsFollowing(ctx, owner))
	}

	c := interaction.NewCard(*post, s.env.Deps(s.reloader))
	c.Mount(ctx)
	return c, nil
}

func render(c *interaction.Card) error {
	return formatter.RenderCards([]interaction.View{c.View()})
}

// Show prints one post, with its comments when withComments is set
func (s *PostService) Show(ctx context.Context, postID string, withComments bool) error {
	c, err := s.Card(ctx, postID)
	if err != nil {
		return err
	}
	if withComments {
		if err := c.ToggleComments(ctx); err != nil {
			return err
		}
	}
	return render(c)
}

// Like toggles the like on a post
func (s *PostService) Like(ctx context.Context, postID string) error {
	c, err := s.Card(ctx, postID)
	if err != nil {
		return err
	}
	if err := c.ToggleLike(ctx); err != nil {
		return err
	}
	return render(c)
}

// FollowAuthor toggles following the post's author
func (s *PostService) FollowAuthor(ctx context.Context, postID string) error {
	c, err := s.Card(ctx, postID)
	if err != nil {
		return err
	}
	return c.ToggleFollowAuthor(ctx)
}

// Edit replaces the title and text of a post. Empty arguments keep the current value.
func (s *PostService) Edit(ctx context.Context, postID, title, text string) error {
	c, err := s.Card(ctx, postID)
	if err != nil {
		return err
	}

	c.BeginEdit()
	v := c.View()
	if title == "" {
		title = v.EditTitle
	}
	if text == "" {
		text = v.EditText
	}
	return c.SaveEdit(ctx, title, text)
}

// Delete removes a post after confirmation
func (s *PostService) Delete(ctx context.Context, postID string) error {
	c, err := s.Card(ctx, postID)
	if err != nil {
		return err
	}
	return c.Delete(ctx)
}

// CreateRequest is a new generic post
type CreateRequest struct {
	Title     string
	Text      string
	Category  string
	ImagePath string
}

// Create publishes a generic post. A local image is stored first and referenced by key.
func (s *PostService) Create(ctx context.Context, req CreateRequest) (*api.Post, error) {
	title := strings.TrimSpace(req.Title)
	text := strings.TrimSpace(req.Text)
	if title == "" || text == "" {
		return nil, clierrors.ValidationError("title, content", "required")
	}

	key, err := s.storeImage(imagestore.PostPrefix, req.ImagePath)
	if err != nil {
		return nil, err
	}

	return s.publish(ctx, api.PostRequest{
		Title:    title,
		Content:  content.Body(text, key),
		Category: categoryOr(req.Category),
	})
}

const (
	ReviewCategory = "review"
	MovieCategory  = "movie"
)

// MovieRequest is a new movie post
type MovieRequest struct {
	Title     string
	Category  string
	ImagePath string
	content.MovieDetails
}

// CreateMovie publishes a movie post
func (s *PostService) CreateMovie(ctx context.Context, req MovieRequest) (*api.Post, error) {
	title := strings.TrimSpace(req.Title)
	fields := map[string]string{
		"title":       title,
		"director":    req.Director,
		"genre":       req.Genre,
		"year":        req.Year,
		"description": req.Description,
		"image":       req.ImagePath,
	}
	missing := lo.Filter(lo.Keys(fields), func(name string, _ int) bool {
		return strings.TrimSpace(fields[name]) == ""
	})
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, clierrors.ValidationError(strings.Join(missing, ", "), "required")
	}

	key, err := s.storeImage(imagestore.MoviePrefix, req.ImagePath)
	if err != nil {
		return nil, err
	}

	details := req.MovieDetails
	details.ImageURL = key
	category := req.Category
	if strings.TrimSpace(category) == "" {
		category = MovieCategory
	}
	return s.publish(ctx, api.PostRequest{
		Title:    title,
		Content:  content.EncodeMovie(details),
		Category: category,
	})
}

func (s *PostService) storeImage(prefix, path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if s.env.Images == nil {
		return "", clierrors.NewCLIError(clierrors.ErrorTypeUnknown, "Local image store is unavailable", nil)
	}
	key, err := s.env.Images.SaveFile(prefix, path)
	if err != nil {
		return "", clierrors.FileNotFoundError(path).WithCause(err)
	}
	return key, nil
}

func (s *PostService) publish(ctx context.Context, req api.PostRequest) (*api.Post, error) {
	if !s.env.Session.IsAuthenticated() {
		return nil, clierrors.AuthError("Please login to create posts")
	}

	post, err := s.env.Store.CreatePost(ctx, req)
	if err != nil {
		logger.Warn("Failed to create post", "error", err)
		return nil, clierrors.CategorizeError(err)
	}

	if output.IsJSON() {
		return post, output.Print("", post)
	}
	output.PrintSuccess("Post created successfully (id %s)", post.Key())
	return post, nil
}

func categoryOr(category string) string {
	if c := strings.TrimSpace(category); c != "" {
		return c
	}
	return feed.DefaultCategory
}

// Rate rates a post from 1 to 5 and prints the new average
func (s *PostService) Rate(ctx context.Context, postID string, value int) error {
	if !s.env.Session.IsAuthenticated() {
		return clierrors.AuthError("Please login to rate posts")
	}
	if value < 1 || value > 5 {
		return clierrors.ValidationError("rating", "must be between 1 and 5")
	}

	if err := s.env.Store.RatePost(ctx, postID, value); err != nil {
		return clierrors.CategorizeError(err)
	}
	output.PrintSuccess("Rated post %s %d/5", postID, value)
	return s.Rating(ctx, postID)
}

// Rating prints the average rating, the like count and, when signed in, the user's own rating
func (s *PostService) Rating(ctx context.Context, postID string) error {
	avg, err := s.env.Store.GetAverageRating(ctx, postID)
	if err != nil {
		return clierrors.CategorizeError(err)
	}

	record := map[string]interface{}{"postId": postID, "average": avg}
	if likes, err := s.env.Store.GetLikesCount(ctx, postID); err == nil {
		record["likes"] = likes
	} else {
		logger.Debug("Failed to fetch likes count", "post_id", postID, "error", err)
	}
	if s.env.Session.IsAuthenticated() {
		if mine, err := s.env.Store.GetUserRating(ctx, postID); err == nil {
			record["yours"] = mine
		} else {
			logger.Debug("Failed to fetch own rating", "post_id", postID, "error", err)
		}
	}
	return output.PrintRecord("Rating", record)
}

// Trending prints trending posts
func (s *PostService) Trending(ctx context.Context) error {
	posts, err := s.env.Store.TrendingPosts(ctx)
	if err != nil {
		return clierrors.CategorizeError(err)
	}
	return formatter.PrintPosts("Trending", posts)
}

// TopRated prints the best rated posts of a category
func (s *PostService) TopRated(ctx context.Context, category string) error {
	category = categoryOr(category)
	posts, err := s.env.Store.TopRatedPosts(ctx, category)
	if err != nil {
		return clierrors.CategorizeError(err)
	}
	return formatter.PrintPosts("Top rated in "+category, posts)
}

// Search prints posts matching query
func (s *PostService) Search(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return clierrors.ValidationError("query", "required")
	}
	posts, err := s.env.Store.SearchPosts(ctx, query)
	if err != nil {
		return clierrors.CategorizeError(err)
	}
	return formatter.PrintPosts("Results for \""+query+"\"", posts)
}
