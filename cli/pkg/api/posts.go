package api

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	json "github.com/json-iterator/go"
	"github.com/vartaverse/varta/cli/pkg/client"
	"github.com/vartaverse/varta/cli/pkg/logger"
)

// PostsQuery filters and pages the post listing
type PostsQuery struct {
	Category string
	Sort     string
	Page     int
	Limit    int
}

func (q PostsQuery) params() map[string]string {
	params := map[string]string{}
	if q.Category != "" {
		params["category"] = q.Category
	}
	if q.Sort != "" {
		params["sort"] = q.Sort
	}
	if q.Page > 0 {
		params["page"] = strconv.Itoa(q.Page)
	}
	if q.Limit > 0 {
		params["limit"] = strconv.Itoa(q.Limit)
	}
	return params
}

// decodePostList accepts a bare array or a {posts: [...]} envelope
func decodePostList(body []byte) ([]Post, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return []Post{}, nil
	}

	if body[0] == '[' {
		var posts []Post
		if err := json.Unmarshal(body, &posts); err != nil {
			return nil, fmt.Errorf("failed to decode posts: %w", err)
		}
		return posts, nil
	}

	var envelope PostsResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}
	if envelope.Posts == nil {
		envelope.Posts = []Post{}
	}
	return envelope.Posts, nil
}

// ListPosts retrieves a page of posts
func ListPosts(ctx context.Context, query PostsQuery) ([]Post, error) {
	logger.Debug("Fetching posts", "category", query.Category, "page", query.Page, "limit", query.Limit)

	resp, err := client.Content().
		R().
		SetContext(ctx).
		SetQueryParams(query.params()).
		Get("/posts")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	return decodePostList(resp.Body())
}

// GetPost retrieves a single post
func GetPost(ctx context.Context, postID string) (*Post, error) {
	logger.Debug("Fetching post", "post_id", postID)

	var post Post

	resp, err := client.Content().
		R().
		SetContext(ctx).
		SetResult(&post).
		Get(fmt.Sprintf("/posts/%s", postID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	return &post, nil
}

// CreatePost creates a new post
func CreatePost(ctx context.Context, req PostRequest) (*Post, error) {
	logger.Debug("Creating post", "title", req.Title, "category", req.Category)

	var post Post

	resp, err := client.Content().
		R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&post).
		Post("/posts")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	return &post, nil
}

// UpdatePost replaces a post's title, content and category
func UpdatePost(ctx context.Context, postID string, req PostRequest) (*Post, error) {
	logger.Debug("Updating post", "post_id", postID, "title", req.Title)

	var post Post

	resp, err := client.Content().
		R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&post).
		Put(fmt.Sprintf("/posts/%s", postID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	return &post, nil
}

// DeletePost deletes a post
func DeletePost(ctx context.Context, postID string) error {
	logger.Debug("Deleting post", "post_id", postID)

	resp, err := client.Content().
		R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/posts/%s", postID))

	return CheckResponse(resp, err)
}

// TrendingPosts retrieves trending posts
func TrendingPosts(ctx context.Context) ([]Post, error) {
	logger.Debug("Fetching trending posts")

	resp, err := client.Content().
		R().
		SetContext(ctx).
		Get("/posts/trending")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	return decodePostList(resp.Body())
}

// TopRatedPosts retrieves the best rated posts in a category
func TopRatedPosts(ctx context.Context, category string) ([]Post, error) {
	logger.Debug("Fetching top-rated posts", "category", category)

	resp, err := client.Content().
		R().
		SetContext(ctx).
		SetQueryParam("category", category).
		Get("/posts/top-rated")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	return decodePostList(resp.Body())
}

// SearchPosts searches posts by title and content
func SearchPosts(ctx context.Context, query string) ([]Post, error) {
	logger.Debug("Searching posts", "query", query)

	resp, err := client.Content().
		R().
		SetContext(ctx).
		SetQueryParam("query", query).
		Get("/posts/search")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	return decodePostList(resp.Body())
}
