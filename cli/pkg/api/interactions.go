package api

import (
	"context"
	"fmt"

	json "github.com/json-iterator/go"
	"github.com/vartaverse/varta/cli/pkg/client"
	"github.com/vartaverse/varta/cli/pkg/logger"
)

func getScalar(ctx context.Context, path string, target interface{}) error {
	resp, err := client.Content().
		R().
		SetContext(ctx).
		Get(path)

	if err := CheckResponse(resp, err); err != nil {
		return err
	}

	if err := json.Unmarshal(resp.Body(), target); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

// ToggleLike likes the post, or removes the like if already present
func ToggleLike(ctx context.Context, postID string) error {
	logger.Debug("Toggling like", "post_id", postID)

	resp, err := client.Content().
		R().
		SetContext(ctx).
		Post(fmt.Sprintf("/posts/%s/like", postID))

	return CheckResponse(resp, err)
}

// GetLikeStatus reports whether the current user likes the post
func GetLikeStatus(ctx context.Context, postID string) (bool, error) {
	logger.Debug("Checking like status", "post_id", postID)

	var liked bool
	if err := getScalar(ctx, fmt.Sprintf("/posts/%s/liked", postID), &liked); err != nil {
		return false, err
	}
	return liked, nil
}

// GetLikesCount returns the number of likes on a post
func GetLikesCount(ctx context.Context, postID string) (int, error) {
	logger.Debug("Fetching likes count", "post_id", postID)

	var count int
	if err := getScalar(ctx, fmt.Sprintf("/posts/%s/likes", postID), &count); err != nil {
		return 0, err
	}
	return count, nil
}

// RatePost rates a post from 1 to 5
func RatePost(ctx context.Context, postID string, value int) error {
	logger.Debug("Rating post", "post_id", postID, "rating", value)

	if value < 1 || value > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %d", value)
	}

	resp, err := client.Content().
		R().
		SetContext(ctx).
		SetBody(RatingRequest{RatingValue: value}).
		Post(fmt.Sprintf("/posts/%s/rate", postID))

	return CheckResponse(resp, err)
}

// GetAverageRating returns the average rating of a post
func GetAverageRating(ctx context.Context, postID string) (float64, error) {
	logger.Debug("Fetching average rating", "post_id", postID)

	var avg float64
	if err := getScalar(ctx, fmt.Sprintf("/posts/%s/rating", postID), &avg); err != nil {
		return 0, err
	}
	return avg, nil
}

// GetUserRating returns the current user's rating of a post, 0 if unrated
func GetUserRating(ctx context.Context, postID string) (int, error) {
	logger.Debug("Fetching user rating", "post_id", postID)

	var rating int
	if err := getScalar(ctx, fmt.Sprintf("/posts/%s/rating/user", postID), &rating); err != nil {
		return 0, err
	}
	return rating, nil
}
