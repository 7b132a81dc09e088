package api

import (
	"context"
	"fmt"

	"github.com/vartaverse/varta/cli/pkg/client"
	"github.com/vartaverse/varta/cli/pkg/logger"
)

// GetMe retrieves the authenticated user
func GetMe(ctx context.Context) (*User, error) {
	logger.Debug("Fetching current user")

	var user User

	resp, err := client.Users().
		R().
		SetContext(ctx).
		SetResult(&user).
		Get("/users/me")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	return &user, nil
}

// GetUser retrieves a user by id
func GetUser(ctx context.Context, userID string) (*User, error) {
	logger.Debug("Fetching user", "user_id", userID)

	var user User

	resp, err := client.Users().
		R().
		SetContext(ctx).
		SetResult(&user).
		Get(fmt.Sprintf("/users/%s", userID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	return &user, nil
}

// Follow follows a user
func Follow(ctx context.Context, targetID string) error {
	logger.Debug("Following user", "target_id", targetID)

	resp, err := client.Users().
		R().
		SetContext(ctx).
		Post(fmt.Sprintf("/users/follow/%s", targetID))

	return CheckResponse(resp, err)
}

// Unfollow unfollows a user
func Unfollow(ctx context.Context, targetID string) error {
	logger.Debug("Unfollowing user", "target_id", targetID)

	resp, err := client.Users().
		R().
		SetContext(ctx).
		Post(fmt.Sprintf("/users/unfollow/%s", targetID))

	return CheckResponse(resp, err)
}

// GetFollowing lists the relationships where the user is the follower
func GetFollowing(ctx context.Context, userID string) ([]FollowRecord, error) {
	logger.Debug("Fetching following", "user_id", userID)

	records := []FollowRecord{}

	resp, err := client.Users().
		R().
		SetContext(ctx).
		SetResult(&records).
		Get(fmt.Sprintf("/users/following/%s", userID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	return records, nil
}

// GetFollowers lists the relationships where the user is followed
func GetFollowers(ctx context.Context, userID string) ([]FollowRecord, error) {
	logger.Debug("Fetching followers", "user_id", userID)

	records := []FollowRecord{}

	resp, err := client.Users().
		R().
		SetContext(ctx).
		SetResult(&records).
		Get(fmt.Sprintf("/users/followers/%s", userID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	return records, nil
}
