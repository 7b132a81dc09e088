package api

import (
	"bytes"
	"context"
	"fmt"

	json "github.com/json-iterator/go"
	"github.com/vartaverse/varta/cli/pkg/client"
	"github.com/vartaverse/varta/cli/pkg/logger"
)

// GetComments retrieves all comments on a post
func GetComments(ctx context.Context, postID string) ([]Comment, error) {
	logger.Debug("Fetching comments", "post_id", postID)

	resp, err := client.Content().
		R().
		SetContext(ctx).
		Get(fmt.Sprintf("/posts/%s/comments", postID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	body := bytes.TrimSpace(resp.Body())
	comments := []Comment{}
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return comments, nil
	}

	if body[0] == '{' {
		var envelope struct {
			Comments []Comment `json:"comments"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, fmt.Errorf("failed to decode comments: %w", err)
		}
		if envelope.Comments != nil {
			comments = envelope.Comments
		}
		return comments, nil
	}

	if err := json.Unmarshal(body, &comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}
	return comments, nil
}

// AddComment adds a comment to a post
func AddComment(ctx context.Context, postID, text string) (*Comment, error) {
	logger.Debug("Adding comment", "post_id", postID, "length", len(text))

	var comment Comment

	resp, err := client.Content().
		R().
		SetContext(ctx).
		SetBody(CommentRequest{Text: text}).
		SetResult(&comment).
		Post(fmt.Sprintf("/posts/%s/comment", postID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	return &comment, nil
}

// GetCommentCount returns the number of comments on a post
func GetCommentCount(ctx context.Context, postID string) (int, error) {
	logger.Debug("Fetching comment count", "post_id", postID)

	var count int
	if err := getScalar(ctx, fmt.Sprintf("/posts/%s/comments/count", postID), &count); err != nil {
		return 0, err
	}
	return count, nil
}
