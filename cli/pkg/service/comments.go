package service

import (
	"context"

	"github.com/vartaverse/varta/cli/pkg/formatter"
	"github.com/vartaverse/varta/cli/pkg/interaction"
	"github.com/vartaverse/varta/cli/pkg/output"
)

// CommentService lists and adds comments through a post's card
type CommentService struct {
	posts *PostService
}

// NewCommentService creates a comment service on top of the post service
func NewCommentService(posts *PostService) *CommentService {
	return &CommentService{posts: posts}
}

// List prints the comments of a post
func (s *CommentService) List(ctx context.Context, postID string) error {
	c, err := s.posts.Card(ctx, postID)
	if err != nil {
		return err
	}
	if err := c.ToggleComments(ctx); err != nil {
		return err
	}
	return printComments(c.View())
}

// Add posts a comment and prints the updated list
func (s *CommentService) Add(ctx context.Context, postID, text string) error {
	c, err := s.posts.Card(ctx, postID)
	if err != nil {
		return err
	}
	// Load first so the new comment lands after the existing ones
	if err := c.ToggleComments(ctx); err != nil {
		return err
	}
	if err := c.SubmitComment(ctx, text); err != nil {
		return err
	}
	return printComments(c.View())
}

func printComments(v interaction.View) error {
	if output.IsJSON() {
		return output.Print("", formatter.ToCardJSON(v).Comments)
	}
	if len(v.Comments) == 0 {
		output.PrintInfo("No comments yet.")
		return nil
	}

	formatter.Bold.Fprintf(output.Out, "%d comment%s on %q\n\n", v.CommentsCount, formatter.Pluralize(v.CommentsCount), v.Title)
	rows := make([][]string, len(v.Comments))
	for i, cm := range v.Comments {
		author := cm.Author
		if cm.Following {
			author += " (following)"
		}
		created := ""
		if !cm.CreatedAt.IsZero() {
			created = cm.CreatedAt.Local().Format("2006-01-02 15:04")
		}
		rows[i] = []string{author, formatter.Truncate(cm.Text, 60), created}
	}
	return output.PrintTable([]string{"Author", "Comment", "Created"}, rows)
}
