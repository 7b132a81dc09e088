package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/vartaverse/varta/cli/pkg/api"
	"github.com/vartaverse/varta/cli/pkg/content"
	"github.com/vartaverse/varta/cli/pkg/interaction"
	"github.com/vartaverse/varta/cli/pkg/output"
)

var (
	Bold    = color.New(color.Bold)
	Faint   = color.New(color.Faint)
	Success = color.New(color.FgGreen)
	Info    = color.New(color.FgCyan)
	Warning = color.New(color.FgYellow)
)

const timeLayout = "2006-01-02 15:04"

// Toaster prints card notices as one-line messages
type Toaster struct{}

// Notify implements interaction.Notifier. In json mode notices go to stderr.
func (Toaster) Notify(n interaction.Notice) {
	if output.IsJSON() {
		fmt.Fprintln(color.Error, n.Title)
		return
	}
	switch n.Level {
	case interaction.LevelError:
		output.PrintError("%s", n.Title)
	default:
		output.PrintSuccess("%s", n.Title)
	}
}

// CardJSON is the machine-readable form of a card
type CardJSON struct {
	ID            string                `json:"id"`
	Title         string                `json:"title"`
	Category      string                `json:"category"`
	AuthorID      string                `json:"authorId,omitempty"`
	Author        string                `json:"author"`
	Following     bool                  `json:"following"`
	Owner         bool                  `json:"owner"`
	CreatedAt     string                `json:"createdAt,omitempty"`
	Rating        float64               `json:"rating,omitempty"`
	Kind          string                `json:"kind"`
	Text          string                `json:"text"`
	ImageKey      string                `json:"imageKey,omitempty"`
	HasImage      bool                  `json:"hasImage"`
	Movie         *content.MovieDetails `json:"movie,omitempty"`
	Liked         bool                  `json:"liked"`
	LikesCount    int                   `json:"likesCount"`
	CommentsCount int                   `json:"commentsCount"`
	Comments      []CommentJSON         `json:"comments,omitempty"`
}

type CommentJSON struct {
	ID        string `json:"id"`
	UserID    string `json:"userId,omitempty"`
	Author    string `json:"author"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt,omitempty"`
	Following bool   `json:"following"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(timeLayout)
}

// ToCardJSON converts a card view for json output
func ToCardJSON(v interaction.View) CardJSON {
	out := CardJSON{
		ID:            v.PostID,
		Title:         v.Title,
		Category:      v.Category,
		AuthorID:      v.AuthorID,
		Author:        v.Author,
		Following:     v.Following,
		Owner:         v.Owner,
		CreatedAt:     formatTime(v.CreatedAt),
		Rating:        v.Rating,
		Kind:          v.Kind.String(),
		Text:          v.Text,
		ImageKey:      v.ImageKey,
		HasImage:      v.Image != "",
		Movie:         v.Movie,
		Liked:         v.Liked,
		LikesCount:    v.LikesCount,
		CommentsCount: v.CommentsCount,
	}
	if v.Expanded {
		out.Comments = make([]CommentJSON, len(v.Comments))
		for i, cm := range v.Comments {
			out.Comments[i] = CommentJSON{
				ID:        cm.ID,
				UserID:    cm.UserID,
				Author:    cm.Author,
				Text:      cm.Text,
				CreatedAt: formatTime(cm.CreatedAt),
				Following: cm.Following,
			}
		}
	}
	return out
}

// RenderCards prints the cards as a json array or one block per card
func RenderCards(views []interaction.View) error {
	if output.IsJSON() {
		out := make([]CardJSON, 0, len(views))
		for _, v := range views {
			if !v.Removed {
				out = append(out, ToCardJSON(v))
			}
		}
		return output.Print("", out)
	}

	if output.GetFormat() == output.FormatTable {
		return output.PrintTable(CardHeaders, cardRows(views))
	}

	for _, v := range views {
		RenderCard(v)
	}
	return nil
}

// RenderCard prints a single card in text form
func RenderCard(v interaction.View) {
	if v.Removed {
		return
	}
	w := output.Out

	Bold.Fprintf(w, "%s", v.Title)
	Faint.Fprintf(w, "  #%s [%s]\n", v.PostID, v.Category)

	fmt.Fprintf(w, "by %s", v.Author)
	if v.Owner {
		Faint.Fprint(w, " (you)")
	} else if v.Following {
		Info.Fprint(w, " (following)")
	}
	if ts := formatTime(v.CreatedAt); ts != "" {
		Faint.Fprintf(w, " · %s", ts)
	}
	fmt.Fprintln(w)

	if v.Movie != nil {
		renderMovie(v.Movie)
	} else if v.Text != "" {
		fmt.Fprintln(w, indent(v.Text))
	}

	if v.ImageKey != "" {
		if v.Image != "" {
			Faint.Fprintf(w, "  [image %s]\n", v.ImageKey)
		} else {
			Faint.Fprintf(w, "  [image %s not available locally]\n", v.ImageKey)
		}
	}

	heart := "♡"
	if v.Liked {
		heart = "♥"
	}
	fmt.Fprintf(w, "%s %d   💬 %d", heart, v.LikesCount, v.CommentsCount)
	if v.Rating > 0 {
		fmt.Fprintf(w, "   ★ %.1f", v.Rating)
	}
	fmt.Fprintln(w)

	if v.Expanded {
		if len(v.Comments) == 0 {
			Faint.Fprintln(w, "  No comments yet.")
		}
		for _, cm := range v.Comments {
			Bold.Fprintf(w, "  %s", cm.Author)
			if cm.Following {
				Info.Fprint(w, " (following)")
			}
			if ts := formatTime(cm.CreatedAt); ts != "" {
				Faint.Fprintf(w, " %s", ts)
			}
			fmt.Fprintf(w, "\n    %s\n", cm.Text)
		}
	}

	if v.Editing {
		Warning.Fprintln(w, "  (editing)")
	}
	fmt.Fprintln(w)
}

func renderMovie(m *content.MovieDetails) {
	w := output.Out
	var facts []string
	if m.Director != "" {
		facts = append(facts, "Director: "+m.Director)
	}
	if m.Genre != "" {
		facts = append(facts, "Genre: "+m.Genre)
	}
	if m.Year != "" {
		facts = append(facts, "Year: "+m.Year)
	}
	if len(facts) > 0 {
		Info.Fprintln(w, "  "+strings.Join(facts, " | "))
	}
	if m.Description != "" {
		fmt.Fprintln(w, indent(m.Description))
	}
}

func indent(s string) string {
	return "  " + strings.ReplaceAll(s, "\n", "\n  ")
}

// CardHeaders are the columns of the table view of cards
var CardHeaders = []string{"ID", "Title", "Author", "Category", "Likes", "Comments", "Liked", "Created"}

func cardRows(views []interaction.View) [][]string {
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		if v.Removed {
			continue
		}
		rows = append(rows, []string{
			v.PostID,
			Truncate(v.Title, 40),
			v.Author,
			v.Category,
			fmt.Sprintf("%d", v.LikesCount),
			fmt.Sprintf("%d", v.CommentsCount),
			boolToMark(v.Liked),
			formatTime(v.CreatedAt),
		})
	}
	return rows
}

// PostHeaders are the columns of plain post listings
var PostHeaders = []string{"ID", "Title", "Category", "Likes", "Comments", "Rating", "Created"}

// PrintPosts prints raw posts, for listings that do not build cards
func PrintPosts(title string, posts []api.Post) error {
	if output.IsJSON() {
		return output.Print("", posts)
	}
	if len(posts) == 0 {
		output.PrintInfo("No posts found.")
		return nil
	}
	if title != "" {
		Bold.Fprintf(output.Out, "%s\n\n", title)
	}

	rows := make([][]string, len(posts))
	for i, p := range posts {
		rating := ""
		if r := p.Rating(); r > 0 {
			rating = fmt.Sprintf("%.1f", r)
		}
		rows[i] = []string{
			p.Key(),
			Truncate(p.Title, 40),
			p.Category,
			fmt.Sprintf("%d", p.LikesCount),
			fmt.Sprintf("%d", p.CommentsCount),
			rating,
			formatTime(p.Timestamp()),
		}
	}
	return output.PrintTable(PostHeaders, rows)
}

// UserHeaders are the columns of user listings
var UserHeaders = []string{"ID", "Name", "Email"}

// PrintUser prints one user as a record
func PrintUser(u *api.User) error {
	if output.IsJSON() {
		return output.Print("", u)
	}
	record := map[string]interface{}{
		"ID":    u.ID.String(),
		"Name":  u.DisplayName("-"),
		"Email": u.Email,
	}
	if u.Role != "" {
		record["Role"] = u.Role
	}
	if u.Bio != "" {
		record["Bio"] = u.Bio
	}
	return output.PrintRecord("", record)
}

// PrintUsers prints users as a table
func PrintUsers(title string, users []api.User) error {
	if output.IsJSON() {
		return output.Print("", users)
	}
	if len(users) == 0 {
		output.PrintInfo("No users found.")
		return nil
	}
	if title != "" {
		Bold.Fprintf(output.Out, "%s\n\n", title)
	}
	rows := make([][]string, len(users))
	for i, u := range users {
		rows[i] = []string{u.ID.String(), u.DisplayName("-"), u.Email}
	}
	return output.PrintTable(UserHeaders, rows)
}

// Truncate shortens s to at most length runes, ending with "..."
func Truncate(s string, length int) string {
	r := []rune(s)
	if len(r) <= length || length < 4 {
		return s
	}
	return string(r[:length-3]) + "..."
}

// Pluralize returns the plural suffix for count
func Pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}

func boolToMark(b bool) string {
	if b {
		return "✓"
	}
	return ""
}
