package formatter

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vartaverse/varta/cli/pkg/api"
	"github.com/vartaverse/varta/cli/pkg/config"
	"github.com/vartaverse/varta/cli/pkg/content"
	"github.com/vartaverse/varta/cli/pkg/interaction"
	"github.com/vartaverse/varta/cli/pkg/output"
)

func capture(t *testing.T, format string) *bytes.Buffer {
	t.Helper()
	require.NoError(t, config.Init(filepath.Join(t.TempDir(), "config.toml")))
	config.Set("output.format", format)

	color.NoColor = true
	buf := &bytes.Buffer{}
	prev := output.Out
	output.Out = buf
	t.Cleanup(func() { output.Out = prev })
	return buf
}

func sampleView() interaction.View {
	return interaction.View{
		PostID:        "4",
		Title:         "Hello",
		Category:      "general",
		AuthorID:      "7",
		Author:        "Asha",
		Following:     true,
		CreatedAt:     time.Date(2024, 1, 2, 3, 4, 0, 0, time.Local),
		Kind:          content.Generic,
		Text:          "first line\nsecond line",
		ImageKey:      "post_image_1",
		Liked:         true,
		LikesCount:    3,
		CommentsCount: 1,
		Expanded:      true,
		Comments: []interaction.CommentView{
			{Comment: interaction.Comment{ID: "1", UserID: "8", Author: "Ravi", Text: "nice"}, Following: true},
		},
	}
}

func TestRenderCard_Text(t *testing.T) {
	buf := capture(t, "text")

	RenderCard(sampleView())

	out := buf.String()
	assert.Contains(t, out, "Hello")
	assert.Contains(t, out, "#4 [general]")
	assert.Contains(t, out, "by Asha (following)")
	assert.Contains(t, out, "2024-01-02 03:04")
	assert.Contains(t, out, "  first line\n  second line")
	assert.Contains(t, out, "[image post_image_1 not available locally]")
	assert.Contains(t, out, "♥ 3")
	assert.Contains(t, out, "💬 1")
	assert.Contains(t, out, "Ravi (following)")
	assert.Contains(t, out, "    nice")
}

func TestRenderCard_Owner(t *testing.T) {
	buf := capture(t, "text")

	v := sampleView()
	v.Owner = true
	v.Liked = false
	v.Expanded = false
	v.Image = "data:image/png;base64,AAAA"
	RenderCard(v)

	out := buf.String()
	assert.Contains(t, out, "by Asha (you)")
	assert.NotContains(t, out, "(following)\n")
	assert.Contains(t, out, "[image post_image_1]")
	assert.Contains(t, out, "♡ 3")
	assert.NotContains(t, out, "Ravi")
}

func TestRenderCard_Movie(t *testing.T) {
	buf := capture(t, "text")

	v := sampleView()
	v.Kind = content.Movie
	v.Movie = &content.MovieDetails{Director: "Ray", Genre: "Drama", Year: "1955", Description: "A village story"}
	RenderCard(v)

	out := buf.String()
	assert.Contains(t, out, "Director: Ray | Genre: Drama | Year: 1955")
	assert.Contains(t, out, "  A village story")
}

func TestRenderCard_Removed(t *testing.T) {
	buf := capture(t, "text")

	v := sampleView()
	v.Removed = true
	RenderCard(v)

	assert.Empty(t, buf.String())
}

func TestRenderCards_JSON(t *testing.T) {
	buf := capture(t, "json")

	removed := sampleView()
	removed.PostID = "5"
	removed.Removed = true
	require.NoError(t, RenderCards([]interaction.View{sampleView(), removed}))

	out := buf.String()
	assert.Contains(t, out, `"id": "4"`)
	assert.Contains(t, out, `"kind": "generic"`)
	assert.Contains(t, out, `"hasImage": false`)
	assert.Contains(t, out, `"author": "Ravi"`)
	assert.NotContains(t, out, `"id": "5"`)
}

func TestRenderCards_Table(t *testing.T) {
	buf := capture(t, "table")

	require.NoError(t, RenderCards([]interaction.View{sampleView()}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Title")
	assert.Contains(t, lines[1], "Hello")
	assert.Contains(t, lines[1], "✓")
}

func TestToaster(t *testing.T) {
	buf := capture(t, "text")

	Toaster{}.Notify(interaction.Notice{Level: interaction.LevelSuccess, Title: "Post liked"})
	Toaster{}.Notify(interaction.Notice{Level: interaction.LevelError, Title: "Failed to like post"})

	assert.Equal(t, "Post liked\nError: Failed to like post\n", buf.String())
}

func TestToaster_JSONKeepsStdoutClean(t *testing.T) {
	buf := capture(t, "json")

	prev := color.Error
	errBuf := &bytes.Buffer{}
	color.Error = errBuf
	t.Cleanup(func() { color.Error = prev })

	Toaster{}.Notify(interaction.Notice{Level: interaction.LevelSuccess, Title: "Post liked"})

	assert.Empty(t, buf.String())
	assert.Equal(t, "Post liked\n", errBuf.String())
}

func TestPrintPosts(t *testing.T) {
	buf := capture(t, "text")

	posts := []api.Post{
		{ID: "1", Title: "One", Category: "general", LikesCount: 2, AverageRating: 4.5},
	}
	require.NoError(t, PrintPosts("Trending", posts))

	out := buf.String()
	assert.Contains(t, out, "Trending")
	assert.Contains(t, out, "One")
	assert.Contains(t, out, "4.5")
}

func TestPrintPosts_Empty(t *testing.T) {
	buf := capture(t, "text")

	require.NoError(t, PrintPosts("", nil))
	assert.Equal(t, "No posts found.\n", buf.String())
}

func TestPrintUser(t *testing.T) {
	buf := capture(t, "text")

	require.NoError(t, PrintUser(&api.User{ID: "7", Name: "Asha", Email: "asha@example.com"}))

	out := buf.String()
	assert.Contains(t, out, "Name: Asha")
	assert.Contains(t, out, "Email: asha@example.com")
	assert.NotContains(t, out, "Bio")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "hello w...", Truncate("hello world!", 10))
	assert.Equal(t, "नमस्...", Truncate("नमस्ते दुनिया", 7))
	assert.Equal(t, "abc", Truncate("abc", 2))
}

func TestPluralize(t *testing.T) {
	assert.Equal(t, "s", Pluralize(0))
	assert.Equal(t, "", Pluralize(1))
	assert.Equal(t, "s", Pluralize(2))
}
