package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vartaverse/varta/cli/pkg/api"
	"github.com/vartaverse/varta/cli/pkg/client"
	"github.com/vartaverse/varta/cli/pkg/config"
	"github.com/vartaverse/varta/cli/pkg/credentials"
	clierrors "github.com/vartaverse/varta/cli/pkg/errors"
)

func TestCommentService_AddAfterExisting(t *testing.T) {
	env := newTestEnv(t, true)
	seedPosts(env.store, 1, "general")
	env.store.users["8"] = api.User{ID: "8", Name: "Ravi"}
	env.store.comments["1"] = []api.Comment{{CommentID: "1", UserID: "8", Text: "older"}}

	svc := NewCommentService(NewPostService(env.Env, nil))
	require.NoError(t, svc.Add(context.Background(), "1", "  hello  "))

	out := env.out.String()
	assert.Contains(t, out, "2 comments on \"Post 1\"")
	assert.Less(t, strings.Index(out, "older"), strings.Index(out, "hello"))
	assert.Contains(t, out, "Current User")
	assert.Equal(t, []string{"AddComment:1"}, env.store.calls("AddComment"))
	assert.Equal(t, []string{"Comment added successfully"}, env.notifier.titles())
}

func TestCommentService_ListEmpty(t *testing.T) {
	env := newTestEnv(t, false)
	seedPosts(env.store, 1, "general")

	require.NoError(t, NewCommentService(NewPostService(env.Env, nil)).List(context.Background(), "1"))

	assert.Equal(t, "No comments yet.\n", env.out.String())
}

func TestCommentService_AddFailureReverts(t *testing.T) {
	env := newTestEnv(t, true)
	seedPosts(env.store, 1, "general")
	env.store.Errs["AddComment"] = &api.APIError{StatusCode: 500, Message: "boom"}

	err := NewCommentService(NewPostService(env.Env, nil)).Add(context.Background(), "1", "hello")

	require.Error(t, err)
	assert.True(t, clierrors.WasReported(err))
	assert.Equal(t, []string{"Failed to add comment"}, env.notifier.titles())
}

func TestUserService_FollowAndUnfollow(t *testing.T) {
	env := newTestEnv(t, true)
	svc := NewUserService(env.Env)

	require.NoError(t, svc.Follow(context.Background(), "7"))
	assert.True(t, env.Follows.IsFollowing("7"))

	require.NoError(t, svc.Unfollow(context.Background(), "7"))
	assert.False(t, env.Follows.IsFollowing("7"))

	assert.Equal(t, []string{"User followed", "User unfollowed"}, env.notifier.titles())
}

func TestUserService_FollowGuards(t *testing.T) {
	env := newTestEnv(t, false)
	err := NewUserService(env.Env).Follow(context.Background(), "7")
	assert.True(t, clierrors.IsType(err, clierrors.ErrorTypeAuth))
	assert.True(t, clierrors.WasReported(err))

	env = newTestEnv(t, true)
	err = NewUserService(env.Env).Follow(context.Background(), " ")
	assert.True(t, clierrors.IsType(err, clierrors.ErrorTypeNotFound))
	assert.Equal(t, []string{"Invalid user ID"}, env.notifier.titles())
	assert.Empty(t, env.store.calls("Follow"))
}

func TestUserService_FollowFailureKeepsState(t *testing.T) {
	env := newTestEnv(t, true)
	env.store.Errs["Follow"] = errors.New("connection refused")

	err := NewUserService(env.Env).Follow(context.Background(), "7")

	require.Error(t, err)
	assert.False(t, env.Follows.Known("7"))
	assert.Equal(t, []string{"Failed to update follow status"}, env.notifier.titles())
}

func TestUserService_FollowingOfCurrentUser(t *testing.T) {
	env := newTestEnv(t, true)
	env.store.users["7"] = api.User{ID: "7", Name: "Asha", Email: "asha@example.com"}
	env.store.following["1"] = []api.FollowRecord{
		{FollowerID: "1", FollowingID: "7"},
		{FollowerID: "1", TargetID: "8"},
		{FollowerID: "1", FollowingID: "7"},
	}

	require.NoError(t, NewUserService(env.Env).Following(context.Background(), ""))

	out := env.out.String()
	assert.Contains(t, out, "Asha")
	assert.Contains(t, out, "8")
	assert.Len(t, env.store.calls("GetUser:7"), 1)
}

func TestUserService_FollowersSignedOutNeedsID(t *testing.T) {
	env := newTestEnv(t, false)
	svc := NewUserService(env.Env)

	err := svc.Followers(context.Background(), "")
	assert.True(t, clierrors.IsType(err, clierrors.ErrorTypeAuth))

	env.store.users["1"] = api.User{ID: "1", Name: "Current User"}
	env.store.followers["7"] = []api.FollowRecord{{FollowerID: "1", FollowingID: "7"}}
	require.NoError(t, svc.Followers(context.Background(), "7"))
	assert.Contains(t, env.out.String(), "Current User")
}

func TestUserService_Show(t *testing.T) {
	env := newTestEnv(t, true)
	env.store.users["7"] = api.User{ID: "7", Name: "Asha", Email: "asha@example.com"}
	env.store.following["1"] = []api.FollowRecord{{FollowingID: "7"}}

	require.NoError(t, NewUserService(env.Env).Show(context.Background(), "7"))

	out := env.out.String()
	assert.Contains(t, out, "Name: Asha")
	assert.Contains(t, out, "You follow this user")
}

func TestUserService_ShowUnknownUser(t *testing.T) {
	env := newTestEnv(t, false)

	err := NewUserService(env.Env).Show(context.Background(), "404")

	assert.True(t, clierrors.IsType(err, clierrors.ErrorTypeNotFound))
	assert.Contains(t, err.Error(), "User not found: 404")
}

func TestAuthService_Login(t *testing.T) {
	env := newTestEnv(t, false)
	t.Cleanup(client.Reset)

	require.NoError(t, NewAuthService(env.Env).Login(context.Background(), "asha@example.com", "pw"))

	creds, err := credentials.Load()
	require.NoError(t, err)
	require.NotNil(t, creds)
	assert.Equal(t, "tok", creds.AccessToken)
	assert.Equal(t, "7", creds.UserID)
	assert.Equal(t, "Asha", creds.Name)
	assert.Equal(t, "asha@example.com", creds.Email)
	assert.True(t, creds.IsValid())
	assert.Equal(t, "tok", client.AuthToken())
	assert.Contains(t, env.out.String(), "Logged in as Asha")
}

func TestAuthService_LoginRejected(t *testing.T) {
	env := newTestEnv(t, false)
	env.store.Errs["Login"] = &api.APIError{StatusCode: 401, Message: "Invalid credentials"}

	err := NewAuthService(env.Env).Login(context.Background(), "a@b.c", "bad")

	assert.True(t, clierrors.IsType(err, clierrors.ErrorTypeAuth))
	creds, loadErr := credentials.Load()
	require.NoError(t, loadErr)
	assert.Nil(t, creds)
}

func TestAuthService_LoginKeepsSessionWhenDeclined(t *testing.T) {
	env := newTestEnv(t, true)
	env.Confirmer = fixedConfirmer(false)

	require.NoError(t, NewAuthService(env.Env).Login(context.Background(), "a@b.c", "pw"))

	assert.Empty(t, env.store.calls("Login"))
	assert.Contains(t, env.out.String(), "Already logged in as Current User")
}

func TestAuthService_Register(t *testing.T) {
	env := newTestEnv(t, false)
	svc := NewAuthService(env.Env)

	require.NoError(t, svc.Register(context.Background(), RegisterRequest{Email: "new@example.com", Password: "pw", Name: "Neha"}))
	assert.Contains(t, env.out.String(), "Account created for Neha")

	env.store.Errs["Register"] = &api.APIError{StatusCode: 409, Message: "User already exists"}
	err := svc.Register(context.Background(), RegisterRequest{Email: "new@example.com", Password: "pw", Name: "Neha"})
	assert.True(t, clierrors.IsType(err, clierrors.ErrorTypeConflict))
}

func TestAuthService_LogoutAndWhoAmI(t *testing.T) {
	env := newTestEnv(t, true)
	t.Cleanup(client.Reset)
	svc := NewAuthService(env.Env)

	require.NoError(t, svc.WhoAmI(context.Background()))
	assert.Contains(t, env.out.String(), "Name: Current User")

	require.NoError(t, credentials.Save(env.Session.Credentials()))
	require.NoError(t, svc.Logout())
	_, err := os.Stat(config.GetCredentialsPath())
	assert.True(t, os.IsNotExist(err))
	assert.Contains(t, env.out.String(), "Logged out successfully")

	signedOut := newTestEnv(t, false)
	err = NewAuthService(signedOut.Env).WhoAmI(context.Background())
	assert.True(t, clierrors.IsType(err, clierrors.ErrorTypeAuth))
	require.NoError(t, NewAuthService(signedOut.Env).Logout())
	assert.Contains(t, signedOut.out.String(), "Warning: Not logged in")
}

func TestImageService(t *testing.T) {
	env := newTestEnv(t, true)
	svc := NewImageService(env.Env)

	assert.Error(t, svc.List())

	withImages(t, env)
	key, err := env.Images.Save("post_image", pngHeader)
	require.NoError(t, err)

	require.NoError(t, svc.List())
	assert.Contains(t, env.out.String(), key)

	out := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, svc.Show(key, out))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)

	err = svc.Show("post_image_0", "")
	assert.True(t, clierrors.IsType(err, clierrors.ErrorTypeNotFound))
}
