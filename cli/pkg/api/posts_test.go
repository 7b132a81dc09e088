package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPosts_BareArray(t *testing.T) {
	reqs := fakeStore(t, jsonReply(http.StatusOK, `[{"postId":1,"userId":2,"title":"a","content":"x","category":"general","likesCount":3}]`))

	posts, err := ListPosts(testCtx(), PostsQuery{Category: "general", Page: 2, Limit: 10})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "1", posts[0].Key())
	assert.Equal(t, "2", posts[0].Owner())
	assert.Equal(t, 3, posts[0].LikesCount)

	req := requireOneRequest(t, reqs)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/posts", req.Path)
	assert.Equal(t, map[string]string{"category": "general", "page": "2", "limit": "10"}, req.Query)
}

func TestListPosts_Envelope(t *testing.T) {
	fakeStore(t, jsonReply(http.StatusOK, `{"posts":[{"id":"1","title":"Welcome to VartaVerse"},{"id":"2","title":"Getting Started Guide"}],"total":2,"page":1,"limit":10}`))

	posts, err := ListPosts(testCtx(), PostsQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "Welcome to VartaVerse", posts[0].Title)
}

func TestListPosts_EmptyBody(t *testing.T) {
	fakeStore(t, jsonReply(http.StatusOK, `null`))

	posts, err := ListPosts(testCtx(), PostsQuery{})
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestListPosts_ServerError(t *testing.T) {
	fakeStore(t, jsonReply(http.StatusInternalServerError, `{"error":"boom"}`))

	_, err := ListPosts(testCtx(), PostsQuery{})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, statusOf(err))
	assert.Contains(t, err.Error(), "boom")
}

func TestCreatePost(t *testing.T) {
	reqs := fakeStore(t, jsonReply(http.StatusCreated, `{"id":"4","title":"Hi","content":"there","category":"general"}`))

	post, err := CreatePost(testCtx(), PostRequest{Title: "Hi", Content: "there", Category: "general"})
	require.NoError(t, err)
	assert.Equal(t, "4", post.Key())

	req := requireOneRequest(t, reqs)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.JSONEq(t, `{"title":"Hi","content":"there","category":"general"}`, req.Body)
}

func TestUpdatePost(t *testing.T) {
	reqs := fakeStore(t, jsonReply(http.StatusOK, `{"postId":4,"title":"New"}`))

	_, err := UpdatePost(testCtx(), "4", PostRequest{Title: "New", Content: `{"text":"b","imageUrl":"post_image_1"}`, Category: "general"})
	require.NoError(t, err)

	req := requireOneRequest(t, reqs)
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/posts/4", req.Path)
	assert.Contains(t, req.Body, "post_image_1")
}

func TestDeletePost(t *testing.T) {
	reqs := fakeStore(t, func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })

	require.NoError(t, DeletePost(testCtx(), "9"))

	req := requireOneRequest(t, reqs)
	assert.Equal(t, http.MethodDelete, req.Method)
	assert.Equal(t, "/posts/9", req.Path)
}

func TestDeletePost_NotFound(t *testing.T) {
	fakeStore(t, jsonReply(http.StatusNotFound, `{"error":"Post not found"}`))

	err := DeletePost(testCtx(), "9")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestDiscoveryEndpoints(t *testing.T) {
	reqs := fakeStore(t, jsonReply(http.StatusOK, `[{"postId":1}]`))

	_, err := TrendingPosts(testCtx())
	require.NoError(t, err)
	_, err = TopRatedPosts(testCtx(), "movie")
	require.NoError(t, err)
	_, err = SearchPosts(testCtx(), "guide")
	require.NoError(t, err)

	require.Len(t, *reqs, 3)
	assert.Equal(t, "/posts/trending", (*reqs)[0].Path)
	assert.Equal(t, "/posts/top-rated", (*reqs)[1].Path)
	assert.Equal(t, "movie", (*reqs)[1].Query["category"])
	assert.Equal(t, "/posts/search", (*reqs)[2].Path)
	assert.Equal(t, "guide", (*reqs)[2].Query["query"])
}
