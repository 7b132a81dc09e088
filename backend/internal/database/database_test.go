package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vartaverse/varta/backend/internal/models"
)

func TestOpenIsolatesDatabases(t *testing.T) {
	a, err := Open(false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(a) })

	b, err := Open(false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(b) })

	require.NoError(t, a.Create(&models.User{Email: "a@example.com", PasswordHash: "x", Name: "A"}).Error)

	var count int64
	require.NoError(t, b.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)

	require.NoError(t, a.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestTagsPersist(t *testing.T) {
	db, err := Open(false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	post := models.Post{Title: "t", Content: "c", Category: "general", Tags: models.StringArray{"a", "b"}}
	require.NoError(t, db.Create(&post).Error)

	var loaded models.Post
	require.NoError(t, db.First(&loaded, post.ID).Error)
	assert.Equal(t, models.StringArray{"a", "b"}, loaded.Tags)
	assert.False(t, loaded.CreatedAt.IsZero())
}
