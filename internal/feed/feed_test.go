package feed

import (
	"fmt"
	"testing"

	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/VitaminP8/yatube/internal/storage/memory"
	"github.com/VitaminP8/yatube/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store   *memory.Storage
	service *Service
	leo     *models.User
	anna    *models.User
	group   *models.Group
}

func newFixture(t *testing.T) *fixture {
	store := memory.New()
	leo, err := store.Users.RegisterUser("leo", "", "password123")
	require.NoError(t, err)
	anna, err := store.Users.RegisterUser("anna", "", "password123")
	require.NoError(t, err)
	group, err := store.Groups.CreateGroup("Cats", "cats", "")
	require.NoError(t, err)

	for i := 0; i < 13; i++ {
		_, err := store.Posts.CreatePost(leo.ID, &group.ID, fmt.Sprintf("post %d", i), "")
		require.NoError(t, err)
	}

	return &fixture{
		store:   store,
		service: NewService(store.Posts, 10),
		leo:     leo,
		anna:    anna,
		group:   group,
	}
}

func TestService_Pages(t *testing.T) {
	f := newFixture(t)

	listings := map[string]func(page string) (*PostPage, error){
		"index":   f.service.All,
		"group":   func(page string) (*PostPage, error) { return f.service.ByGroup(f.group, page) },
		"profile": func(page string) (*PostPage, error) { return f.service.ByAuthor(f.leo, page) },
	}

	for name, listing := range listings {
		t.Run(name, func(t *testing.T) {
			first, err := listing("1")
			require.NoError(t, err)
			assert.Len(t, first.Items, 10)
			assert.Equal(t, 2, first.NumPages)
			assert.True(t, first.HasNext())
			assert.False(t, first.HasPrev())
			assert.Equal(t, "post 12", first.Items[0].Text)

			second, err := listing("2")
			require.NoError(t, err)
			assert.Len(t, second.Items, 3)
			assert.False(t, second.HasNext())
			assert.Equal(t, "post 0", second.Items[2].Text)
		})
	}
}

func TestService_PageNumberNormalization(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		raw      string
		expected int
	}{
		{"", 1},
		{"abc", 1},
		{"0", 1},
		{"-3", 1},
		{"2", 2},
		{"99", 2},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("page %q", tt.raw), func(t *testing.T) {
			page, err := f.service.All(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, page.Number)
			assert.NotEmpty(t, page.Items)
		})
	}
}

func TestService_Followed(t *testing.T) {
	f := newFixture(t)
	reader, err := f.store.Users.RegisterUser("reader", "", "password123")
	require.NoError(t, err)
	stranger, err := f.store.Users.RegisterUser("stranger", "", "password123")
	require.NoError(t, err)

	annaPost, err := f.store.Posts.CreatePost(f.anna.ID, nil, "from anna", "")
	require.NoError(t, err)
	_, err = f.store.Follows.Follow(reader.ID, f.anna.ID)
	require.NoError(t, err)

	t.Run("Only followed authors", func(t *testing.T) {
		page, err := f.service.Followed(&auth.Identity{ID: reader.ID, Username: reader.Username}, "1")
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, annaPost.ID, page.Items[0].ID)
	})

	t.Run("No follows gives empty feed", func(t *testing.T) {
		page, err := f.service.Followed(&auth.Identity{ID: stranger.ID, Username: stranger.Username}, "1")
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.Equal(t, 1, page.NumPages)
		assert.False(t, page.HasNext())
	})

	t.Run("Anonymous", func(t *testing.T) {
		_, err := f.service.Followed(nil, "1")
		assert.ErrorIs(t, err, ErrLoginRequired)
	})
}
