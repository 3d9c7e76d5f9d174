package seed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/VitaminP8/yatube/internal/group"
	"github.com/VitaminP8/yatube/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const groupsYAML = `
groups:
  - title: Cats
    slug: cats
    description: All about cats
  - title: Dogs
    slug: dogs
`

func TestParse(t *testing.T) {
	t.Run("Groups", func(t *testing.T) {
		data, err := Parse(strings.NewReader(groupsYAML))
		require.NoError(t, err)
		require.Len(t, data.Groups, 2)
		assert.Equal(t, Group{Title: "Cats", Slug: "cats", Description: "All about cats"}, data.Groups[0])
		assert.Equal(t, "dogs", data.Groups[1].Slug)
	})

	t.Run("Empty file", func(t *testing.T) {
		data, err := Parse(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, data.Groups)
	})

	t.Run("Invalid slug", func(t *testing.T) {
		_, err := Parse(strings.NewReader("groups:\n  - title: Bad\n    slug: bad/slug\n"))
		assert.ErrorIs(t, err, group.ErrInvalidSlug)
	})

	t.Run("Missing title", func(t *testing.T) {
		_, err := Parse(strings.NewReader("groups:\n  - slug: cats\n"))
		assert.ErrorContains(t, err, "title is required")
	})

	t.Run("Unknown field", func(t *testing.T) {
		_, err := Parse(strings.NewReader("groups:\n  - title: Cats\n    slug: cats\n    colour: red\n"))
		assert.Error(t, err)
	})
}

func TestLoadAndApply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(groupsYAML), 0644))

	data, err := Load(path)
	require.NoError(t, err)

	store := memory.New()

	created, err := Apply(store.Groups, data)
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	cats, err := store.Groups.GetGroupBySlug("cats")
	require.NoError(t, err)
	assert.Equal(t, "All about cats", cats.Description)

	t.Run("Second run is a no-op", func(t *testing.T) {
		created, err := Apply(store.Groups, data)
		require.NoError(t, err)
		assert.Zero(t, created)

		_, total, err := store.Groups.ListGroups(-1, 0)
		require.NoError(t, err)
		assert.Equal(t, 2, total)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
