package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/linguaflow/internal/model"
)

func TestOrderedMap(t *testing.T) {
	t.Run("keys should keep insertion order", func(t *testing.T) {
		m := model.NewOrderedMap[int]()
		m.Set("zebra", 1)
		m.Set("apple", 2)
		m.Set("mango", 3)

		assert.Equal(t, []string{"zebra", "apple", "mango"}, m.Keys())
		assert.Equal(t, 3, m.Len())
	})

	t.Run("resetting a key should overwrite in place", func(t *testing.T) {
		m := model.NewOrderedMap[int]()
		m.Set("a", 1)
		m.Set("b", 2)
		m.Set("a", 10)

		assert.Equal(t, []string{"a", "b"}, m.Keys())
		v, ok := m.Get("a")
		require.True(t, ok)
		assert.Equal(t, 10, v)
	})

	t.Run("getting a missing key should report absence", func(t *testing.T) {
		m := model.NewOrderedMap[int]()
		_, ok := m.Get("missing")
		assert.False(t, ok)
	})

	t.Run("a nil map should behave as empty", func(t *testing.T) {
		var m *model.OrderedMap[int]
		assert.Equal(t, 0, m.Len())
		assert.Nil(t, m.Keys())
		_, ok := m.Get("a")
		assert.False(t, ok)
	})

	t.Run("returned keys should be a copy", func(t *testing.T) {
		m := model.NewOrderedMap[int]()
		m.Set("a", 1)
		m.Set("b", 2)

		keys := m.Keys()
		keys[0] = "mutated"
		assert.Equal(t, []string{"a", "b"}, m.Keys())
	})
}

func TestTaskModelLookups(t *testing.T) {
	tm := model.TaskModel{
		Roles: []model.Role{
			{ID: "customer", Title: "Customer"},
			{ID: "barista", Title: "Barista"},
		},
		Dialogues: []model.Dialogue{
			{ID: "d1", Scope: model.DialogueScopeSubtask},
		},
		Assets: model.AssetLibrary{
			Images: map[string]model.ImageAsset{
				"img1": {URL: "https://example.com/a.png"},
				"img2": {},
			},
		},
	}

	t.Run("dialogue lookup by id", func(t *testing.T) {
		d, ok := tm.Dialogue("d1")
		require.True(t, ok)
		assert.Equal(t, model.DialogueScopeSubtask, d.Scope)

		_, ok = tm.Dialogue("missing")
		assert.False(t, ok)
	})

	t.Run("role title resolves ids and titles, falls back to the input", func(t *testing.T) {
		assert.Equal(t, "Customer", tm.RoleTitle("customer"))
		assert.Equal(t, "Barista", tm.RoleTitle("Barista"))
		assert.Equal(t, "stranger", tm.RoleTitle("stranger"))
	})

	t.Run("empty assets need a placeholder", func(t *testing.T) {
		a, ok := tm.ImageAsset("img1")
		require.True(t, ok)
		assert.False(t, a.Empty())

		a, ok = tm.ImageAsset("img2")
		require.True(t, ok)
		assert.True(t, a.Empty())

		_, ok = tm.ImageAsset("missing")
		assert.False(t, ok)
	})
}
