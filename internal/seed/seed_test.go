package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/lugatapp/lugat-api/internal/platform/memory"
	"github.com/lugatapp/lugat-api/internal/seed"
	"github.com/lugatapp/lugat-api/internal/store"
)

func stores(s *memory.Store) seed.Stores {
	return seed.Stores{Categories: s, Words: s, Learners: s}
}

func TestSeed(t *testing.T) {
	ctx := context.Background()

	t.Run("populates_empty_store", func(t *testing.T) {
		s := memory.New(bcrypt.MinCost)
		require.NoError(t, seed.Seed(ctx, stores(s), nil))

		categories, err := s.ListCategories(ctx)
		require.NoError(t, err)
		assert.Len(t, categories, 5)

		words, err := s.ListWords(ctx, store.WordFilter{})
		require.NoError(t, err)
		assert.Len(t, words, 10)

		learner, err := s.GetLearnerByHandle(ctx, "demo")
		require.NoError(t, err)
		assert.Equal(t, "demo", learner.Handle)
	})

	t.Run("links_time_words_to_saat", func(t *testing.T) {
		s := memory.New(bcrypt.MinCost)
		require.NoError(t, seed.Seed(ctx, stores(s), nil))

		words, err := s.ListWords(ctx, store.WordFilter{TextQuery: "saat"})
		require.NoError(t, err)
		require.Len(t, words, 1)

		related, err := s.GetRelated(ctx, words[0].ID)
		require.NoError(t, err)
		require.Len(t, related, 3)

		turkish := make([]string, 0, len(related))
		for _, word := range related {
			turkish = append(turkish, word.Turkish)
		}
		assert.ElementsMatch(t, []string{"dakika", "vakit", "zaman"}, turkish)
	})

	t.Run("second_run_is_a_noop", func(t *testing.T) {
		s := memory.New(bcrypt.MinCost)
		require.NoError(t, seed.Seed(ctx, stores(s), nil))
		require.NoError(t, seed.Seed(ctx, stores(s), nil))

		categories, err := s.ListCategories(ctx)
		require.NoError(t, err)
		assert.Len(t, categories, 5)

		words, err := s.ListWords(ctx, store.WordFilter{})
		require.NoError(t, err)
		assert.Len(t, words, 10)
	})
}
