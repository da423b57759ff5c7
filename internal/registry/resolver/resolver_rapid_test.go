package resolver

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/sorenhq/namevault/internal/registry/domain"
)

// TestResolver_MatchesMapModel drives a resolver with random operation
// sequences and checks every observation against a plain map.
func TestResolver_MatchesMapModel(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		h := New(newMemStore(), Config{})
		defer h.Close()

		ctx := context.Background()
		model := map[string]uuid.UUID{}
		nameGen := rapid.SampledFrom([]string{"alpha", "beta", "gamma", "delta"})

		rt.Repeat(map[string]func(*rapid.T){
			"create": func(rt *rapid.T) {
				name := nameGen.Draw(rt, "name")
				uid, err := h.Create(ctx, name)
				if _, taken := model[name]; taken {
					var exists *domain.AlreadyExistsError
					require.ErrorAs(rt, err, &exists)
					return
				}
				require.NoError(rt, err)
				model[name] = uid
			},
			"get": func(rt *rapid.T) {
				name := nameGen.Draw(rt, "name")
				uid, err := h.Get(ctx, name)
				want, ok := model[name]
				if !ok {
					var notFound *domain.NotFoundError
					require.ErrorAs(rt, err, &notFound)
					return
				}
				require.NoError(rt, err)
				require.Equal(rt, want, uid)
			},
			"delete": func(rt *rapid.T) {
				name := nameGen.Draw(rt, "name")
				uid, err := h.Delete(ctx, name)
				want, ok := model[name]
				if !ok {
					var notFound *domain.NotFoundError
					require.ErrorAs(rt, err, &notFound)
					return
				}
				require.NoError(rt, err)
				require.Equal(rt, want, uid)
				delete(model, name)
			},
			"insert": func(rt *rapid.T) {
				name := nameGen.Draw(rt, "name")
				uid := uuid.New()
				require.NoError(rt, h.Insert(ctx, name, uid))
				model[name] = uid
			},
			"list": func(rt *rapid.T) {
				entries, err := h.List(ctx)
				require.NoError(rt, err)
				require.Len(rt, entries, len(model))
				for _, e := range entries {
					require.Equal(rt, model[e.Name], e.UID)
				}
			},
		})
	})
}
