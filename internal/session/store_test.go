package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStores(t *testing.T) map[string]Store {
	t.Helper()
	sqlite, err := OpenSQLite(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Store{
		"sqlite": sqlite,
		"memory": NewMemoryStore(),
	}
}

func TestStore_RoundTrip(t *testing.T) {
	for name, st := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := st.Get(ctx, KeyToken)
			require.ErrorIs(t, err, ErrKeyNotFound)

			require.NoError(t, st.Set(ctx, KeyToken, "tok-1"))
			v, err := st.Get(ctx, KeyToken)
			require.NoError(t, err)
			assert.Equal(t, "tok-1", v)

			// Overwrite, not duplicate.
			require.NoError(t, st.Set(ctx, KeyToken, "tok-2"))
			v, err = st.Get(ctx, KeyToken)
			require.NoError(t, err)
			assert.Equal(t, "tok-2", v)

			require.NoError(t, st.Delete(ctx, KeyToken))
			_, err = st.Get(ctx, KeyToken)
			require.ErrorIs(t, err, ErrKeyNotFound)
		})
	}
}

func TestStore_SessionLifecycle(t *testing.T) {
	for name, st := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			sess := Session{
				Token:   "tok-1",
				UserID:  "u-1",
				Role:    "customer",
				Name:    "Jo",
				Address: "12 High St",
				Email:   "jo@example.com",
			}
			require.NoError(t, Save(ctx, st, sess))

			got, err := Load(ctx, st)
			require.NoError(t, err)
			assert.Equal(t, sess, got)

			// Logout is a bulk clear.
			require.NoError(t, st.Clear(ctx))
			got, err = Load(ctx, st)
			require.NoError(t, err)
			assert.Equal(t, Session{}, got)
		})
	}
}

func TestTokenSource(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	ts := TokenSource{Store: st}

	// Empty store means empty token, not an error: the API client turns
	// that into its not-authenticated failure.
	tok, err := ts.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, st.Set(ctx, KeyToken, "tok-1"))
	tok, err = ts.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)
}
