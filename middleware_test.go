package sesskit_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sesskit/sesskit"
	"github.com/sesskit/sesskit/store"
)

func TestMiddleware_UntouchedSession(t *testing.T) {
	t.Parallel()

	handler := sesskit.Middleware(sesskit.WithStoreType("memory"))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := sesskit.FromContext(r.Context())
			assert.True(t, ok)
			w.WriteHeader(http.StatusNoContent)
		}),
	)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Header().Values("Set-Cookie"))
}

func TestMiddleware_NewSessionSetsCookie(t *testing.T) {
	t.Parallel()

	shared := store.NewMemoryStore(time.Hour)

	var sessionID string
	handler := sesskit.Middleware(sesskit.WithStore(shared))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := sesskit.MustFromContext(r.Context()).Session(r.Context())
			require.NoError(t, err)
			sess.Set("user", "alice")
			require.NoError(t, sess.Save(r.Context()))
			sessionID = sess.ID()
			_, _ = w.Write([]byte("ok"))
		}),
	)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := w.Header().Values("Set-Cookie")
	require.Len(t, cookies, 1)
	assert.Contains(t, cookies[0], sessionID)
}

func TestMiddleware_ExistingSessionRoundTrip(t *testing.T) {
	t.Parallel()

	shared := store.NewMemoryStore(time.Hour)
	mw := sesskit.Middleware(sesskit.WithStore(shared))

	var firstID string
	first := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := sesskit.MustFromContext(r.Context()).Session(r.Context())
		require.NoError(t, err)
		sess.Set("user", "alice")
		require.NoError(t, sess.Save(r.Context()))
		firstID = sess.ID()
	}))

	w1 := httptest.NewRecorder()
	first.ServeHTTP(w1, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Len(t, w1.Header().Values("Set-Cookie"), 1)

	second := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := sesskit.MustFromContext(r.Context()).Session(r.Context())
		require.NoError(t, err)
		assert.False(t, sess.IsNew())
		assert.Equal(t, firstID, sess.ID())
		assert.Equal(t, "alice", sess.GetOr("user", nil))
		require.NoError(t, sess.Save(r.Context()))
	}))

	r2 := httptest.NewRequest(http.MethodGet, "/", nil)
	r2.Header.Set("Cookie", "sid="+firstID)
	w2 := httptest.NewRecorder()
	second.ServeHTTP(w2, r2)

	// Nothing changed for the returning client: no outbound cookie.
	assert.Empty(t, w2.Header().Values("Set-Cookie"))
}

func TestMiddleware_CookiePrecedesBody(t *testing.T) {
	t.Parallel()

	shared := store.NewMemoryStore(time.Hour)
	handler := sesskit.Middleware(sesskit.WithStore(shared))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := sesskit.MustFromContext(r.Context()).Session(r.Context())
			require.NoError(t, err)
			require.NoError(t, sess.Save(r.Context()))
			// Body write commits the headers; the cookie must already be there.
			_, _ = w.Write([]byte("payload"))
		}),
	)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "payload", w.Body.String())
	assert.Len(t, w.Header().Values("Set-Cookie"), 1)
}

func TestMustFromContext_PanicsWithoutMiddleware(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Panics(t, func() {
		sesskit.MustFromContext(r.Context())
	})
}
