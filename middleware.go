package sesskit

import "net/http"

// Middleware injects a lazy session handle into every request's context and
// emits the pending Set-Cookie header on the response — but only when the
// handler actually accessed the session. The options are forwarded to
// Session construction.
//
//	mux.Handle("/", sesskit.Middleware(sesskit.WithStoreType("memory"))(handler))
func Middleware(opts ...Option) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lz := NewLazy(r.Header.Get("Cookie"), opts...)
			ctx := WithLazy(r.Context(), lz)

			sw := &sessionWriter{ResponseWriter: w, lazy: lz}
			next.ServeHTTP(sw, r.WithContext(ctx))

			// Handlers that never write still get their cookie attached
			// before net/http sends the implicit 200.
			sw.stageCookie()
		})
	}
}

// sessionWriter attaches the pending session cookie right before the
// response headers are committed.
type sessionWriter struct {
	http.ResponseWriter
	lazy        *Lazy
	staged      bool
	wroteHeader bool
}

func (w *sessionWriter) stageCookie() {
	if w.staged {
		return
	}
	w.staged = true
	if c, ok := w.lazy.CookieToSend(); ok {
		w.Header().Add("Set-Cookie", c)
	}
}

func (w *sessionWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.stageCookie()
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *sessionWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}
