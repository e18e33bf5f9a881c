package shellcache

import (
	"bytes"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
)

// Middleware serves cached shell entries. Only GET requests that are not
// bypassed are touched. Shell and vendor URIs are served from the current
// generation and refreshed in the background; on a miss the handler chain
// runs and a 200 is stored. A navigation request whose handler fails gets
// the cached shell page.
func (c *Cache) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		r := ctx.Request
		if r.Method != http.MethodGet || c.bypass(r) {
			ctx.Next()
			return
		}

		uri := r.URL.RequestURI()
		tracked := c.tracked(uri)
		if !tracked && !isNavigation(r) {
			ctx.Next()
			return
		}
		gen := c.store.Open(c.cfg.Name)

		if entry, ok := gen.Get(uri); tracked && ok {
			writeEntry(ctx.Writer, entry)
			ctx.Abort()
			c.refresh(uri)
			return
		}

		buffered := &bufferedWriter{ResponseWriter: ctx.Writer, status: http.StatusOK}
		ctx.Writer = buffered
		ctx.Next()
		ctx.Writer = buffered.ResponseWriter

		if buffered.status >= http.StatusInternalServerError && isNavigation(r) {
			if shell, ok := gen.Get(c.cfg.ShellPage); ok {
				c.logger.Warn("Serving cached shell for failed navigation",
					"uri", uri, "status", buffered.status)
				writeEntry(ctx.Writer, shell)
				return
			}
		}

		if tracked && buffered.status == http.StatusOK && cacheable(ctx.Writer.Header()) {
			rec := &recorder{header: ctx.Writer.Header(), status: buffered.status}
			rec.body.Write(buffered.body.Bytes())
			gen.Add(uri, rec.entry())
		}

		ctx.Writer.WriteHeader(buffered.status)
		_, _ = ctx.Writer.Write(buffered.body.Bytes())
	}
}

func (c *Cache) tracked(uri string) bool {
	if slices.Contains(c.cfg.Shell, uri) {
		return true
	}
	_, ok := c.upstreamFor(uri)
	return ok
}

func isNavigation(r *http.Request) bool {
	return r.Header.Get("Sec-Fetch-Mode") == "navigate" || strings.Contains(r.Header.Get("Accept"), "text/html")
}

// cacheable refuses responses that set cookies or ask not to be stored.
func cacheable(h http.Header) bool {
	if h.Get("Set-Cookie") != "" {
		return false
	}
	cc := strings.ToLower(h.Get("Cache-Control"))
	return !strings.Contains(cc, "no-store") && !strings.Contains(cc, "private")
}

// bufferedWriter holds the response until the middleware decides what to send.
type bufferedWriter struct {
	gin.ResponseWriter
	body   bytes.Buffer
	status int
	wrote  bool
}

func (w *bufferedWriter) WriteHeader(status int) {
	if w.wrote {
		return
	}
	w.status = status
	w.wrote = true
}

func (w *bufferedWriter) WriteHeaderNow() {}

func (w *bufferedWriter) Write(b []byte) (int, error) {
	w.wrote = true
	return w.body.Write(b)
}

func (w *bufferedWriter) WriteString(s string) (int, error) {
	w.wrote = true
	return w.body.WriteString(s)
}

func (w *bufferedWriter) Status() int {
	return w.status
}

func (w *bufferedWriter) Size() int {
	return w.body.Len()
}

func (w *bufferedWriter) Written() bool {
	return w.wrote
}
