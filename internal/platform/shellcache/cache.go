package shellcache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

// internalHeader marks requests issued by the cache itself; the middleware
// lets them through to the origin.
const internalHeader = "X-Shell-Cache"

// DefaultBypassTokens are never intercepted: the hosted store, the workflow
// host, its webhooks and the JSON API.
var DefaultBypassTokens = []string{"supabase", "n8n", "webhook", "/api/"}

// Config describes one cache generation and what goes into it.
type Config struct {
	// Name of the current generation; Activate deletes all others.
	Name string
	// Shell lists local request URIs stored on Install, e.g. "/", "/static/css/app.css".
	Shell []string
	// Vendor maps local URIs under /vendor/ to the upstream URL they mirror.
	// These are stored on Install.
	Vendor map[string]string
	// VendorPrefixes maps local path prefixes to upstream base URLs, for
	// assets referenced from vendored stylesheets (web fonts).
	VendorPrefixes map[string]string
	// BypassTokens: a request whose host or path contains one is never intercepted.
	BypassTokens []string
	// ShellPage is served when a navigation request fails.
	ShellPage string
	// PrivateCookie marks requests that carry per-user state; they are never cached.
	PrivateCookie string
}

// Cache serves and refreshes the shell.
type Cache struct {
	cfg    Config
	store  *Store
	client *http.Client
	logger *slog.Logger

	mu     sync.RWMutex
	origin http.Handler

	inflight sync.Map
	wg       sync.WaitGroup
}

// New creates a cache over store. client fetches vendor assets upstream.
func New(cfg Config, store *Store, client *http.Client, logger *slog.Logger) *Cache {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.BypassTokens == nil {
		cfg.BypassTokens = DefaultBypassTokens
	}
	if cfg.ShellPage == "" {
		cfg.ShellPage = "/"
	}
	return &Cache{cfg: cfg, store: store, client: client, logger: logger.With(slog.String("cache", cfg.Name))}
}

// Config returns the cache configuration.
func (c *Cache) Config() Config {
	return c.cfg
}

// SetOrigin sets the handler that produces local shell responses,
// normally the router the middleware is installed on.
func (c *Cache) SetOrigin(h http.Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.origin = h
}

func (c *Cache) getOrigin() http.Handler {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.origin
}

// Install pre-populates the current generation. Local shell entries must all
// succeed; vendor assets are best effort since the upstream may be unreachable.
func (c *Cache) Install(ctx context.Context) error {
	gen := c.store.Open(c.cfg.Name)

	var errs []error
	for _, uri := range c.cfg.Shell {
		entry, err := c.fetch(ctx, uri)
		if err != nil {
			errs = append(errs, fmt.Errorf("shell %s: %w", uri, err))
			continue
		}
		gen.Add(uri, entry)
	}
	for uri := range c.cfg.Vendor {
		entry, err := c.fetch(ctx, uri)
		if err != nil {
			c.logger.Warn("Vendor asset not cached", slog.String("uri", uri), slog.String("error", err.Error()))
			continue
		}
		gen.Add(uri, entry)
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("shell cache install failed: %w", err)
	}
	c.logger.Info("Shell cache installed", slog.Int("entries", gen.Len()))
	return nil
}

// Activate deletes every generation except the current one and returns the
// deleted names.
func (c *Cache) Activate() []string {
	var deleted []string
	for _, name := range c.store.Names() {
		if name == c.cfg.Name {
			continue
		}
		if c.store.Delete(name) {
			c.logger.Info("Deleted old shell cache", slog.String("name", name))
			deleted = append(deleted, name)
		}
	}
	return deleted
}

// Wait blocks until background refreshes have finished.
func (c *Cache) Wait() {
	c.wg.Wait()
}

// fetch produces a fresh 200 response for uri, from upstream for vendor
// assets and from the origin handler otherwise.
func (c *Cache) fetch(ctx context.Context, uri string) (Entry, error) {
	if upstream, ok := c.upstreamFor(uri); ok {
		return c.fetchUpstream(ctx, upstream)
	}

	origin := c.getOrigin()
	if origin == nil {
		return Entry{}, errors.New("no origin handler")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return Entry{}, err
	}
	req.Header.Set(internalHeader, "fetch")
	req.Header.Set("Accept", "text/html,*/*")

	rec := newRecorder()
	origin.ServeHTTP(rec, req)
	if rec.status != http.StatusOK {
		return Entry{}, fmt.Errorf("origin returned status %d", rec.status)
	}
	return rec.entry(), nil
}

func (c *Cache) fetchUpstream(ctx context.Context, url string) (Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Entry{}, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return Entry{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Entry{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return Entry{}, fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}

	header := make(http.Header)
	for _, key := range []string{"Content-Type", "Last-Modified", "ETag"} {
		if v := resp.Header.Get(key); v != "" {
			header.Set(key, v)
		}
	}
	return Entry{Status: http.StatusOK, Header: header, Body: body, StoredAt: time.Now()}, nil
}

// refresh re-fetches uri in the background and replaces the stored entry on
// success. Concurrent refreshes of one URI collapse into one.
func (c *Cache) refresh(uri string) {
	if _, busy := c.inflight.LoadOrStore(uri, struct{}{}); busy {
		return
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer c.inflight.Delete(uri)

		entry, err := c.fetch(context.Background(), uri)
		if err != nil {
			c.logger.Debug("Background refresh failed", slog.String("uri", uri), slog.String("error", err.Error()))
			return
		}
		c.store.Open(c.cfg.Name).Add(uri, entry)
	}()
}

// VendorHandler proxies /vendor/... requests to their upstream URL.
func (c *Cache) VendorHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upstream, ok := c.upstreamFor(r.URL.RequestURI())
		if !ok {
			http.NotFound(w, r)
			return
		}
		entry, err := c.fetchUpstream(r.Context(), upstream)
		if err != nil {
			c.logger.Warn("Vendor fetch failed", slog.String("uri", r.URL.RequestURI()), slog.String("error", err.Error()))
			http.Error(w, "upstream unavailable", http.StatusBadGateway)
			return
		}
		writeEntry(w, entry)
	})
}

// upstreamFor resolves a local vendor URI: exact entries first, then the
// longest matching prefix.
func (c *Cache) upstreamFor(uri string) (string, bool) {
	if upstream, ok := c.cfg.Vendor[uri]; ok {
		return upstream, true
	}
	best := ""
	for prefix := range c.cfg.VendorPrefixes {
		if strings.HasPrefix(uri, prefix) && len(prefix) > len(best) {
			best = prefix
		}
	}
	if best == "" {
		return "", false
	}
	return c.cfg.VendorPrefixes[best] + strings.TrimPrefix(uri, best), true
}

func (c *Cache) bypass(r *http.Request) bool {
	if r.Header.Get(internalHeader) != "" {
		return true
	}
	host := strings.ToLower(r.Host)
	path := strings.ToLower(r.URL.Path)
	for _, token := range c.cfg.BypassTokens {
		if strings.Contains(host, token) || strings.Contains(path, token) {
			return true
		}
	}
	if c.cfg.PrivateCookie != "" {
		if _, err := r.Cookie(c.cfg.PrivateCookie); err == nil {
			return true
		}
	}
	return r.Header.Get("Authorization") != ""
}

func writeEntry(w http.ResponseWriter, entry Entry) {
	for key, values := range entry.Header {
		w.Header()[key] = append([]string(nil), values...)
	}
	w.WriteHeader(entry.Status)
	_, _ = w.Write(entry.Body)
}

// recorder is a minimal in-memory http.ResponseWriter.
type recorder struct {
	header http.Header
	body   bytes.Buffer
	status int
}

func newRecorder() *recorder {
	return &recorder{header: make(http.Header), status: http.StatusOK}
}

func (r *recorder) Header() http.Header         { return r.header }
func (r *recorder) Write(b []byte) (int, error) { return r.body.Write(b) }
func (r *recorder) WriteHeader(status int)      { r.status = status }

func (r *recorder) entry() Entry {
	header := make(http.Header)
	for _, key := range []string{"Content-Type", "Last-Modified", "ETag"} {
		if v := r.header.Get(key); v != "" {
			header.Set(key, v)
		}
	}
	return Entry{Status: r.status, Header: header, Body: bytes.Clone(r.body.Bytes()), StoredAt: time.Now()}
}
