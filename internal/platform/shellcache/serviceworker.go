package shellcache

import (
	"bytes"
	"encoding/json"
	"net/http"
	"slices"
	"text/template"

	"github.com/gin-gonic/gin"
)

var swTemplate = template.Must(template.New("sw.js").Parse(`const CACHE_NAME = {{.Name}};
const SHELL = {{.Shell}};
const BYPASS = {{.Bypass}};

self.addEventListener('install', (event) => {
  event.waitUntil(
    caches.open(CACHE_NAME)
      .then((cache) => cache.addAll(SHELL))
      .then(() => self.skipWaiting())
  );
});

self.addEventListener('activate', (event) => {
  event.waitUntil(
    caches.keys()
      .then((names) => Promise.all(names.filter((n) => n !== CACHE_NAME).map((n) => caches.delete(n))))
      .then(() => self.clients.claim())
  );
});

self.addEventListener('fetch', (event) => {
  const req = event.request;
  if (req.method !== 'GET') return;
  const url = new URL(req.url);
  if (BYPASS.some((t) => url.hostname.includes(t) || url.pathname.includes(t))) return;
  if (!SHELL.includes(url.pathname)) return;

  event.respondWith(
    caches.match(req).then((cached) => {
      const network = fetch(req).then((resp) => {
        if (resp && resp.status === 200) {
          const copy = resp.clone();
          caches.open(CACHE_NAME).then((cache) => cache.put(req, copy));
        }
        return resp;
      }).catch(() => {
        if (req.mode === 'navigate') return caches.match({{.ShellPage}});
        return cached;
      });
      return cached || network;
    })
  );
});
`))

// ScriptData is what sw.js is rendered from. Values are JSON literals.
type ScriptData struct {
	Name      string
	Shell     string
	Bypass    string
	ShellPage string
}

// Script renders the browser service worker mirroring this cache: same
// generation name, shell list and bypass rules.
func (c *Cache) Script() ([]byte, error) {
	shell := slices.Clone(c.cfg.Shell)
	for uri := range c.cfg.Vendor {
		shell = append(shell, uri)
	}
	slices.Sort(shell)

	data := ScriptData{}
	for dst, v := range map[*string]any{
		&data.Name:      c.cfg.Name,
		&data.Shell:     shell,
		&data.Bypass:    c.cfg.BypassTokens,
		&data.ShellPage: c.cfg.ShellPage,
	} {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		*dst = string(b)
	}

	var buf bytes.Buffer
	if err := swTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ScriptHandler serves sw.js from the site root.
func (c *Cache) ScriptHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		body, err := c.Script()
		if err != nil {
			c.logger.Error("Failed to render service worker", "error", err)
			ctx.Status(http.StatusInternalServerError)
			return
		}
		ctx.Header("Service-Worker-Allowed", "/")
		ctx.Header("Cache-Control", "no-cache")
		ctx.Data(http.StatusOK, "application/javascript; charset=utf-8", body)
	}
}
