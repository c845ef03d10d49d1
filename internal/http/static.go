package http

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// serveSPA handles every unmatched route: existing files under the static
// dir are served as-is, anything else gets the SPA entry document so the
// client router can take over. Non-GET requests fall through to a plain 404.
func (h *Handler) serveSPA(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.String(http.StatusNotFound, "not found")
		return
	}

	// path.Clean on a rooted path keeps traversal out of the static dir
	rel := path.Clean("/" + c.Request.URL.Path)
	full := filepath.Join(h.cfg.StaticDir, filepath.FromSlash(rel))

	if info, err := os.Stat(full); err == nil && !info.IsDir() {
		c.File(full)
		return
	}

	c.File(filepath.Join(h.cfg.StaticDir, "index.html"))
}
