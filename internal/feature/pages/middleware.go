package pages

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"userhub/internal/feature/auth/domain/entity"
)

// SessionResolver resolves the session of the current request.
type SessionResolver interface {
	Session(c *gin.Context) (*entity.AuthSession, error)
}

// Middleware applies the route table to every page navigation.
//
// Speculative loads (prefetch/prerender) of guarded routes are answered with
// 204 and no-store so the decision is made on the real navigation.
// When the session cannot be resolved nothing is rendered.
func Middleware(sessions SessionResolver, routes RouteTable) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		class := routes.Classify(path)

		if class != Public && isSpeculative(c.Request) {
			c.Header("Cache-Control", "no-store")
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		s, err := sessions.Session(c)
		if err != nil {
			slog.Error("navigation guard: session lookup failed", "error", err, "path", path)
			c.Header("Cache-Control", "no-store")
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}

		if target := routes.Redirect(path, s != nil); target != "" {
			slog.Debug("navigation redirected", "path", path, "class", class.String(), "to", target)
			c.Header("Cache-Control", "no-store")
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}
		if class != Public {
			c.Header("Cache-Control", "no-store")
		}
		c.Next()
	}
}

func isSpeculative(r *http.Request) bool {
	for _, h := range []string{"Sec-Purpose", "Purpose", "X-Purpose", "X-Moz"} {
		v := strings.ToLower(r.Header.Get(h))
		if strings.Contains(v, "prefetch") || strings.Contains(v, "prerender") {
			return true
		}
	}
	return false
}
