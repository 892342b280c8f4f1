package pages

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"userhub/internal/feature/auth/domain/entity"
	"userhub/internal/feature/auth/guard"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates for gin.Engine.SetHTMLTemplate.
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

type pageData struct {
	Title string
	User  *entity.User
}

// Handler renders the HTML pages. It must run behind Middleware so the
// session has already been resolved.
type Handler struct{}

// NewHandler creates a new page Handler.
func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) render(c *gin.Context, name, title string) {
	data := pageData{Title: title}
	if s := guard.Current(c); s != nil {
		data.User = s.User
	}
	c.HTML(http.StatusOK, name, data)
}

// Home renders /.
func (h *Handler) Home(c *gin.Context) { h.render(c, "home.html", "Home") }

// SignIn renders /sign-in.
func (h *Handler) SignIn(c *gin.Context) { h.render(c, "sign_in.html", "Sign in") }

// SignUp renders /sign-up.
func (h *Handler) SignUp(c *gin.Context) { h.render(c, "sign_up.html", "Sign up") }

// Dashboard renders /dashboard.
func (h *Handler) Dashboard(c *gin.Context) { h.render(c, "dashboard.html", "Dashboard") }

// Profile renders /profile.
func (h *Handler) Profile(c *gin.Context) { h.render(c, "profile.html", "Profile") }

// Register mounts the pages on r behind the navigation middleware.
func (h *Handler) Register(r gin.IRouter, sessions SessionResolver, routes RouteTable) {
	g := r.Group("/", Middleware(sessions, routes))
	g.GET("/", h.Home)
	g.GET("/sign-in", h.SignIn)
	g.GET("/sign-up", h.SignUp)
	g.GET("/dashboard", h.Dashboard)
	g.GET("/profile", h.Profile)
}
