package http

import (
	"embed"
	"html/template"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/internal/posts"
	"github.com/goliatone/go-folio/internal/site"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	defaultPostTitle   = "Untitled"
	msgPostNotFound    = "Blog not found."
	msgPostLoadFailed  = "Unable to load this post."
	msgPostsLoadFailed = "Unable to load posts."
	msgProjectNotFound = "Project not found."
)

// Deps are the collaborators the router needs.
type Deps struct {
	Posts   *posts.Service
	Profile site.Profile
	Logger  interfaces.Logger
}

type handlers struct {
	posts   *posts.Service
	profile site.Profile
	logger  interfaces.Logger
}

// NewRouter builds the gin engine with middleware and routes installed.
// The gin mode is process wide and is left to the caller.
func NewRouter(deps Deps) *gin.Engine {
	if deps.Posts == nil {
		panic("http: posts service is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	engine := gin.New()
	engine.SetHTMLTemplate(template.Must(template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")))
	engine.Use(
		requestID(),
		accessLog(logger),
		recovery(logger),
	)

	h := &handlers{posts: deps.Posts, profile: deps.Profile, logger: logger}

	engine.GET("/", h.homePage)
	engine.GET("/blogs", h.listPage)
	engine.GET("/blogs/:slug", h.postPage)
	engine.GET("/projects/:slug", h.projectPage)

	api := engine.Group("/api")
	api.GET("/profile", h.profileJSON)
	api.GET("/posts", h.listJSON)
	api.GET("/posts/:slug", h.postJSON)
	api.GET("/projects/:slug", h.projectJSON)

	engine.GET("/healthz", h.health)
	engine.NoRoute(h.notFoundPage)

	return engine
}

var templateFuncs = template.FuncMap{
	"join": strings.Join,
}
