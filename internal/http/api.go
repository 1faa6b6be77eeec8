package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-folio/internal/posts"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type postResponse struct {
	Slug     string            `json:"slug"`
	Title    string            `json:"title"`
	Metadata posts.FrontMatter `json:"metadata"`
	Body     string            `json:"body"`
	HTML     string            `json:"html"`
}

func (h *handlers) profileJSON(c *gin.Context) {
	c.JSON(http.StatusOK, h.profile)
}

func (h *handlers) projectJSON(c *gin.Context) {
	project, ok := h.profile.Project(c.Param("slug"))
	if !ok {
		c.JSON(http.StatusNotFound, errorResponse{Error: "not_found", Message: msgProjectNotFound})
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *handlers) listJSON(c *gin.Context) {
	summaries, err := h.posts.List(c.Request.Context())
	if err != nil {
		h.logger.WithContext(c.Request.Context()).Error("http.posts.list_failed", "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "load_error", Message: msgPostsLoadFailed})
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": summaries})
}

func (h *handlers) postJSON(c *gin.Context) {
	ctx := c.Request.Context()
	result := h.posts.Get(ctx, c.Param("slug"))

	status, payload := resultResponse(result)
	if status != http.StatusOK {
		c.JSON(status, payload)
		return
	}

	post := result.Post
	html, err := h.posts.Render(ctx, *post)
	if err != nil {
		h.logger.WithContext(ctx).Error("http.posts.render_failed", "slug", post.ID, "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "load_error", Message: msgPostLoadFailed})
		return
	}
	c.JSON(http.StatusOK, postResponse{
		Slug:     post.ID,
		Title:    post.Title(defaultPostTitle),
		Metadata: post.Metadata,
		Body:     post.Body,
		HTML:     string(html),
	})
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// resultResponse maps a non-Found result to its status and error payload.
func resultResponse(result posts.Result) (int, errorResponse) {
	switch {
	case result.IsFound():
		return http.StatusOK, errorResponse{}
	case result.IsNotFound():
		return http.StatusNotFound, errorResponse{Error: "not_found", Message: msgPostNotFound}
	default:
		return http.StatusInternalServerError, errorResponse{Error: "load_error", Message: msgPostLoadFailed}
	}
}
