package http

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *handlers) homePage(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", gin.H{
		"Title":   h.profile.Hero.Name,
		"Profile": h.profile,
	})
}

func (h *handlers) listPage(c *gin.Context) {
	summaries, err := h.posts.List(c.Request.Context())
	if err != nil {
		h.logger.WithContext(c.Request.Context()).Error("http.posts.list_failed", "error", err)
		h.errorPage(c, http.StatusInternalServerError, msgPostsLoadFailed)
		return
	}
	c.HTML(http.StatusOK, "blogs.html", gin.H{
		"Title":   "Blog",
		"Profile": h.profile,
		"Posts":   summaries,
	})
}

func (h *handlers) postPage(c *gin.Context) {
	ctx := c.Request.Context()
	slug := c.Param("slug")
	result := h.posts.Get(ctx, slug)

	switch {
	case result.IsNotFound():
		h.errorPage(c, http.StatusNotFound, msgPostNotFound)
		return
	case !result.IsFound():
		h.errorPage(c, http.StatusInternalServerError, msgPostLoadFailed)
		return
	}

	body, err := h.posts.Render(ctx, *result.Post)
	if err != nil {
		h.logger.WithContext(ctx).Error("http.posts.render_failed", "slug", slug, "error", err)
		h.errorPage(c, http.StatusInternalServerError, msgPostLoadFailed)
		return
	}

	post := result.Post
	c.HTML(http.StatusOK, "post.html", gin.H{
		"Title":   post.Title(defaultPostTitle),
		"Profile": h.profile,
		"Post":    post,
		"Image":   post.Metadata.Get("image", ""),
		"Date":    post.Metadata.Get("date", ""),
		// goldmark output is trusted; SafeMode controls raw HTML passthrough.
		"Body": template.HTML(body),
	})
}

func (h *handlers) projectPage(c *gin.Context) {
	project, ok := h.profile.Project(c.Param("slug"))
	if !ok {
		h.errorPage(c, http.StatusNotFound, msgProjectNotFound)
		return
	}
	c.HTML(http.StatusOK, "project.html", gin.H{
		"Title":   project.Title,
		"Profile": h.profile,
		"Project": project,
	})
}

func (h *handlers) notFoundPage(c *gin.Context) {
	h.errorPage(c, http.StatusNotFound, "Page not found.")
}

func (h *handlers) errorPage(c *gin.Context, status int, message string) {
	c.HTML(status, "error.html", gin.H{
		"Title":   message,
		"Profile": h.profile,
		"Message": message,
	})
}
