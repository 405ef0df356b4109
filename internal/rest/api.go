package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/blogicum/internal/blog"
)

// APIPosts handles GET /api/v1/posts
// @Summary List posts
// @Description Returns a page of published posts in published categories, newest first, with comment counts
// @Tags posts
// @Produce json
// @Param page query string false "Page number (default: 1)"
// @Success 200 {object} rest.PostPage
// @Failure 400,404,500 {object} map[string]string
// @Router /api/v1/posts [get]
func (h *Handler) APIPosts(c echo.Context) error {
	var req ListRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request parameters")
	}

	page, err := h.blog.Index(c.Request().Context(), req.Page)
	if err != nil {
		return h.handleAPIError(c, err)
	}

	return c.JSON(http.StatusOK, NewPostPage(page))
}

// APIPost handles GET /api/v1/posts/:id
// @Summary Get post by ID
// @Description Returns a post with its comments. Unpublished posts are visible to their author only
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} rest.PostDetail
// @Failure 404,500 {object} map[string]string
// @Router /api/v1/posts/{id} [get]
func (h *Handler) APIPost(c echo.Context) error {
	postID, err := intParam(c, "id")
	if err != nil {
		return h.handleAPIError(c, err)
	}

	post, comments, err := h.blog.PostDetail(c.Request().Context(), postID, viewerFrom(c))
	if err != nil {
		return h.handleAPIError(c, err)
	}

	return c.JSON(http.StatusOK, PostDetail{
		Post:     NewPost(*post),
		Comments: blog.Map(comments, NewComment),
	})
}

// APICategories handles GET /api/v1/categories
// @Summary List categories
// @Description Returns published categories ordered by title
// @Tags categories
// @Produce json
// @Success 200 {array} rest.Category
// @Failure 500 {object} map[string]string
// @Router /api/v1/categories [get]
func (h *Handler) APICategories(c echo.Context) error {
	categories, err := h.blog.Categories(c.Request().Context())
	if err != nil {
		return h.handleAPIError(c, err)
	}

	return c.JSON(http.StatusOK, blog.Map(categories, NewCategory))
}

// APICategoryPosts handles GET /api/v1/categories/:slug/posts
// @Summary List posts of a category
// @Tags categories
// @Produce json
// @Param slug path string true "Category slug"
// @Param page query string false "Page number (default: 1)"
// @Success 200 {object} rest.PostPage
// @Failure 400,404,500 {object} map[string]string
// @Router /api/v1/categories/{slug}/posts [get]
func (h *Handler) APICategoryPosts(c echo.Context) error {
	var req ListRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request parameters")
	}

	_, page, err := h.blog.CategoryPosts(c.Request().Context(), c.Param("slug"), req.Page)
	if err != nil {
		return h.handleAPIError(c, err)
	}

	return c.JSON(http.StatusOK, NewPostPage(page))
}

// APIProfilePosts handles GET /api/v1/profile/:username/posts
// @Summary List posts of a user
// @Description Returns every post of the user, including unpublished and scheduled ones
// @Tags profile
// @Produce json
// @Param username path string true "Username"
// @Param page query string false "Page number (default: 1)"
// @Success 200 {object} rest.PostPage
// @Failure 400,404,500 {object} map[string]string
// @Router /api/v1/profile/{username}/posts [get]
func (h *Handler) APIProfilePosts(c echo.Context) error {
	var req ListRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request parameters")
	}

	_, page, err := h.blog.Profile(c.Request().Context(), c.Param("username"), req.Page)
	if err != nil {
		return h.handleAPIError(c, err)
	}

	return c.JSON(http.StatusOK, NewPostPage(page))
}
