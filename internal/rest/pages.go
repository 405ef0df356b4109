package rest

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/blogicum/internal/blog"
)

func (h *Handler) Index(c echo.Context) error {
	page, err := h.blog.Index(c.Request().Context(), c.QueryParam("page"))
	if err != nil {
		return h.handlePageError(c, err, 0)
	}

	return h.render(c, http.StatusOK, "index.html", map[string]any{"Page": page})
}

func (h *Handler) CategoryPosts(c echo.Context) error {
	category, page, err := h.blog.CategoryPosts(c.Request().Context(), c.Param("slug"), c.QueryParam("page"))
	if err != nil {
		return h.handlePageError(c, err, 0)
	}

	return h.render(c, http.StatusOK, "category.html", map[string]any{
		"Title":    category.Title,
		"Category": category,
		"Page":     page,
	})
}

func (h *Handler) Profile(c echo.Context) error {
	profile, page, err := h.blog.Profile(c.Request().Context(), c.Param("username"), c.QueryParam("page"))
	if err != nil {
		return h.handlePageError(c, err, 0)
	}

	return h.render(c, http.StatusOK, "profile.html", map[string]any{
		"Title":   profile.Username,
		"Profile": profile,
		"Page":    page,
	})
}

func (h *Handler) PostDetail(c echo.Context) error {
	postID, err := intParam(c, "id")
	if err != nil {
		return h.handlePageError(c, err, 0)
	}

	post, comments, err := h.blog.PostDetail(c.Request().Context(), postID, viewerFrom(c))
	if err != nil {
		return h.handlePageError(c, err, postID)
	}

	return h.render(c, http.StatusOK, "detail.html", map[string]any{
		"Title":    post.Title,
		"Post":     post,
		"Comments": comments,
	})
}

func (h *Handler) CreatePost(c echo.Context) error {
	ctx := c.Request().Context()
	viewer := viewerFrom(c)

	var form blog.PostForm
	if c.Request().Method == http.MethodPost {
		if err := c.Bind(&form); err != nil {
			return echo.ErrBadRequest
		}

		image, err := h.saveImage(c)
		var verr *blog.ValidationError
		if errors.As(err, &verr) {
			return h.renderPostForm(c, 0, form, verr.Fields)
		} else if err != nil {
			return h.handlePageError(c, err, 0)
		}
		form.Image = image

		_, err = h.blog.CreatePost(ctx, viewer, form)
		if errors.As(err, &verr) {
			return h.renderPostForm(c, 0, form, verr.Fields)
		} else if err != nil {
			return h.handlePageError(c, err, 0)
		}

		return c.Redirect(http.StatusFound, profilePath(viewer.Username))
	}

	form.PubDate = time.Now().Format(blog.PubDateLayout)
	form.IsPublished = true
	return h.renderPostForm(c, 0, form, nil)
}

func (h *Handler) EditPost(c echo.Context) error {
	ctx := c.Request().Context()
	postID, err := intParam(c, "id")
	if err != nil {
		return h.handlePageError(c, err, 0)
	}

	post, err := h.blog.PostForEdit(ctx, viewerFrom(c), postID)
	if err != nil {
		return h.handlePageError(c, err, postID)
	}

	if c.Request().Method == http.MethodPost {
		var form blog.PostForm
		if err := c.Bind(&form); err != nil {
			return echo.ErrBadRequest
		}

		// A post keeps its image unless a new one is uploaded.
		form.Image = newPostForm(*post).Image
		image, err := h.saveImage(c)
		var verr *blog.ValidationError
		if errors.As(err, &verr) {
			return h.renderPostForm(c, postID, form, verr.Fields)
		} else if err != nil {
			return h.handlePageError(c, err, postID)
		} else if image != "" {
			form.Image = image
		}

		_, err = h.blog.EditPost(ctx, viewerFrom(c), postID, form)
		if errors.As(err, &verr) {
			return h.renderPostForm(c, postID, form, verr.Fields)
		} else if err != nil {
			return h.handlePageError(c, err, postID)
		}

		return c.Redirect(http.StatusFound, postPath(postID))
	}

	return h.renderPostForm(c, postID, newPostForm(*post), nil)
}

func (h *Handler) DeletePost(c echo.Context) error {
	ctx := c.Request().Context()
	postID, err := intParam(c, "id")
	if err != nil {
		return h.handlePageError(c, err, 0)
	}

	if c.Request().Method == http.MethodPost {
		if err := h.blog.DeletePost(ctx, viewerFrom(c), postID); err != nil {
			return h.handlePageError(c, err, postID)
		}

		return c.Redirect(http.StatusFound, "/")
	}

	post, err := h.blog.PostForEdit(ctx, viewerFrom(c), postID)
	if err != nil {
		return h.handlePageError(c, err, postID)
	}

	return h.render(c, http.StatusOK, "create.html", map[string]any{
		"Title":  "Delete post",
		"PostID": postID,
		"Form":   newPostForm(*post),
		"Errors": map[string]string(nil),
		"Delete": true,
	})
}

func (h *Handler) renderPostForm(c echo.Context, postID int, form blog.PostForm, fieldErrors map[string]string) error {
	categories, err := h.blog.Categories(c.Request().Context())
	if err != nil {
		return h.handlePageError(c, err, postID)
	}

	return h.render(c, http.StatusOK, "create.html", map[string]any{
		"Title":      "Post",
		"PostID":     postID,
		"Form":       form,
		"Errors":     fieldErrors,
		"Categories": categories,
	})
}

// AddComment always returns to the post; an empty comment is dropped.
func (h *Handler) AddComment(c echo.Context) error {
	postID, err := intParam(c, "id")
	if err != nil {
		return h.handlePageError(c, err, 0)
	}

	var form blog.CommentForm
	if err := c.Bind(&form); err != nil {
		return echo.ErrBadRequest
	}

	_, err = h.blog.AddComment(c.Request().Context(), viewerFrom(c), postID, form)
	var verr *blog.ValidationError
	if err != nil && !errors.As(err, &verr) {
		return h.handlePageError(c, err, postID)
	}

	return c.Redirect(http.StatusFound, postPath(postID))
}

func (h *Handler) EditComment(c echo.Context) error {
	return h.commentAction(c, false)
}

func (h *Handler) DeleteComment(c echo.Context) error {
	return h.commentAction(c, true)
}

func (h *Handler) commentAction(c echo.Context, isDelete bool) error {
	ctx := c.Request().Context()
	viewer := viewerFrom(c)

	postID, err := intParam(c, "id")
	if err != nil {
		return h.handlePageError(c, err, 0)
	}
	commentID, err := intParam(c, "comment_id")
	if err != nil {
		return h.handlePageError(c, err, postID)
	}

	data := map[string]any{
		"Title":  "Comment",
		"PostID": postID,
		"Delete": isDelete,
		"Errors": map[string]string(nil),
	}

	if c.Request().Method == http.MethodPost {
		if isDelete {
			err = h.blog.DeleteComment(ctx, viewer, postID, commentID)
		} else {
			var form blog.CommentForm
			if err := c.Bind(&form); err != nil {
				return echo.ErrBadRequest
			}
			_, err = h.blog.EditComment(ctx, viewer, postID, commentID, form)

			var verr *blog.ValidationError
			if errors.As(err, &verr) {
				data["Form"] = form
				data["Errors"] = verr.Fields
				return h.render(c, http.StatusOK, "comment.html", data)
			}
		}
		if err != nil {
			return h.handlePageError(c, err, postID)
		}

		return c.Redirect(http.StatusFound, postPath(postID))
	}

	comment, err := h.blog.CommentForEdit(ctx, viewer, postID, commentID)
	if err != nil {
		return h.handlePageError(c, err, postID)
	}

	data["Form"] = blog.CommentForm{Text: comment.Text}
	return h.render(c, http.StatusOK, "comment.html", data)
}

func (h *Handler) EditProfile(c echo.Context) error {
	viewer := viewerFrom(c)

	form := blog.ProfileForm{
		Username:  viewer.Username,
		FirstName: viewer.FirstName,
		LastName:  viewer.LastName,
		Email:     viewer.Email,
	}

	if c.Request().Method == http.MethodPost {
		form = blog.ProfileForm{}
		if err := c.Bind(&form); err != nil {
			return echo.ErrBadRequest
		}

		user, err := h.blog.EditProfile(c.Request().Context(), viewer, form)
		var verr *blog.ValidationError
		if errors.As(err, &verr) {
			return h.render(c, http.StatusOK, "user.html", map[string]any{"Form": form, "Errors": verr.Fields})
		} else if err != nil {
			return h.handlePageError(c, err, 0)
		}

		return c.Redirect(http.StatusFound, profilePath(user.Username))
	}

	return h.render(c, http.StatusOK, "user.html", map[string]any{"Form": form, "Errors": map[string]string(nil)})
}

func (h *Handler) Registration(c echo.Context) error {
	var form blog.SignupForm
	if c.Request().Method == http.MethodPost {
		if err := c.Bind(&form); err != nil {
			return echo.ErrBadRequest
		}

		_, err := h.blog.Register(c.Request().Context(), form)
		var verr *blog.ValidationError
		switch {
		case errors.As(err, &verr):
			return h.renderRegistration(c, form, verr.Fields)
		case errors.Is(err, blog.ErrUsernameTaken):
			return h.renderRegistration(c, form, map[string]string{"username": err.Error()})
		case err != nil:
			return h.handlePageError(c, err, 0)
		}

		return c.Redirect(http.StatusFound, "/auth/login/")
	}

	return h.renderRegistration(c, form, nil)
}

func (h *Handler) renderRegistration(c echo.Context, form blog.SignupForm, fieldErrors map[string]string) error {
	form.Password = ""
	return h.render(c, http.StatusOK, "registration.html", map[string]any{
		"Title":  "Sign up",
		"Form":   form,
		"Errors": fieldErrors,
	})
}

func (h *Handler) Login(c echo.Context) error {
	next := safeNext(c.QueryParam("next"))

	var form blog.LoginForm
	if c.Request().Method == http.MethodPost {
		if err := c.Bind(&form); err != nil {
			return echo.ErrBadRequest
		}
		next = safeNext(c.FormValue("next"))

		session, err := h.blog.Login(c.Request().Context(), form)
		var verr *blog.ValidationError
		if errors.Is(err, blog.ErrInvalidCredentials) || errors.As(err, &verr) {
			return h.renderLogin(c, form, next, blog.ErrInvalidCredentials.Error())
		} else if err != nil {
			return h.handlePageError(c, err, 0)
		}

		c.SetCookie(&http.Cookie{
			Name:     sessionCookie,
			Value:    session.ID,
			Path:     "/",
			Expires:  session.ExpiresAt,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		return c.Redirect(http.StatusFound, next)
	}

	return h.renderLogin(c, form, next, "")
}

func (h *Handler) renderLogin(c echo.Context, form blog.LoginForm, next, message string) error {
	form.Password = ""
	return h.render(c, http.StatusOK, "login.html", map[string]any{
		"Title": "Log in",
		"Form":  form,
		"Next":  next,
		"Error": message,
	})
}

func (h *Handler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(sessionCookie); err == nil {
		if err := h.blog.Logout(c.Request().Context(), cookie.Value); err != nil {
			return h.handlePageError(c, err, 0)
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	return c.Redirect(http.StatusFound, "/")
}

// safeNext keeps only local redirect targets.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
