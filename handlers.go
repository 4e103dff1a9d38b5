package inkpress

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// handlePosts serves the public blog listing: published posts only, newest
// first, with optional category/tag/search filters from the query string.
func (a *App) handlePosts(c echo.Context) error {
	q := PostQuery{
		Page:         intParam(c, "page", 1),
		PageSize:     intParam(c, "pageSize", 10),
		CategorySlug: c.QueryParam("category"),
		TagSlug:      c.QueryParam("tag"),
		Search:       c.QueryParam("search"),
	}
	page, err := a.Store.ListPublishedPosts(q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// handlePostBySlug serves a single published post with category and tags.
func (a *App) handlePostBySlug(c echo.Context) error {
	post, err := a.Store.GetPostBySlug(c.Param("slug"))
	if err != nil {
		if err == ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "post not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// handlePostComments lists approved comments for a published post.
func (a *App) handlePostComments(c echo.Context) error {
	post, err := a.Store.GetPostBySlug(c.Param("slug"))
	if err != nil {
		if err == ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "post not found")
		}
		return err
	}
	comments, err := a.Store.ListCommentsForPost(post.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comments)
}

type commentPayload struct {
	AuthorName  string `json:"author_name" validate:"required"`
	AuthorEmail string `json:"author_email" validate:"required,email"`
	Content     string `json:"content" validate:"required"`
}

// handleCreateComment accepts a reader comment on a published post. The
// comment stays hidden until an admin approves it.
func (a *App) handleCreateComment(c echo.Context) error {
	post, err := a.Store.GetPostBySlug(c.Param("slug"))
	if err != nil {
		if err == ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "post not found")
		}
		return err
	}
	var p commentPayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&p); err != nil {
		return err
	}
	comment := Comment{
		PostID:      post.ID,
		AuthorName:  p.AuthorName,
		AuthorEmail: p.AuthorEmail,
		Content:     p.Content,
	}
	if err := a.Store.CreateComment(&comment); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, comment)
}

func (a *App) handleCategories(c echo.Context) error {
	categories, err := a.Cache.Categories()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

func (a *App) handleTags(c echo.Context) error {
	tags, err := a.Cache.Tags()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tags)
}

// handleRobots generates robots.txt dynamically from the site URL.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /api/admin/\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

// httpErrorHandler renders every error as a JSON body so API clients never
// see an HTML error page.
func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	message := "internal server error"
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, map[string]string{"error": message})
}

// intParam reads an integer query parameter with a fallback.
func intParam(c echo.Context, name string, fallback int) int {
	v := c.QueryParam(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
