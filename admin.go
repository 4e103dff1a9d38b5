package inkpress

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type postPayload struct {
	Title         string  `json:"title" validate:"required"`
	Slug          string  `json:"slug"`
	Excerpt       string  `json:"excerpt"`
	Content       string  `json:"content"`
	FeaturedImage string  `json:"featured_image"`
	CategoryID    *int64  `json:"category_id"`
	Status        string  `json:"status" validate:"omitempty,oneof=draft published"`
	TagIDs        []int64 `json:"tag_ids"`
}

func (a *App) handleAdminPosts(c echo.Context) error {
	q := PostQuery{
		Page:     intParam(c, "page", 1),
		PageSize: intParam(c, "pageSize", 10),
		Status:   c.QueryParam("status"),
		Search:   c.QueryParam("search"),
	}
	page, err := a.Store.ListAdminPosts(q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

func (a *App) handleAdminPostGet(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	post, err := a.Store.GetPostAny(id)
	if err != nil {
		if err == ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "post not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, post)
}

func (a *App) handleAdminPostCreate(c echo.Context) error {
	var p postPayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&p); err != nil {
		return err
	}
	post := Post{
		Title:         p.Title,
		Slug:          p.Slug,
		Excerpt:       p.Excerpt,
		Content:       p.Content,
		FeaturedImage: p.FeaturedImage,
		CategoryID:    p.CategoryID,
		Status:        p.Status,
		AuthorID:      a.currentUser(c).ID,
	}
	if err := a.Store.CreatePost(&post, p.TagIDs); err != nil {
		return err
	}
	a.Cache.Invalidate()
	created, err := a.Store.GetPostAny(post.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (a *App) handleAdminPostUpdate(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	existing, err := a.Store.GetPostAny(id)
	if err != nil {
		if err == ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "post not found")
		}
		return err
	}
	var p postPayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&p); err != nil {
		return err
	}
	existing.Title = p.Title
	existing.Slug = p.Slug
	existing.Excerpt = p.Excerpt
	existing.Content = p.Content
	existing.FeaturedImage = p.FeaturedImage
	existing.CategoryID = p.CategoryID
	if p.Status != "" {
		existing.Status = p.Status
	}
	if err := a.Store.UpdatePost(&existing, p.TagIDs); err != nil {
		return err
	}
	a.Cache.Invalidate()
	updated, err := a.Store.GetPostAny(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func (a *App) handleAdminPostDelete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := a.Store.DeletePost(id); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return c.NoContent(http.StatusNoContent)
}

type categoryPayload struct {
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

func (a *App) handleAdminCategories(c echo.Context) error {
	categories, err := a.Store.ListCategories()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

func (a *App) handleAdminCategoryCreate(c echo.Context) error {
	var p categoryPayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&p); err != nil {
		return err
	}
	cat := Category{Name: p.Name, Slug: p.Slug, Description: p.Description}
	if err := a.Store.CreateCategory(&cat); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return c.JSON(http.StatusCreated, cat)
}

func (a *App) handleAdminCategoryUpdate(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	cat, err := a.Store.GetCategory(id)
	if err != nil {
		if err == ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "category not found")
		}
		return err
	}
	var p categoryPayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&p); err != nil {
		return err
	}
	cat.Name = p.Name
	cat.Slug = p.Slug
	cat.Description = p.Description
	if err := a.Store.UpdateCategory(&cat); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return c.JSON(http.StatusOK, cat)
}

func (a *App) handleAdminCategoryDelete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := a.Store.DeleteCategory(id); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return c.NoContent(http.StatusNoContent)
}

type tagPayload struct {
	Name string `json:"name" validate:"required"`
	Slug string `json:"slug"`
}

func (a *App) handleAdminTags(c echo.Context) error {
	tags, err := a.Store.ListTags()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tags)
}

func (a *App) handleAdminTagCreate(c echo.Context) error {
	var p tagPayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&p); err != nil {
		return err
	}
	tag := Tag{Name: p.Name, Slug: p.Slug}
	if err := a.Store.CreateTag(&tag); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return c.JSON(http.StatusCreated, tag)
}

func (a *App) handleAdminTagUpdate(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var p tagPayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&p); err != nil {
		return err
	}
	tag := Tag{ID: id, Name: p.Name, Slug: p.Slug}
	if err := a.Store.UpdateTag(&tag); err != nil {
		if err == ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "tag not found")
		}
		return err
	}
	a.Cache.Invalidate()
	return c.JSON(http.StatusOK, tag)
}

func (a *App) handleAdminTagDelete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := a.Store.DeleteTag(id); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return c.NoContent(http.StatusNoContent)
}

func (a *App) handleAdminComments(c echo.Context) error {
	var approvedFilter *bool
	switch c.QueryParam("approved") {
	case "true":
		v := true
		approvedFilter = &v
	case "false":
		v := false
		approvedFilter = &v
	}
	page, err := a.Store.ListAdminComments(intParam(c, "page", 1), intParam(c, "pageSize", 10), approvedFilter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

func (a *App) handleAdminCommentApprove(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := a.Store.ApproveComment(id); err != nil {
		if err == ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "comment not found")
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (a *App) handleAdminCommentDelete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := a.Store.DeleteComment(id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type userPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password"`
	Email    string `json:"email" validate:"omitempty,email"`
	FullName string `json:"full_name"`
	IsAdmin  bool   `json:"is_admin"`
}

func (a *App) handleAdminUsers(c echo.Context) error {
	users, err := a.Store.ListUsers()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

func (a *App) handleAdminUserCreate(c echo.Context) error {
	var p userPayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&p); err != nil {
		return err
	}
	if p.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "password is required")
	}
	u := User{Username: p.Username, Email: p.Email, FullName: p.FullName, IsAdmin: p.IsAdmin}
	if err := a.Store.CreateUser(&u, p.Password); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, u)
}

func (a *App) handleAdminUserUpdate(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	u, err := a.Store.GetUser(id)
	if err != nil {
		if err == ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return err
	}
	var p userPayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&p); err != nil {
		return err
	}
	u.Username = p.Username
	u.Email = p.Email
	u.FullName = p.FullName
	u.IsAdmin = p.IsAdmin
	if err := a.Store.UpdateUser(&u, p.Password); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

func (a *App) handleAdminUserDelete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if u := a.currentUser(c); u != nil && u.ID == id {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot delete the signed-in account")
	}
	if err := a.Store.DeleteUser(id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (a *App) handleAdminStats(c echo.Context) error {
	stats, err := a.Store.DashboardStats()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// idParam parses the :id path parameter.
func idParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
