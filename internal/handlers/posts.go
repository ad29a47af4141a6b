package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/postbook/postbook/internal/events"
	"github.com/postbook/postbook/internal/logging"
	"github.com/postbook/postbook/internal/middleware"
	"github.com/postbook/postbook/internal/models"
	"github.com/postbook/postbook/internal/pagination"
	"github.com/postbook/postbook/internal/repo"
	"github.com/postbook/postbook/internal/search"
	"github.com/postbook/postbook/internal/service"
)

type PostHandler struct {
	Svc      *service.ContentService
	URIs     *pagination.URIService
	Producer *events.Producer
	ES       *elasticsearch.Client
	Index    string
}

type PostResponse struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	UserID string   `json:"userId"`
	Tags   []string `json:"tags"`
}

func postResponse(p *models.Post) PostResponse {
	resp := PostResponse{
		ID:     p.ID.String(),
		Name:   p.Name,
		UserID: p.UserID.String(),
		Tags:   make([]string, 0, len(p.Tags)),
	}
	for _, t := range p.Tags {
		resp.Tags = append(resp.Tags, t.TagName)
	}
	return resp
}

func (h *PostHandler) publish(c echo.Context, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.Topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Warn("kafka_publish_failed", "error", err)
	}
}

func (h *PostHandler) index(c echo.Context, post *models.Post) {
	if h.ES == nil {
		return
	}
	ctx := c.Request().Context()
	if err := search.IndexPost(ctx, h.ES, h.Index, post); err != nil {
		logging.FromContext(ctx).Warn("es_index_failed", "post_id", post.ID, "error", err)
	}
}

func (h *PostHandler) GetAll(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "posts.get_all")

	var filter *repo.PostFilter
	if profile := c.QueryParam("Profile"); profile != "" {
		ownerID, err := uuid.Parse(profile)
		if err != nil {
			l.Warn("get_all_bad_profile", "error", err)
			return c.JSON(http.StatusBadRequest, pagination.NewErrorResponse("Profile must be a user id"))
		}
		filter = &repo.PostFilter{UserID: ownerID}
	}

	pf := pagination.FromQuery(c.QueryParam("pageNumber"), c.QueryParam("pageSize"))

	posts, err := h.Svc.GetPosts(ctx, filter, pf)
	if err != nil {
		l.Error("get_all_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list posts")
	}

	responses := make([]PostResponse, 0, len(posts))
	for i := range posts {
		responses = append(responses, postResponse(&posts[i]))
	}

	return c.JSON(http.StatusOK, pagination.BuildPage(h.URIs, pf, responses))
}

func (h *PostHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "posts.get")

	id, err := uuid.Parse(c.Param("postId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, pagination.NewErrorResponse("postId must be a uuid"))
	}

	post, err := h.Svc.GetPost(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.NoContent(http.StatusNotFound)
		}
		l.Error("get_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get post")
	}

	return c.JSON(http.StatusOK, pagination.Response{Data: postResponse(post)})
}

func (h *PostHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "posts.create")

	principal, ok := middleware.Principal(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
	}

	var req struct {
		Name string   `json:"name"`
		Tags []string `json:"tags"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, pagination.NewErrorResponse("invalid request body"))
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, pagination.NewErrorResponse("post name must not be empty"))
	}

	post, err := h.Svc.CreatePost(ctx, principal, req.Name, req.Tags)
	if err != nil {
		l.Error("create_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create post")
	}

	h.publish(c, post.ID.String(), map[string]any{
		"type":    "post_created",
		"post_id": post.ID,
		"user_id": principal.ID,
	})
	h.index(c, post)

	c.Response().Header().Set(echo.HeaderLocation, h.URIs.GetPostURI(post.ID.String()))
	return c.JSON(http.StatusCreated, pagination.Response{Data: postResponse(post)})
}

func (h *PostHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "posts.update")

	principal, ok := middleware.Principal(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
	}

	id, err := uuid.Parse(c.Param("postId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, pagination.NewErrorResponse("postId must be a uuid"))
	}

	var req struct {
		Name string   `json:"name"`
		Tags []string `json:"tags"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, pagination.NewErrorResponse("invalid request body"))
	}

	post, err := h.Svc.UpdatePost(ctx, principal, id, req.Name, req.Tags)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotOwner):
			return c.JSON(http.StatusBadRequest, pagination.NewErrorResponse("You do not own this post"))
		case errors.Is(err, service.ErrNotFound):
			return c.NoContent(http.StatusNotFound)
		}
		l.Error("update_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update post")
	}

	h.publish(c, post.ID.String(), map[string]any{
		"type":    "post_updated",
		"post_id": post.ID,
		"user_id": principal.ID,
	})
	h.index(c, post)

	return c.JSON(http.StatusOK, pagination.Response{Data: postResponse(post)})
}

func (h *PostHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "posts.delete")

	principal, ok := middleware.Principal(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
	}

	id, err := uuid.Parse(c.Param("postId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, pagination.NewErrorResponse("postId must be a uuid"))
	}

	if err := h.Svc.DeletePost(ctx, principal, id); err != nil {
		switch {
		case errors.Is(err, service.ErrNotOwner):
			return c.JSON(http.StatusBadRequest, pagination.NewErrorResponse("You do not own this post"))
		case errors.Is(err, service.ErrNotFound):
			return c.NoContent(http.StatusNotFound)
		}
		l.Error("delete_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete post")
	}

	h.publish(c, id.String(), map[string]any{
		"type":    "post_deleted",
		"post_id": id,
		"user_id": principal.ID,
	})
	if h.ES != nil {
		if err := search.RemovePost(ctx, h.ES, h.Index, id.String()); err != nil {
			l.Warn("es_remove_failed", "post_id", id, "error", err)
		}
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *PostHandler) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "posts.search")

	q := c.QueryParam("q")
	if q == "" {
		return c.JSON(http.StatusBadRequest, pagination.NewErrorResponse("q must not be empty"))
	}
	if h.ES == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not configured")
	}

	from, size := 0, 20
	if pf := pagination.FromQuery(c.QueryParam("pageNumber"), c.QueryParam("pageSize")); pf.Valid() {
		from, size = pf.Offset()
	}

	total, docs, err := search.Posts(ctx, h.ES, h.Index, q, from, size)
	if err != nil {
		l.Error("search_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}

	return c.JSON(http.StatusOK, echo.Map{"total": total, "posts": docs})
}
