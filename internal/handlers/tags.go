package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/postbook/postbook/internal/events"
	"github.com/postbook/postbook/internal/logging"
	"github.com/postbook/postbook/internal/middleware"
	"github.com/postbook/postbook/internal/models"
	"github.com/postbook/postbook/internal/pagination"
	"github.com/postbook/postbook/internal/repo"
	"github.com/postbook/postbook/internal/service"
)

type TagHandler struct {
	Svc      *service.ContentService
	Producer *events.Producer
}

type TagResponse struct {
	Name string `json:"name"`
}

func tagResponses(tags []models.Tag) []TagResponse {
	out := make([]TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, TagResponse{Name: t.Name})
	}
	return out
}

func (h *TagHandler) publish(c echo.Context, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.Topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Warn("kafka_publish_failed", "error", err)
	}
}

func (h *TagHandler) GetAll(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "tags.get_all")

	tags, err := h.Svc.GetAllTags(ctx)
	if err != nil {
		l.Error("get_all_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list tags")
	}

	return c.JSON(http.StatusOK, tagResponses(tags))
}

func (h *TagHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	tag, err := h.Svc.GetTag(ctx, c.Param("tagName"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.NoContent(http.StatusNotFound)
		}
		logging.FromContext(ctx).Error("get_tag_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get tag")
	}

	return c.JSON(http.StatusOK, pagination.Response{Data: TagResponse{Name: tag.Name}})
}

func (h *TagHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "tags.create")

	principal, ok := middleware.Principal(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
	}

	var req struct {
		TagName string `json:"tagName"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, pagination.NewErrorResponse("invalid request body"))
	}

	tag, err := h.Svc.CreateTag(ctx, principal, req.TagName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTagName):
			return c.JSON(http.StatusBadRequest, pagination.NewErrorResponse(err.Error()))
		case errors.Is(err, repo.ErrTagExists):
			return c.JSON(http.StatusBadRequest, pagination.NewErrorResponse("Unable to create tag"))
		}
		l.Error("create_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create tag")
	}

	h.publish(c, tag.Name, map[string]any{
		"type":    "tag_created",
		"tag":     tag.Name,
		"user_id": principal.ID,
	})

	c.Response().Header().Set(echo.HeaderLocation, "/api/v1/tags/"+tag.Name)
	return c.JSON(http.StatusCreated, pagination.Response{Data: TagResponse{Name: tag.Name}})
}

func (h *TagHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "tags.delete")

	name := c.Param("tagName")
	if err := h.Svc.DeleteTag(ctx, name); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.NoContent(http.StatusNotFound)
		}
		l.Error("delete_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete tag")
	}

	h.publish(c, name, map[string]any{
		"type": "tag_deleted",
		"tag":  name,
	})

	return c.NoContent(http.StatusNoContent)
}
