package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mugstore/backoffice/internal/api/metrics"
	"github.com/mugstore/backoffice/internal/core/ports"
)

// TagHandler handles HTTP requests for product tags.
type TagHandler struct {
	catalog ports.CatalogService
}

func NewTagHandler(catalog ports.CatalogService) *TagHandler {
	return &TagHandler{catalog: catalog}
}

// List handles GET /products/tags.
//
// @Summary      List tags
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Tag
// @Failure      401  {object}  errorResponse
// @Router       /products/tags [get]
func (h *TagHandler) List(c echo.Context) error {
	tags, err := h.catalog.ListTags(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tags)
}

// Create handles POST /products/tags.
//
// @Summary      Create a tag
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      tagRequest  true  "Tag details"
// @Success      201   {object}  domain.Tag
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /products/tags [post]
func (h *TagHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req tagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tag, err := h.catalog.CreateTag(c.Request().Context(), actor, ports.TagInput{Name: req.Name, Color: req.Color})
	if err != nil {
		return err
	}

	metrics.MutationsTotal.WithLabelValues("Tag", "create").Inc()
	return c.JSON(http.StatusCreated, tag)
}

// Update handles PUT /products/tags/:id.
//
// @Summary      Update a tag
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string      true  "Tag id"
// @Param        body  body      tagRequest  true  "Tag details"
// @Success      200   {object}  domain.Tag
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /products/tags/{id} [put]
func (h *TagHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req tagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tag, err := h.catalog.UpdateTag(c.Request().Context(), actor, c.Param("id"), ports.TagInput{Name: req.Name, Color: req.Color})
	if err != nil {
		return err
	}

	metrics.MutationsTotal.WithLabelValues("Tag", "update").Inc()
	return c.JSON(http.StatusOK, tag)
}

// Delete handles DELETE /products/tags/:id.
//
// @Summary      Delete a tag
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Tag id"
// @Success      204  "tag deleted"
// @Failure      404  {object}  errorResponse
// @Router       /products/tags/{id} [delete]
func (h *TagHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.catalog.DeleteTag(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}

	metrics.MutationsTotal.WithLabelValues("Tag", "delete").Inc()
	return c.NoContent(http.StatusNoContent)
}
