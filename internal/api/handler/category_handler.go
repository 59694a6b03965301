package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mugstore/backoffice/internal/api/metrics"
	"github.com/mugstore/backoffice/internal/core/ports"
)

// CategoryHandler handles HTTP requests for the category tree.
type CategoryHandler struct {
	catalog ports.CatalogService
}

func NewCategoryHandler(catalog ports.CatalogService) *CategoryHandler {
	return &CategoryHandler{catalog: catalog}
}

// List handles GET /products/categories.
//
// @Summary      List categories
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Category
// @Failure      401  {object}  errorResponse
// @Router       /products/categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.catalog.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

// Create handles POST /products/categories. Accepts JSON or multipart form;
// the multipart form may carry an "image" file.
//
// @Summary      Create a category
// @Tags         catalog
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      categoryRequest  true  "Category details"
// @Success      201   {object}  domain.Category
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /products/categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	input, err := bindCategoryInput(c)
	if err != nil {
		return err
	}

	category, err := h.catalog.CreateCategory(c.Request().Context(), actor, input)
	if err != nil {
		return err
	}

	metrics.MutationsTotal.WithLabelValues("Category", "create").Inc()
	return c.JSON(http.StatusCreated, category)
}

// Update handles PUT /products/categories/:id.
//
// @Summary      Update a category
// @Tags         catalog
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Category id"
// @Param        body  body      categoryRequest  true  "Category details"
// @Success      200   {object}  domain.Category
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /products/categories/{id} [put]
func (h *CategoryHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	input, err := bindCategoryInput(c)
	if err != nil {
		return err
	}

	category, err := h.catalog.UpdateCategory(c.Request().Context(), actor, c.Param("id"), input)
	if err != nil {
		return err
	}

	metrics.MutationsTotal.WithLabelValues("Category", "update").Inc()
	return c.JSON(http.StatusOK, category)
}

// Delete handles DELETE /products/categories/:id.
//
// @Summary      Delete a category
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Category id"
// @Success      204  "category deleted"
// @Failure      404  {object}  errorResponse
// @Router       /products/categories/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.catalog.DeleteCategory(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}

	metrics.MutationsTotal.WithLabelValues("Category", "delete").Inc()
	return c.NoContent(http.StatusNoContent)
}

func bindCategoryInput(c echo.Context) (ports.CategoryInput, error) {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return ports.CategoryInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return ports.CategoryInput{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	image, err := formUpload(c, "image")
	if err != nil {
		return ports.CategoryInput{}, err
	}

	return ports.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		ParentID:    req.ParentID,
		IsActive:    req.IsActive,
		SortOrder:   req.SortOrder,
		Image:       image,
	}, nil
}
