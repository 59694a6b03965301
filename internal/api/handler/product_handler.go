package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mugstore/backoffice/internal/api/metrics"
	"github.com/mugstore/backoffice/internal/core/domain"
	"github.com/mugstore/backoffice/internal/core/ports"
)

// ProductHandler handles HTTP requests for products, their variants and
// gallery, CSV export and bulk upload.
type ProductHandler struct {
	catalog  ports.CatalogService
	exporter ports.ExportService
	queue    ports.RowQueue
}

func NewProductHandler(catalog ports.CatalogService, exporter ports.ExportService, queue ports.RowQueue) *ProductHandler {
	return &ProductHandler{catalog: catalog, exporter: exporter, queue: queue}
}

// List handles GET /products.
//
// @Summary      List products
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        page         query     int     false  "Page number (1-based)"
// @Param        search       query     string  false  "Substring match on name or SKU"
// @Param        status       query     string  false  "Filter by status"
// @Param        category_id  query     string  false  "Filter by category"
// @Success      200          {object}  productListResponse
// @Failure      401          {object}  errorResponse
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))

	result, err := h.catalog.ListProducts(c.Request().Context(), ports.ListProductsFilter{
		Search:     c.QueryParam("search"),
		Status:     domain.ProductStatus(c.QueryParam("status")),
		CategoryID: c.QueryParam("category_id"),
		Page:       page,
	})
	if err != nil {
		return err
	}

	items := make([]productResponse, 0, len(result.Items))
	for _, p := range result.Items {
		items = append(items, toProductResponse(p))
	}
	return c.JSON(http.StatusOK, productListResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// Get handles GET /products/:id, returning the product with its gallery and
// variants.
//
// @Summary      Get a product
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  productDetailResponse
// @Failure      404  {object}  errorResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	detail, err := h.catalog.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductDetailResponse(detail))
}

// Create handles POST /products. Accepts JSON or multipart form; the
// multipart form may carry a "featured_image" file.
//
// @Summary      Create a product
// @Tags         catalog
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product details"
// @Success      201   {object}  productResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	input, err := bindProductInput(c)
	if err != nil {
		return err
	}

	product, err := h.catalog.CreateProduct(c.Request().Context(), actor, input)
	if err != nil {
		return err
	}

	metrics.MutationsTotal.WithLabelValues("Product", "create").Inc()
	return c.JSON(http.StatusCreated, toProductResponse(product))
}

// Update handles PUT /products/:id.
//
// @Summary      Update a product
// @Tags         catalog
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Product id"
// @Param        body  body      productRequest  true  "Product details"
// @Success      200   {object}  productResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	input, err := bindProductInput(c)
	if err != nil {
		return err
	}

	product, err := h.catalog.UpdateProduct(c.Request().Context(), actor, c.Param("id"), input)
	if err != nil {
		return err
	}

	metrics.MutationsTotal.WithLabelValues("Product", "update").Inc()
	return c.JSON(http.StatusOK, toProductResponse(product))
}

// Delete handles DELETE /products/:id. Gallery images and variants are
// removed with the product.
//
// @Summary      Delete a product
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Product id"
// @Success      204  "product deleted"
// @Failure      404  {object}  errorResponse
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.catalog.DeleteProduct(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}

	metrics.MutationsTotal.WithLabelValues("Product", "delete").Inc()
	return c.NoContent(http.StatusNoContent)
}

// AddVariant handles POST /products/:id/variants.
//
// @Summary      Add a product variant
// @Tags         catalog
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Product id"
// @Param        body  body      variantRequest  true  "Variant details"
// @Success      201   {object}  domain.ProductVariant
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /products/{id}/variants [post]
func (h *ProductHandler) AddVariant(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	input, err := bindVariantInput(c)
	if err != nil {
		return err
	}

	variant, err := h.catalog.AddVariant(c.Request().Context(), actor, c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, variant)
}

// UpdateVariant handles PUT /products/variants/:id.
//
// @Summary      Update a product variant
// @Tags         catalog
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Variant id"
// @Param        body  body      variantRequest  true  "Variant details"
// @Success      200   {object}  domain.ProductVariant
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /products/variants/{id} [put]
func (h *ProductHandler) UpdateVariant(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	input, err := bindVariantInput(c)
	if err != nil {
		return err
	}

	variant, err := h.catalog.UpdateVariant(c.Request().Context(), actor, c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, variant)
}

// DeleteVariant handles DELETE /products/variants/:id.
//
// @Summary      Delete a product variant
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Variant id"
// @Success      204  "variant deleted"
// @Failure      404  {object}  errorResponse
// @Router       /products/variants/{id} [delete]
func (h *ProductHandler) DeleteVariant(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.catalog.DeleteVariant(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AddGalleryImage handles POST /products/:id/images. The multipart form must
// carry an "image" file.
//
// @Summary      Add a gallery image
// @Tags         catalog
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true  "Product id"
// @Param        image  formData  file    true  "Image file (JPEG or PNG)"
// @Success      201    {object}  domain.ProductImage
// @Failure      400    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Failure      422    {object}  errorResponse
// @Router       /products/{id}/images [post]
func (h *ProductHandler) AddGalleryImage(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req galleryImageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	image, err := formUpload(c, "image")
	if err != nil {
		return err
	}
	if image == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "image file is required")
	}

	entry, err := h.catalog.AddGalleryImage(c.Request().Context(), actor, c.Param("id"), ports.GalleryImageInput{
		AltText:   req.AltText,
		SortOrder: req.SortOrder,
		IsActive:  req.IsActive,
		Image:     image,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, entry)
}

// DeleteGalleryImage handles DELETE /products/images/:id.
//
// @Summary      Delete a gallery image
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Image id"
// @Success      204  "image deleted"
// @Failure      404  {object}  errorResponse
// @Router       /products/images/{id} [delete]
func (h *ProductHandler) DeleteGalleryImage(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.catalog.DeleteGalleryImage(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Export handles GET /products/export, streaming the full catalog as CSV.
//
// @Summary      Export products as CSV
// @Tags         catalog
// @Produce      text/csv
// @Security     BearerAuth
// @Success      200  {string}  string  "CSV payload"
// @Failure      401  {object}  errorResponse
// @Router       /products/export [get]
func (h *ProductHandler) Export(c echo.Context) error {
	data, err := h.exporter.ExportCSV(c.Request().Context())
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="products.csv"`)
	return c.Blob(http.StatusOK, "text/csv", data)
}

// BulkUpload handles POST /products/bulk-upload. The multipart form must
// carry a "file" CSV matching the export layout. The whole file is validated
// up front; valid batches are queued and processed asynchronously.
//
// @Summary      Bulk-upload products from CSV
// @Tags         catalog
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "CSV file"
// @Success      202   {object}  bulkUploadResponse
// @Failure      400   {object}  errorResponse
// @Router       /products/bulk-upload [post]
func (h *ProductHandler) BulkUpload(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	upload, err := formUpload(c, "file")
	if err != nil {
		return err
	}
	if upload == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "csv file is required")
	}

	inputs, err := h.exporter.ParseBulkCSV(c.Request().Context(), upload.Data)
	if err != nil {
		return err
	}

	jobs := make([]ports.ProductRowJob, 0, len(inputs))
	for _, input := range inputs {
		jobs = append(jobs, ports.ProductRowJob{Actor: actor, Input: input})
	}
	h.queue.EnqueueBatch(jobs)

	return c.JSON(http.StatusAccepted, bulkUploadResponse{Accepted: len(jobs)})
}

func bindProductInput(c echo.Context) (ports.ProductInput, error) {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return ports.ProductInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return ports.ProductInput{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	image, err := formUpload(c, "featured_image")
	if err != nil {
		return ports.ProductInput{}, err
	}

	return ports.ProductInput{
		Name:             req.Name,
		SKU:              req.SKU,
		CategoryID:       req.CategoryID,
		TagIDs:           req.TagIDs,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Price:            req.Price,
		ComparePrice:     req.ComparePrice,
		CostPrice:        req.CostPrice,
		WeightGrams:      req.WeightGrams,
		Dimensions:       req.Dimensions,
		Material:         req.Material,
		Color:            req.Color,
		Capacity:         req.Capacity,
		Status:           domain.ProductStatus(req.Status),
		IsFeatured:       req.IsFeatured,
		StockQuantity:    req.StockQuantity,
		FeaturedImage:    image,
	}, nil
}

func bindVariantInput(c echo.Context) (ports.VariantInput, error) {
	var req variantRequest
	if err := c.Bind(&req); err != nil {
		return ports.VariantInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return ports.VariantInput{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	image, err := formUpload(c, "image")
	if err != nil {
		return ports.VariantInput{}, err
	}

	return ports.VariantInput{
		Name:         req.Name,
		SKU:          req.SKU,
		Price:        req.Price,
		ComparePrice: req.ComparePrice,
		Colorway:     req.Colorway,
		Size:         req.Size,
		Material:     req.Material,
		IsActive:     req.IsActive,
		SortOrder:    req.SortOrder,
		Image:        image,
	}, nil
}
