package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mugstore/backoffice/internal/core/domain"
	"github.com/mugstore/backoffice/internal/core/ports"
)

// exportHeader is the column contract shared by export and bulk upload.
var exportHeader = []string{
	"sku", "name", "category", "status", "price", "compare_price",
	"stock_quantity", "description",
}

// exportPageSize is the repository page size used while draining the catalog.
const exportPageSize = 500

// ExportService renders the catalog as CSV and parses bulk-upload batches
// back into create inputs.
type ExportService struct {
	products   ports.ProductRepository
	categories ports.CategoryRepository
	logger     zerolog.Logger
}

func NewExportService(products ports.ProductRepository, categories ports.CategoryRepository, logger zerolog.Logger) *ExportService {
	return &ExportService{products: products, categories: categories, logger: logger}
}

// ExportCSV serializes every product to one CSV row. Categories are exported
// by slug so a snapshot survives re-import into another environment.
func (s *ExportService) ExportCSV(ctx context.Context) ([]byte, error) {
	slugsByID, err := s.categorySlugs(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}

	for page := 1; ; page++ {
		items, _, err := s.products.List(ctx, ports.ListProductsFilter{Page: page, Limit: exportPageSize})
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			break
		}

		for _, p := range items {
			row := []string{
				p.SKU,
				p.Name,
				slugsByID[p.CategoryID],
				string(p.Status),
				strconv.FormatFloat(p.Price, 'f', 2, 64),
				formatOptionalPrice(p.ComparePrice),
				strconv.Itoa(p.StockQuantity),
				p.Description,
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
		if len(items) < exportPageSize {
			break
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseBulkCSV validates the header and converts each data row into a create
// input, resolving category slugs to ids. It fails fast on a malformed file:
// rows are only handed to the ingest queue when the whole batch parses.
func (s *ExportService) ParseBulkCSV(ctx context.Context, data []byte) ([]ports.ProductInput, error) {
	r := csv.NewReader(bytes.NewReader(data))
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty file", domain.ErrInvalidInput)
	}
	if !headerMatches(records[0]) {
		return nil, fmt.Errorf("%w: expected header %s", domain.ErrInvalidInput, strings.Join(exportHeader, ","))
	}

	idsBySlug, err := s.categoryIDs(ctx)
	if err != nil {
		return nil, err
	}

	inputs := make([]ports.ProductInput, 0, len(records)-1)
	for i, rec := range records[1:] {
		input, err := rowToInput(rec, idsBySlug)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		inputs = append(inputs, input)
	}
	return inputs, nil
}

func rowToInput(rec []string, idsBySlug map[string]string) (ports.ProductInput, error) {
	if len(rec) != len(exportHeader) {
		return ports.ProductInput{}, fmt.Errorf("%w: expected %d columns, got %d", domain.ErrInvalidInput, len(exportHeader), len(rec))
	}

	categoryID, ok := idsBySlug[rec[2]]
	if !ok {
		return ports.ProductInput{}, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidInput, rec[2])
	}

	price, err := strconv.ParseFloat(rec[4], 64)
	if err != nil {
		return ports.ProductInput{}, fmt.Errorf("%w: bad price %q", domain.ErrInvalidInput, rec[4])
	}

	var comparePrice float64
	if rec[5] != "" {
		comparePrice, err = strconv.ParseFloat(rec[5], 64)
		if err != nil {
			return ports.ProductInput{}, fmt.Errorf("%w: bad compare_price %q", domain.ErrInvalidInput, rec[5])
		}
	}

	stock, err := strconv.Atoi(rec[6])
	if err != nil {
		return ports.ProductInput{}, fmt.Errorf("%w: bad stock_quantity %q", domain.ErrInvalidInput, rec[6])
	}

	status := domain.ProductStatus(rec[3])
	if status == "" {
		status = domain.StatusDraft
	}

	return ports.ProductInput{
		Name:          rec[1],
		SKU:           rec[0],
		CategoryID:    categoryID,
		Description:   rec[7],
		Price:         price,
		ComparePrice:  comparePrice,
		Status:        status,
		StockQuantity: stock,
	}, nil
}

func headerMatches(got []string) bool {
	if len(got) != len(exportHeader) {
		return false
	}
	for i, col := range exportHeader {
		if strings.TrimSpace(strings.ToLower(got[i])) != col {
			return false
		}
	}
	return true
}

func (s *ExportService) categorySlugs(ctx context.Context) (map[string]string, error) {
	cats, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	m := make(map[string]string, len(cats))
	for _, c := range cats {
		m[c.ID] = c.Slug
	}
	return m, nil
}

func (s *ExportService) categoryIDs(ctx context.Context) (map[string]string, error) {
	cats, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	m := make(map[string]string, len(cats))
	for _, c := range cats {
		m[c.Slug] = c.ID
	}
	return m, nil
}

// formatOptionalPrice renders unset prices as empty cells.
func formatOptionalPrice(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
