package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/mugstore/backoffice/internal/core/domain"
	"github.com/mugstore/backoffice/internal/core/ports"
)

// --- user repository ---

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return domain.ErrUserExists
		}
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, filter ports.ListUsersFilter) ([]*domain.User, int64, error) {
	var matched []*domain.User
	needle := strings.ToLower(filter.Search)
	for _, u := range r.users {
		if needle == "" ||
			strings.Contains(strings.ToLower(u.Username), needle) ||
			strings.Contains(strings.ToLower(u.FirstName), needle) ||
			strings.Contains(strings.ToLower(u.LastName), needle) ||
			strings.Contains(strings.ToLower(u.Email), needle) {
			matched = append(matched, cloneUser(u))
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// --- audit repository ---

type stubAuditRepo struct {
	entries    []*domain.AuditEntry
	failInsert bool
}

func (r *stubAuditRepo) Insert(_ context.Context, entry *domain.AuditEntry) error {
	if r.failInsert {
		return context.DeadlineExceeded
	}
	clone := *entry
	r.entries = append(r.entries, &clone)
	return nil
}

func (r *stubAuditRepo) List(_ context.Context, filter ports.ListAuditFilter) ([]*domain.AuditEntry, int64, error) {
	sorted := make([]*domain.AuditEntry, len(r.entries))
	copy(sorted, r.entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Timestamp.After(sorted[j].Timestamp) })

	total := int64(len(sorted))
	start := (filter.Page - 1) * filter.Limit
	if start >= len(sorted) {
		return nil, total, nil
	}
	end := start + filter.Limit
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[start:end], total, nil
}

func (r *stubAuditRepo) DeleteByActor(_ context.Context, actorID string) error {
	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.ActorID != actorID {
			kept = append(kept, e)
		}
	}
	r.entries = kept
	return nil
}

func (r *stubAuditRepo) byAction(action domain.AuditAction) []*domain.AuditEntry {
	var out []*domain.AuditEntry
	for _, e := range r.entries {
		if e.Action == action {
			out = append(out, e)
		}
	}
	return out
}

// --- media store ---

type stubMediaStore struct {
	saved   []string // "prefix/filename"
	removed []string
	fail    error
}

func (m *stubMediaStore) Save(_ context.Context, prefix string, upload ports.Upload) (string, error) {
	if m.fail != nil {
		return "", m.fail
	}
	path := prefix + "/" + upload.Filename
	m.saved = append(m.saved, path)
	return path, nil
}

func (m *stubMediaStore) Remove(_ context.Context, path string) error {
	m.removed = append(m.removed, path)
	return nil
}

// --- token revoker ---

type stubRevoker struct {
	revoked map[string]time.Time
}

func newStubRevoker() *stubRevoker {
	return &stubRevoker{revoked: make(map[string]time.Time)}
}

func (r *stubRevoker) Revoke(_ context.Context, tokenID string, until time.Time) error {
	r.revoked[tokenID] = until
	return nil
}

func (r *stubRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, ok := r.revoked[tokenID]
	return ok, nil
}

// --- catalog repositories ---

type stubCategoryRepo struct {
	categories map[string]*domain.Category
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[string]*domain.Category)}
}

func cloneCategory(c *domain.Category) *domain.Category {
	clone := *c
	return &clone
}

func (r *stubCategoryRepo) Create(_ context.Context, c *domain.Category) error {
	for _, existing := range r.categories {
		if existing.Slug == c.Slug {
			return domain.ErrCategoryExists
		}
	}
	r.categories[c.ID] = cloneCategory(c)
	return nil
}

func (r *stubCategoryRepo) Update(_ context.Context, c *domain.Category) error {
	if _, ok := r.categories[c.ID]; !ok {
		return domain.ErrCategoryNotFound
	}
	r.categories[c.ID] = cloneCategory(c)
	return nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(r.categories, id)
	return nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id string) (*domain.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	return cloneCategory(c), nil
}

func (r *stubCategoryRepo) List(_ context.Context) ([]*domain.Category, error) {
	out := make([]*domain.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, cloneCategory(c))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

type stubTagRepo struct {
	tags map[string]*domain.Tag
}

func newStubTagRepo() *stubTagRepo {
	return &stubTagRepo{tags: make(map[string]*domain.Tag)}
}

func (r *stubTagRepo) Create(_ context.Context, t *domain.Tag) error {
	for _, existing := range r.tags {
		if existing.Slug == t.Slug {
			return domain.ErrTagExists
		}
	}
	clone := *t
	r.tags[t.ID] = &clone
	return nil
}

func (r *stubTagRepo) Update(_ context.Context, t *domain.Tag) error {
	if _, ok := r.tags[t.ID]; !ok {
		return domain.ErrTagNotFound
	}
	clone := *t
	r.tags[t.ID] = &clone
	return nil
}

func (r *stubTagRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tags[id]; !ok {
		return domain.ErrTagNotFound
	}
	delete(r.tags, id)
	return nil
}

func (r *stubTagRepo) FindByID(_ context.Context, id string) (*domain.Tag, error) {
	t, ok := r.tags[id]
	if !ok {
		return nil, domain.ErrTagNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTagRepo) List(_ context.Context) ([]*domain.Tag, error) {
	out := make([]*domain.Tag, 0, len(r.tags))
	for _, t := range r.tags {
		clone := *t
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type stubProductRepo struct {
	products map[string]*domain.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[string]*domain.Product)}
}

func cloneProduct(p *domain.Product) *domain.Product {
	clone := *p
	clone.TagIDs = append([]string(nil), p.TagIDs...)
	return &clone
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) error {
	for _, existing := range r.products {
		if existing.SKU == p.SKU || existing.Slug == p.Slug {
			return domain.ErrProductExists
		}
	}
	r.products[p.ID] = cloneProduct(p)
	return nil
}

func (r *stubProductRepo) Update(_ context.Context, p *domain.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	r.products[p.ID] = cloneProduct(p)
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return cloneProduct(p), nil
}

func (r *stubProductRepo) List(_ context.Context, filter ports.ListProductsFilter) ([]*domain.Product, int64, error) {
	var matched []*domain.Product
	needle := strings.ToLower(filter.Search)
	for _, p := range r.products {
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.SKU), needle) {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.CategoryID != "" && p.CategoryID != filter.CategoryID {
			continue
		}
		matched = append(matched, cloneProduct(p))
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubProductRepo) ListByCategory(_ context.Context, categoryID string) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, p := range r.products {
		if p.CategoryID == categoryID {
			out = append(out, cloneProduct(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type stubImageRepo struct {
	images map[string]*domain.ProductImage
}

func newStubImageRepo() *stubImageRepo {
	return &stubImageRepo{images: make(map[string]*domain.ProductImage)}
}

func (r *stubImageRepo) Insert(_ context.Context, img *domain.ProductImage) error {
	clone := *img
	r.images[img.ID] = &clone
	return nil
}

func (r *stubImageRepo) Update(_ context.Context, img *domain.ProductImage) error {
	if _, ok := r.images[img.ID]; !ok {
		return domain.ErrImageNotFound
	}
	clone := *img
	r.images[img.ID] = &clone
	return nil
}

func (r *stubImageRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.images[id]; !ok {
		return domain.ErrImageNotFound
	}
	delete(r.images, id)
	return nil
}

func (r *stubImageRepo) FindByID(_ context.Context, id string) (*domain.ProductImage, error) {
	img, ok := r.images[id]
	if !ok {
		return nil, domain.ErrImageNotFound
	}
	clone := *img
	return &clone, nil
}

func (r *stubImageRepo) ListByProduct(_ context.Context, productID string) ([]*domain.ProductImage, error) {
	var out []*domain.ProductImage
	for _, img := range r.images {
		if img.ProductID == productID {
			clone := *img
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (r *stubImageRepo) DeleteByProduct(_ context.Context, productID string) error {
	for id, img := range r.images {
		if img.ProductID == productID {
			delete(r.images, id)
		}
	}
	return nil
}

type stubVariantRepo struct {
	variants map[string]*domain.ProductVariant
}

func newStubVariantRepo() *stubVariantRepo {
	return &stubVariantRepo{variants: make(map[string]*domain.ProductVariant)}
}

func (r *stubVariantRepo) Insert(_ context.Context, v *domain.ProductVariant) error {
	for _, existing := range r.variants {
		if existing.SKU == v.SKU {
			return domain.ErrVariantExists
		}
	}
	clone := *v
	r.variants[v.ID] = &clone
	return nil
}

func (r *stubVariantRepo) Update(_ context.Context, v *domain.ProductVariant) error {
	if _, ok := r.variants[v.ID]; !ok {
		return domain.ErrVariantNotFound
	}
	clone := *v
	r.variants[v.ID] = &clone
	return nil
}

func (r *stubVariantRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.variants[id]; !ok {
		return domain.ErrVariantNotFound
	}
	delete(r.variants, id)
	return nil
}

func (r *stubVariantRepo) FindByID(_ context.Context, id string) (*domain.ProductVariant, error) {
	v, ok := r.variants[id]
	if !ok {
		return nil, domain.ErrVariantNotFound
	}
	clone := *v
	return &clone, nil
}

func (r *stubVariantRepo) ListByProduct(_ context.Context, productID string) ([]*domain.ProductVariant, error) {
	var out []*domain.ProductVariant
	for _, v := range r.variants {
		if v.ProductID == productID {
			clone := *v
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (r *stubVariantRepo) DeleteByProduct(_ context.Context, productID string) error {
	for id, v := range r.variants {
		if v.ProductID == productID {
			delete(r.variants, id)
		}
	}
	return nil
}
