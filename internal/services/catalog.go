package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/cache"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/errors"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/helmet-storefront/internal/repositories"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	categoryResource = "category"
	brandResource    = "brand"
)

type CatalogService interface {
	ListCategories(ctx context.Context) ([]*models.Category, error)
	CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req *models.CreateCategoryRequest) (*models.Category, error)
	RequestCategoryDelete(ctx context.Context, id uuid.UUID) (*models.DeleteConfirmation, error)
	ConfirmCategoryDelete(ctx context.Context, id uuid.UUID, token string) error

	ListBrands(ctx context.Context) ([]*models.Brand, error)
	CreateBrand(ctx context.Context, req *models.CreateBrandRequest) (*models.Brand, error)
	UpdateBrand(ctx context.Context, id uuid.UUID, req *models.CreateBrandRequest) (*models.Brand, error)
	RequestBrandDelete(ctx context.Context, id uuid.UUID) (*models.DeleteConfirmation, error)
	ConfirmBrandDelete(ctx context.Context, id uuid.UUID, token string) error
}

type catalogService struct {
	repo repository.CatalogRepository
	gate *deleteGate
}

func NewCatalogService(repo repository.CatalogRepository, c cache.Cache, deleteTokenTTL time.Duration) CatalogService {
	return &catalogService{repo: repo, gate: newDeleteGate(c, deleteTokenTTL)}
}

func (s *catalogService) ListCategories(ctx context.Context) ([]*models.Category, error) {

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch categories").WithError(err)
	}

	return categories, nil
}

func (s *catalogService) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {

	category := &models.Category{
		Name:        strings.TrimSpace(req.Name),
		Slug:        slugOrName(req.Slug, req.Name),
		Description: req.Description,
	}

	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, catalogWriteError("category", err)
	}

	return category, nil
}

func (s *catalogService) UpdateCategory(ctx context.Context, id uuid.UUID, req *models.CreateCategoryRequest) (*models.Category, error) {

	category, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, catalogLookupError("Category", err)
	}

	category.Name = strings.TrimSpace(req.Name)
	category.Slug = slugOrName(req.Slug, req.Name)
	category.Description = req.Description

	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		return nil, catalogWriteError("category", err)
	}

	return category, nil
}

func (s *catalogService) RequestCategoryDelete(ctx context.Context, id uuid.UUID) (*models.DeleteConfirmation, error) {

	if _, err := s.repo.GetCategoryByID(ctx, id); err != nil {
		return nil, catalogLookupError("Category", err)
	}

	return s.gate.issue(ctx, categoryResource, id)
}

func (s *catalogService) ConfirmCategoryDelete(ctx context.Context, id uuid.UUID, token string) error {

	if err := s.gate.consume(ctx, categoryResource, id, token); err != nil {
		return err
	}

	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return catalogDeleteError("Category", err)
	}

	middleware.LoggerFromContext(ctx).Info("Category deleted", slog.String("categoryId", id.String()))

	return nil
}

func (s *catalogService) ListBrands(ctx context.Context) ([]*models.Brand, error) {

	brands, err := s.repo.ListBrands(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch brands").WithError(err)
	}

	return brands, nil
}

func (s *catalogService) CreateBrand(ctx context.Context, req *models.CreateBrandRequest) (*models.Brand, error) {

	brand := &models.Brand{
		Name:    strings.TrimSpace(req.Name),
		Slug:    slugOrName(req.Slug, req.Name),
		LogoURL: req.LogoURL,
	}

	if err := s.repo.CreateBrand(ctx, brand); err != nil {
		return nil, catalogWriteError("brand", err)
	}

	return brand, nil
}

func (s *catalogService) UpdateBrand(ctx context.Context, id uuid.UUID, req *models.CreateBrandRequest) (*models.Brand, error) {

	brand, err := s.repo.GetBrandByID(ctx, id)
	if err != nil {
		return nil, catalogLookupError("Brand", err)
	}

	brand.Name = strings.TrimSpace(req.Name)
	brand.Slug = slugOrName(req.Slug, req.Name)
	brand.LogoURL = req.LogoURL

	if err := s.repo.UpdateBrand(ctx, brand); err != nil {
		return nil, catalogWriteError("brand", err)
	}

	return brand, nil
}

func (s *catalogService) RequestBrandDelete(ctx context.Context, id uuid.UUID) (*models.DeleteConfirmation, error) {

	if _, err := s.repo.GetBrandByID(ctx, id); err != nil {
		return nil, catalogLookupError("Brand", err)
	}

	return s.gate.issue(ctx, brandResource, id)
}

func (s *catalogService) ConfirmBrandDelete(ctx context.Context, id uuid.UUID, token string) error {

	if err := s.gate.consume(ctx, brandResource, id, token); err != nil {
		return err
	}

	if err := s.repo.DeleteBrand(ctx, id); err != nil {
		return catalogDeleteError("Brand", err)
	}

	middleware.LoggerFromContext(ctx).Info("Brand deleted", slog.String("brandId", id.String()))

	return nil
}

// Slugify lowercases, strips accents and joins words with "-": "Capacetes Fechados" -> "capacetes-fechados".
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	plain, _, err := transform.String(t, s)
	if err != nil {
		plain = s
	}

	var b strings.Builder
	dash := false

	for _, r := range strings.ToLower(plain) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteRune('-')
			dash = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

func slugOrName(slug, name string) string {
	if strings.TrimSpace(slug) != "" {
		return Slugify(slug)
	}

	return Slugify(name)
}

func catalogLookupError(kind string, err error) error {
	if stdErrors.Is(err, sql.ErrNoRows) {
		return errors.NotFoundError(kind + " not found").WithError(err)
	}

	return errors.DatabaseError("Failed to fetch " + strings.ToLower(kind)).WithError(err)
}

func catalogDeleteError(kind string, err error) error {
	if stdErrors.Is(err, sql.ErrNoRows) {
		return errors.NotFoundError(kind + " not found").WithError(err)
	}

	return errors.DatabaseError("Failed to delete " + strings.ToLower(kind)).WithError(err)
}

// unique_violation on slug or name
func catalogWriteError(kind string, err error) error {
	var pqErr *pq.Error
	if stdErrors.As(err, &pqErr) && pqErr.Code == "23505" {
		return errors.DuplicateEntryError("A " + kind + " with this name or slug already exists").WithError(err)
	}

	return errors.DatabaseError("Failed to save " + kind).WithError(err)
}
