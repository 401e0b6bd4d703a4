package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/utils"
	"github.com/google/uuid"
)

type CatalogRepository interface {
	CreateCategory(ctx context.Context, category *models.Category) error
	UpdateCategory(ctx context.Context, category *models.Category) error
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateBrand(ctx context.Context, brand *models.Brand) error
	UpdateBrand(ctx context.Context, brand *models.Brand) error
	GetBrandByID(ctx context.Context, id uuid.UUID) (*models.Brand, error)
	ListBrands(ctx context.Context) ([]*models.Brand, error)
	DeleteBrand(ctx context.Context, id uuid.UUID) error
}

type catalogRepository struct {
	DB *sql.DB
}

func NewCatalogRepo(db *sql.DB) CatalogRepository {
	return &catalogRepository{DB: db}
}

func (r *catalogRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO categories (name, slug, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, category.Name, category.Slug, category.Description).
		Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
}

func (r *catalogRepository) UpdateCategory(ctx context.Context, category *models.Category) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE categories SET name = $1, slug = $2, description = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, category.Name, category.Slug, category.Description, category.ID).
		Scan(&category.UpdatedAt)
}

func (r *catalogRepository) GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	category := &models.Category{}

	query := `SELECT id, name, slug, description, created_at, updated_at FROM categories WHERE id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, id).
		Scan(&category.ID, &category.Name, &category.Slug, &category.Description, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return category, nil
}

func (r *catalogRepository) ListCategories(ctx context.Context) ([]*models.Category, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(dbCtx, `SELECT id, name, slug, description, created_at, updated_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []*models.Category{}

	for rows.Next() {
		category := &models.Category{}
		if err := rows.Scan(&category.ID, &category.Name, &category.Slug, &category.Description, &category.CreatedAt, &category.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}

		categories = append(categories, category)
	}

	return categories, rows.Err()
}

func (r *catalogRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, `DELETE FROM categories WHERE id = $1`, id)
}

func (r *catalogRepository) CreateBrand(ctx context.Context, brand *models.Brand) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO brands (name, slug, logo_url)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, brand.Name, brand.Slug, brand.LogoURL).
		Scan(&brand.ID, &brand.CreatedAt, &brand.UpdatedAt)
}

func (r *catalogRepository) UpdateBrand(ctx context.Context, brand *models.Brand) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE brands SET name = $1, slug = $2, logo_url = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, brand.Name, brand.Slug, brand.LogoURL, brand.ID).Scan(&brand.UpdatedAt)
}

func (r *catalogRepository) GetBrandByID(ctx context.Context, id uuid.UUID) (*models.Brand, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	brand := &models.Brand{}

	query := `SELECT id, name, slug, logo_url, created_at, updated_at FROM brands WHERE id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, id).
		Scan(&brand.ID, &brand.Name, &brand.Slug, &brand.LogoURL, &brand.CreatedAt, &brand.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return brand, nil
}

func (r *catalogRepository) ListBrands(ctx context.Context) ([]*models.Brand, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(dbCtx, `SELECT id, name, slug, logo_url, created_at, updated_at FROM brands ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query brands: %w", err)
	}
	defer rows.Close()

	brands := []*models.Brand{}

	for rows.Next() {
		brand := &models.Brand{}
		if err := rows.Scan(&brand.ID, &brand.Name, &brand.Slug, &brand.LogoURL, &brand.CreatedAt, &brand.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan brand: %w", err)
		}

		brands = append(brands, brand)
	}

	return brands, rows.Err()
}

func (r *catalogRepository) DeleteBrand(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, `DELETE FROM brands WHERE id = $1`, id)
}

func (r *catalogRepository) deleteByID(ctx context.Context, query string, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get deleted rows: %w", err)
	}

	if deleted == 0 {
		return sql.ErrNoRows
	}

	return nil
}
