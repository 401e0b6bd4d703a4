package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

var ErrInsufficientStock = errors.New("insufficient stock")

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, int, error)
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

const productColumns = `
	p.id, p.name, p.description, p.sku, p.price, p.original_price, p.stock_quantity,
	p.sizes, p.images, p.weight_grams, p.category_id, p.brand_id, p.active,
	p.created_at, p.updated_at, c.name, b.name`

const productJoins = `
	FROM products p
	LEFT JOIN categories c ON p.category_id = c.id
	LEFT JOIN brands b ON p.brand_id = b.id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	product := &models.Product{}

	var categoryName, brandName sql.NullString

	err := row.Scan(
		&product.ID, &product.Name, &product.Description, &product.SKU, &product.Price, &product.OriginalPrice,
		&product.StockQuantity, pq.Array(&product.Sizes), pq.Array(&product.Images), &product.WeightGrams,
		&product.CategoryID, &product.BrandID, &product.Active, &product.CreatedAt, &product.UpdatedAt,
		&categoryName, &brandName,
	)
	if err != nil {
		return nil, err
	}

	if product.CategoryID.Valid {
		product.Category = &models.Category{ID: product.CategoryID.UUID, Name: categoryName.String}
	}

	if product.BrandID.Valid {
		product.Brand = &models.Brand{ID: product.BrandID.UUID, Name: brandName.String}
	}

	return product, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO products (name, description, sku, price, original_price, stock_quantity, sizes, images,
			weight_grams, category_id, brand_id, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		product.Name, product.Description, product.SKU, product.Price, product.OriginalPrice, product.StockQuantity,
		pq.Array(product.Sizes), pq.Array(product.Images), product.WeightGrams, product.CategoryID, product.BrandID, product.Active,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + productColumns + productJoins + ` WHERE p.id = $1`

	product, err := scanProduct(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return product, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products SET name = $1, description = $2, sku = $3, price = $4, original_price = $5,
			stock_quantity = $6, sizes = $7, images = $8, weight_grams = $9, category_id = $10,
			brand_id = $11, active = $12, updated_at = NOW()
		WHERE id = $13
		RETURNING updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		product.Name, product.Description, product.SKU, product.Price, product.OriginalPrice, product.StockQuantity,
		pq.Array(product.Sizes), pq.Array(product.Images), product.WeightGrams, product.CategoryID, product.BrandID,
		product.Active, product.ID,
	).Scan(&product.UpdatedAt)
}

// DeleteProduct removes the product; order items referencing it cascade in the schema.
func (r *productRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
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

func (r *productRepository) ListProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	page, size := models.NormalizePage(filter.Page, filter.PageSize)

	var conditions []string
	var args []any

	if filter.ActiveOnly {
		conditions = append(conditions, "p.active = TRUE")
	}

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		conditions = append(conditions, fmt.Sprintf("p.category_id = $%d", len(args)))
	}

	if filter.BrandID != nil {
		args = append(args, *filter.BrandID)
		conditions = append(conditions, fmt.Sprintf("p.brand_id = $%d", len(args)))
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(p.name ILIKE $%d OR p.sku ILIKE $%d OR b.name ILIKE $%d OR c.name ILIKE $%d)", n, n, n, n))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int

	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*)`+productJoins+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	args = append(args, size, models.Offset(page, size))
	query := `SELECT ` + productColumns + productJoins + where +
		fmt.Sprintf(" ORDER BY p.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []*models.Product{}

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return products, total, nil
}

// DecrementStock lowers stock without going negative. Concurrent writers are last-write-wins otherwise.
func (r *productRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products SET stock_quantity = stock_quantity - $1, updated_at = NOW()
		WHERE id = $2 AND stock_quantity >= $1
	`

	result, err := r.DB.ExecContext(dbCtx, query, quantity, id)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}

	updated, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updated == 0 {
		return ErrInsufficientStock
	}

	return nil
}
