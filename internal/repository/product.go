package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"storefront-api/internal/models"
)

type ProductRepository struct {
	db *sqlx.DB
}

func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// ProductFilter narrows product listings. Zero values mean "no filter".
type ProductFilter struct {
	Search       string
	Status       models.ProductStatus
	Type         models.ProductType
	CategoryID   string
	IsBestPrice  *bool
	IsExclusive  *bool
	IsTopSelling *bool
	IsNewArrival *bool
}

func (f ProductFilter) where() (string, []any) {
	clauses := []string{"p.deleted_at IS NULL"}
	var args []any

	add := func(clause string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if f.Search != "" {
		args = append(args, "%"+strings.ToLower(f.Search)+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf("(LOWER(p.slug) LIKE $%d OR LOWER(p.sku) LIKE $%d)", n, n))
	}
	if f.Status != "" {
		add("p.status = $%d", f.Status)
	}
	if f.Type != "" {
		add("p.type = $%d", f.Type)
	}
	if f.CategoryID != "" {
		add("EXISTS(SELECT 1 FROM product_categories pc WHERE pc.product_id = p.id AND pc.category_id = $%d)", f.CategoryID)
	}
	if f.IsBestPrice != nil {
		add("p.is_best_price = $%d", *f.IsBestPrice)
	}
	if f.IsExclusive != nil {
		add("p.is_exclusive = $%d", *f.IsExclusive)
	}
	if f.IsTopSelling != nil {
		add("p.is_top_selling = $%d", *f.IsTopSelling)
	}
	if f.IsNewArrival != nil {
		add("p.is_new_arrival = $%d", *f.IsNewArrival)
	}

	return strings.Join(clauses, " AND "), args
}

const productColumns = `
	p.id, p.slug, p.sku, p.name, p.description, p.short_description, p.base_price,
	p.type, p.status, p.is_best_price, p.is_exclusive, p.is_top_selling, p.is_new_arrival,
	p.created_by, p.created_at, p.updated_at`

// Create inserts the product, its variants and its category links in one
// transaction.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product, categoryIDs []string) error {
	txx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = txx.Rollback() }()

	query := `
		INSERT INTO products (id, slug, sku, name, description, short_description, base_price,
			type, status, is_best_price, is_exclusive, is_top_selling, is_new_arrival, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at, updated_at`

	err = txx.QueryRowContext(ctx, query,
		product.ID, product.Slug, product.SKU, product.Name, product.Description,
		product.ShortDescription, product.BasePrice, product.Type, product.Status,
		product.IsBestPrice, product.IsExclusive, product.IsTopSelling, product.IsNewArrival,
		product.CreatedBy,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return err
	}

	for _, v := range product.Variants {
		if err := upsertVariant(ctx, txx, v); err != nil {
			return err
		}
	}
	if err := replaceCategoryLinks(ctx, txx, product.ID, categoryIDs); err != nil {
		return err
	}

	return txx.Commit()
}

// Update rewrites the product row, upserts the given variants, soft-deletes
// variants missing from the set, and replaces category links, atomically.
func (r *ProductRepository) Update(ctx context.Context, product *models.Product, categoryIDs []string) error {
	txx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = txx.Rollback() }()

	query := `
		UPDATE products
		SET slug = $2, sku = $3, name = $4, description = $5, short_description = $6, base_price = $7,
			type = $8, status = $9, is_best_price = $10, is_exclusive = $11,
			is_top_selling = $12, is_new_arrival = $13, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING updated_at`

	err = txx.QueryRowContext(ctx, query,
		product.ID, product.Slug, product.SKU, product.Name, product.Description,
		product.ShortDescription, product.BasePrice, product.Type, product.Status,
		product.IsBestPrice, product.IsExclusive, product.IsTopSelling, product.IsNewArrival,
	).Scan(&product.UpdatedAt)
	if err != nil {
		return err
	}

	keep := make([]string, 0, len(product.Variants))
	for _, v := range product.Variants {
		if err := upsertVariant(ctx, txx, v); err != nil {
			return err
		}
		keep = append(keep, v.ID)
	}
	if err := softDeleteMissingVariants(ctx, txx, product.ID, keep); err != nil {
		return err
	}
	if err := replaceCategoryLinks(ctx, txx, product.ID, categoryIDs); err != nil {
		return err
	}

	return txx.Commit()
}

func upsertVariant(ctx context.Context, txx *sqlx.Tx, v *models.ProductVariant) error {
	query := `
		INSERT INTO product_variants (id, product_id, sku, name, attributes, is_primary, price, list_price, stock)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE
		SET sku = EXCLUDED.sku, name = EXCLUDED.name, attributes = EXCLUDED.attributes,
			is_primary = EXCLUDED.is_primary, price = EXCLUDED.price,
			list_price = EXCLUDED.list_price, stock = EXCLUDED.stock,
			deleted_at = NULL, updated_at = NOW()
		RETURNING created_at, updated_at`

	return txx.QueryRowContext(ctx, query,
		v.ID, v.ProductID, v.SKU, v.Name, v.Attrs, v.IsPrimary, v.Price, v.ListPrice, v.Stock,
	).Scan(&v.CreatedAt, &v.UpdatedAt)
}

func softDeleteMissingVariants(ctx context.Context, txx *sqlx.Tx, productID string, keep []string) error {
	if len(keep) == 0 {
		_, err := txx.ExecContext(ctx, `
			UPDATE product_variants SET deleted_at = NOW(), updated_at = NOW()
			WHERE product_id = $1 AND deleted_at IS NULL`, productID)
		return err
	}

	query, args, err := sqlx.In(`
		UPDATE product_variants SET deleted_at = NOW(), updated_at = NOW()
		WHERE product_id = ? AND deleted_at IS NULL AND id NOT IN (?)`, productID, keep)
	if err != nil {
		return err
	}
	_, err = txx.ExecContext(ctx, txx.Rebind(query), args...)
	return err
}

func replaceCategoryLinks(ctx context.Context, txx *sqlx.Tx, productID string, categoryIDs []string) error {
	if _, err := txx.ExecContext(ctx, `
		DELETE FROM product_categories WHERE product_id = $1`, productID); err != nil {
		return err
	}
	for _, categoryID := range categoryIDs {
		_, err := txx.ExecContext(ctx, `
			INSERT INTO product_categories (product_id, category_id)
			VALUES ($1, $2) ON CONFLICT DO NOTHING`, productID, categoryID)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := r.db.GetContext(ctx, &product, `
		SELECT`+productColumns+`
		FROM products p
		WHERE p.id = $1 AND p.deleted_at IS NULL`, id)
	if err != nil {
		return nil, err
	}

	if err := r.attachVariants(ctx, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := r.db.GetContext(ctx, &product, `
		SELECT`+productColumns+`
		FROM products p
		WHERE p.slug = $1 AND p.deleted_at IS NULL`, slug)
	if err != nil {
		return nil, err
	}

	if err := r.attachVariants(ctx, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) attachVariants(ctx context.Context, product *models.Product) error {
	var variants []*models.ProductVariant
	err := r.db.SelectContext(ctx, &variants, `
		SELECT id, product_id, sku, name, attributes, is_primary, price, list_price, stock, created_at, updated_at
		FROM product_variants
		WHERE product_id = $1 AND deleted_at IS NULL
		ORDER BY is_primary DESC, created_at`, product.ID)
	if err != nil {
		return err
	}
	product.Variants = variants
	return nil
}

func (r *ProductRepository) List(ctx context.Context, filter ProductFilter, limit, offset int) ([]*models.Product, error) {
	where, args := filter.where()
	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT%s
		FROM products p
		WHERE %s
		ORDER BY p.created_at DESC
		LIMIT $%d OFFSET $%d`, productColumns, where, len(args)-1, len(args))

	var products []*models.Product
	if err := r.db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepository) Count(ctx context.Context, filter ProductFilter) (int, error) {
	where, args := filter.where()
	query := fmt.Sprintf(`SELECT COUNT(*) FROM products p WHERE %s`, where)

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, err
	}
	return count, nil
}

// SoftDelete marks a product and its variants deleted in one transaction.
func (r *ProductRepository) SoftDelete(ctx context.Context, id string) error {
	txx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = txx.Rollback() }()

	res, err := txx.ExecContext(ctx, `
		UPDATE products SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}

	if _, err := txx.ExecContext(ctx, `
		UPDATE product_variants SET deleted_at = NOW(), updated_at = NOW()
		WHERE product_id = $1 AND deleted_at IS NULL`, id); err != nil {
		return err
	}

	return txx.Commit()
}
