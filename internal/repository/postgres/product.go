package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/preciousgifts/sugar-backend/internal/domain"
	apperrors "github.com/preciousgifts/sugar-backend/pkg/errors"
	"github.com/preciousgifts/sugar-backend/pkg/pagination"
)

const productColumns = `id, name, current_price_cents, original_price_cents, discount, category, sub_category, sub_sub_category,
	colors, featured, festive_special, gifting, no_of_sales, total_quantity,
	image_url, image_public_id, image_url2, image2_public_id,
	average_rating, rating_count, rating_distribution, created_by, created_at, updated_at`

// ProductRepository implements repository.ProductRepository using PostgreSQL.
type ProductRepository struct {
	db DB
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(db DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create inserts a new product into the database.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	colorsJSON, err := json.Marshal(p.Colors)
	if err != nil {
		return fmt.Errorf("marshal colors: %w", err)
	}
	distJSON, err := json.Marshal(p.RatingDistribution)
	if err != nil {
		return fmt.Errorf("marshal rating distribution: %w", err)
	}

	query := `
		INSERT INTO products (id, name, current_price_cents, original_price_cents, discount, category, sub_category, sub_sub_category,
			colors, featured, festive_special, gifting, no_of_sales, total_quantity,
			image_url, image_public_id, image_url2, image2_public_id,
			average_rating, rating_count, rating_distribution, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)`

	_, err = r.db.Exec(ctx, query,
		p.ID,
		p.Name,
		p.CurrentPrice,
		p.OriginalPrice,
		p.Discount,
		p.Category,
		p.SubCategory,
		p.SubSubCategory,
		colorsJSON,
		p.Featured,
		p.FestiveSpecial,
		p.Gifting,
		p.NoOfSales,
		p.TotalQuantity,
		p.ImageURL,
		p.ImagePublicID,
		p.ImageURL2,
		p.Image2PublicID,
		p.AverageRating,
		p.RatingCount,
		distJSON,
		p.CreatedBy,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

// GetByID retrieves a product by its ID.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)

	p, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	return p, nil
}

// List returns products matching the filter, newest first, with the total
// match count.
func (r *ProductRepository) List(ctx context.Context, filter domain.ProductFilter, pg pagination.Params) ([]domain.Product, int, error) {
	var (
		conditions []string
		args       []any
		argIndex   = 1
	)

	if filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argIndex))
		args = append(args, filter.Category)
		argIndex++
	}

	if filter.SubCategory != "" {
		conditions = append(conditions, fmt.Sprintf("sub_category = $%d", argIndex))
		args = append(args, filter.SubCategory)
		argIndex++
	}

	if filter.Featured != nil {
		conditions = append(conditions, fmt.Sprintf("featured = $%d", argIndex))
		args = append(args, *filter.Featured)
		argIndex++
	}

	if filter.FestiveSpecial != nil {
		conditions = append(conditions, fmt.Sprintf("festive_special = $%d", argIndex))
		args = append(args, *filter.FestiveSpecial)
		argIndex++
	}

	if filter.Gifting != nil {
		conditions = append(conditions, fmt.Sprintf("gifting = $%d", argIndex))
		args = append(args, *filter.Gifting)
		argIndex++
	}

	if !filter.CreatedAfter.IsZero() {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", argIndex))
		args = append(args, filter.CreatedAfter)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	// Use count(*) OVER() for total count in a single query.
	query := fmt.Sprintf(`
		SELECT %s, count(*) OVER() AS total_count
		FROM products
		%s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d`,
		productColumns, whereClause, argIndex, argIndex+1,
	)

	args = append(args, pg.PerPage, pg.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var (
		products   []domain.Product
		totalCount int
	)

	for rows.Next() {
		p, err := scanProductRow(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, totalCount, nil
}

// BestSellers returns the top product per subcategory by descending sales
// count. Ties break toward the lowest product id.
func (r *ProductRepository) BestSellers(ctx context.Context) ([]domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT ON (sub_category) %s
		FROM products
		ORDER BY sub_category, no_of_sales DESC, id`,
		productColumns,
	)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("best sellers: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProductRow(rows, nil)
		if err != nil {
			return nil, fmt.Errorf("scan best seller row: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate best seller rows: %w", err)
	}

	return products, nil
}

// UpdateRatingStats overwrites the derived rating fields for a product.
func (r *ProductRepository) UpdateRatingStats(ctx context.Context, productID int64, stats domain.RatingStats) error {
	distJSON, err := json.Marshal(stats.Distribution)
	if err != nil {
		return fmt.Errorf("marshal rating distribution: %w", err)
	}

	query := `
		UPDATE products
		SET average_rating = $1, rating_count = $2, rating_distribution = $3, updated_at = NOW()
		WHERE id = $4`

	ct, err := r.db.Exec(ctx, query, stats.AverageRating, stats.RatingCount, distJSON, productID)
	if err != nil {
		return fmt.Errorf("update rating stats: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", productID)
	}

	return nil
}

// scanProduct scans a single product row.
func scanProduct(row pgx.Row) (*domain.Product, error) {
	return scanProductFrom(row.Scan, nil)
}

// scanProductRow scans a product from a multi-row result. totalCount may be
// nil when the query carries no count(*) OVER() column.
func scanProductRow(rows pgx.Rows, totalCount *int) (*domain.Product, error) {
	return scanProductFrom(rows.Scan, totalCount)
}

func scanProductFrom(scan func(dest ...any) error, totalCount *int) (*domain.Product, error) {
	var (
		p          domain.Product
		colorsJSON []byte
		distJSON   []byte
	)

	dest := []any{
		&p.ID,
		&p.Name,
		&p.CurrentPrice,
		&p.OriginalPrice,
		&p.Discount,
		&p.Category,
		&p.SubCategory,
		&p.SubSubCategory,
		&colorsJSON,
		&p.Featured,
		&p.FestiveSpecial,
		&p.Gifting,
		&p.NoOfSales,
		&p.TotalQuantity,
		&p.ImageURL,
		&p.ImagePublicID,
		&p.ImageURL2,
		&p.Image2PublicID,
		&p.AverageRating,
		&p.RatingCount,
		&distJSON,
		&p.CreatedBy,
		&p.CreatedAt,
		&p.UpdatedAt,
	}
	if totalCount != nil {
		dest = append(dest, totalCount)
	}

	if err := scan(dest...); err != nil {
		return nil, err
	}

	if colorsJSON != nil {
		if err := json.Unmarshal(colorsJSON, &p.Colors); err != nil {
			return nil, fmt.Errorf("unmarshal colors: %w", err)
		}
	}
	if distJSON != nil {
		if err := json.Unmarshal(distJSON, &p.RatingDistribution); err != nil {
			return nil, fmt.Errorf("unmarshal rating distribution: %w", err)
		}
	}

	return &p, nil
}
