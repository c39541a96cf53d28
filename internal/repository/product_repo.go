package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/eunwoo0701/cafe-delight/internal/domain"
)

type postgresProductRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresProductRepository(db *sql.DB, logger *logrus.Logger) domain.ProductRepository {
	return &postgresProductRepository{
		db:  db,
		log: logger,
	}
}

// sizes are stored as a JSON text column.
func encodeSizes(sizes []string) (string, error) {
	if len(sizes) == 0 {
		sizes = domain.DefaultSizes
	}
	raw, err := json.Marshal(sizes)
	if err != nil {
		return "", fmt.Errorf("could not encode sizes: %w", err)
	}
	return string(raw), nil
}

func decodeSizes(raw string, product *domain.Product) {
	if raw == "" {
		product.Sizes = domain.DefaultSizes
		return
	}
	if err := json.Unmarshal([]byte(raw), &product.Sizes); err != nil || len(product.Sizes) == 0 {
		product.Sizes = domain.DefaultSizes
	}
}

func (r *postgresProductRepository) CreateProduct(product *domain.Product) (*domain.Product, error) {
	sizes, err := encodeSizes(product.Sizes)
	if err != nil {
		return nil, err
	}

	query := `
        INSERT INTO products (name, category, description, price, image_url, ingredients, sizes, stock)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at, updated_at`

	err = r.db.QueryRow(query,
		product.Name,
		product.Category,
		product.Description,
		product.Price,
		product.ImageURL,
		product.Ingredients,
		sizes,
		product.Stock,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23514" {
			r.log.Warnf("Repository: Check constraint violation for product '%s': %s", product.Name, pqErr.Message)
			return nil, fmt.Errorf("invalid product data: %s", pqErr.Message)
		}
		r.log.Errorf("Repository: Failed to create product '%s': %v", product.Name, err)
		return nil, fmt.Errorf("could not create product: %w", err)
	}
	if len(product.Sizes) == 0 {
		product.Sizes = domain.DefaultSizes
	}

	r.log.Infof("Repository: Product created successfully with ID: %d, Name: %s", product.ID, product.Name)
	return product, nil
}

const productColumns = `id, name, category, description, price, image_url, ingredients, sizes, stock, created_at, updated_at`

func scanProduct(row interface{ Scan(...interface{}) error }) (*domain.Product, error) {
	product := &domain.Product{}
	var sizes string
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Category,
		&product.Description,
		&product.Price,
		&product.ImageURL,
		&product.Ingredients,
		&sizes,
		&product.Stock,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	decodeSizes(sizes, product)
	return product, nil
}

func (r *postgresProductRepository) GetProductByID(id int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: Product with ID %d not found", id)
			return nil, domain.NewNotFoundError("product", id)
		}
		r.log.Errorf("Repository: Failed to get product by ID %d: %v", id, err)
		return nil, fmt.Errorf("could not get product by id: %w", err)
	}

	return product, nil
}

func (r *postgresProductRepository) GetProductByName(name string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE name = $1`

	product, err := scanProduct(r.db.QueryRow(query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: Product with name '%s' not found", name)
			return nil, &domain.NotFoundError{Resource: "product", Key: name}
		}
		r.log.Errorf("Repository: Failed to get product by name '%s': %v", name, err)
		return nil, fmt.Errorf("could not get product by name: %w", err)
	}

	return product, nil
}

func (r *postgresProductRepository) ListProducts(filter domain.ProductFilter) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []interface{}{}
	argCounter := 1

	if filter.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argCounter)
		args = append(args, filter.Category)
		argCounter++
	}
	if filter.Query != "" {
		query += fmt.Sprintf(" AND name ILIKE $%d", argCounter)
		args = append(args, "%"+filter.Query+"%")
		argCounter++
	}
	if filter.MinPrice != nil {
		query += fmt.Sprintf(" AND price >= $%d", argCounter)
		args = append(args, *filter.MinPrice)
		argCounter++
	}
	if filter.MaxPrice != nil {
		query += fmt.Sprintf(" AND price <= $%d", argCounter)
		args = append(args, *filter.MaxPrice)
		argCounter++
	}
	query += " ORDER BY id"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.log.Errorf("Repository: Failed to list products: %v", err)
		return nil, fmt.Errorf("could not list products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			r.log.Errorf("Repository: Failed to scan product row: %v", err)
			return nil, fmt.Errorf("error scanning product data: %w", err)
		}
		products = append(products, *product)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	r.log.Debugf("Repository: Retrieved %d products", len(products))
	return products, nil
}

func (r *postgresProductRepository) UpdateProduct(product *domain.Product) (*domain.Product, error) {
	sizes, err := encodeSizes(product.Sizes)
	if err != nil {
		return nil, err
	}

	query := `
        UPDATE products
        SET name = $1, category = $2, description = $3, price = $4,
            image_url = $5, ingredients = $6, sizes = $7, stock = $8, updated_at = NOW()
        WHERE id = $9
        RETURNING updated_at`

	err = r.db.QueryRow(query,
		product.Name,
		product.Category,
		product.Description,
		product.Price,
		product.ImageURL,
		product.Ingredients,
		sizes,
		product.Stock,
		product.ID,
	).Scan(&product.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: Product with ID %d not found for update", product.ID)
			return nil, domain.NewNotFoundError("product", product.ID)
		}
		r.log.Errorf("Repository: Failed to update product %d: %v", product.ID, err)
		return nil, fmt.Errorf("could not update product: %w", err)
	}

	r.log.Infof("Repository: Product %d updated successfully", product.ID)
	return product, nil
}

func (r *postgresProductRepository) DeleteProduct(id int64) error {
	result, err := r.db.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			r.log.Warnf("Repository: Product %d is referenced by order items, delete rejected", id)
			return fmt.Errorf("%w (product %d)", domain.ErrProductReferenced, id)
		}
		r.log.Errorf("Repository: Failed to delete product %d: %v", id, err)
		return fmt.Errorf("could not delete product: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not confirm product delete: %w", err)
	}
	if affected == 0 {
		r.log.Warnf("Repository: Product with ID %d not found for delete", id)
		return domain.NewNotFoundError("product", id)
	}

	r.log.Infof("Repository: Product %d deleted", id)
	return nil
}

// DecrementStock is the atomic conditional stock update used by order
// approval. It succeeds only when the remaining stock covers the quantity.
func decrementStockTx(tx *sql.Tx, productID int64, quantity int) (bool, error) {
	result, err := tx.Exec(`
        UPDATE products
        SET stock = stock - $1, updated_at = NOW()
        WHERE id = $2 AND stock >= $1`,
		quantity, productID)
	if err != nil {
		return false, fmt.Errorf("could not decrement stock for product %d: %w", productID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("could not confirm stock decrement for product %d: %w", productID, err)
	}
	return affected == 1, nil
}

func (r *postgresProductRepository) CountProducts() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		r.log.Errorf("Repository: Failed to count products: %v", err)
		return 0, fmt.Errorf("could not count products: %w", err)
	}
	return count, nil
}
