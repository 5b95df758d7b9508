package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/acmeshop/storefront/internal/storage"
)

// sortColumns whitelists ORDER BY targets. Prices are stored as decimal
// strings, so price ordering casts to a numeric affinity.
var sortColumns = map[string]string{
	"name":    "name",
	"price":   "CAST(price AS REAL)",
	"created": "created_at",
	"stock":   "current_stock",
}

// Store encapsulates operations on the products table.
type Store struct {
	db      *sqlx.DB
	nowFunc func() time.Time
}

// NewStore creates a new catalog Store.
func NewStore(db *sqlx.DB) *Store {
	return &Store{
		db:      db,
		nowFunc: time.Now,
	}
}

// Get fetches a product by id. Returns storage.ErrNotFound if absent.
func (s *Store) Get(ctx context.Context, id int64) (*Product, error) {
	var p Product
	err := s.db.GetContext(ctx, &p,
		`SELECT id, name, description, price, is_on_sale, sale_price,
		        current_stock, image_url, created_at, updated_at
		 FROM products WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return &p, nil
}

// List returns products matching q, ordered per its sort settings.
func (s *Store) List(ctx context.Context, q ListQuery) ([]Product, error) {
	var (
		where []string
		args  []interface{}
	)
	if q.Name != "" {
		where = append(where, "name LIKE ? COLLATE NOCASE")
		args = append(args, "%"+q.Name+"%")
	}
	if q.MinPrice.Valid {
		where = append(where, "CAST(price AS REAL) >= CAST(? AS REAL)")
		args = append(args, q.MinPrice.Decimal.String())
	}
	if q.MaxPrice.Valid {
		where = append(where, "CAST(price AS REAL) <= CAST(? AS REAL)")
		args = append(args, q.MaxPrice.Decimal.String())
	}
	if q.OnSale != nil {
		where = append(where, "is_on_sale = ?")
		args = append(args, *q.OnSale)
	}
	if q.InStock {
		where = append(where, "current_stock > 0")
	}

	query := `SELECT id, name, description, price, is_on_sale, sale_price,
	                 current_stock, image_url, created_at, updated_at
	          FROM products`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	col, ok := sortColumns[q.SortBy]
	if !ok {
		col = sortColumns["name"]
	}
	dir := "ASC"
	if q.SortDir == SortDesc {
		dir = "DESC"
	}
	query += " ORDER BY " + col + " " + dir

	products := []Product{}
	if err := s.db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// Create inserts a product and fills in its id and timestamps.
func (s *Store) Create(ctx context.Context, p *Product) error {
	now := s.nowFunc().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO products (name, description, price, is_on_sale, sale_price,
		                       current_stock, image_url, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Description, p.Price, p.IsOnSale, p.SalePrice,
		p.CurrentStock, p.ImageURL, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("product last insert id: %w", err)
	}
	p.ID = id
	return nil
}

// Update overwrites the mutable fields of an existing product and refreshes
// its updated_at timestamp. Returns storage.ErrNotFound if the id is unknown.
func (s *Store) Update(ctx context.Context, p *Product) error {
	p.UpdatedAt = s.nowFunc().UTC()

	res, err := s.db.ExecContext(ctx,
		`UPDATE products
		 SET name = ?, description = ?, price = ?, is_on_sale = ?,
		     sale_price = ?, current_stock = ?, image_url = ?, updated_at = ?
		 WHERE id = ?`,
		p.Name, p.Description, p.Price, p.IsOnSale, p.SalePrice,
		p.CurrentStock, p.ImageURL, p.UpdatedAt, p.ID)
	if err != nil {
		return fmt.Errorf("update product %d: %w", p.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update product rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// Delete removes a product. Historical order items keep their snapshot of the
// product name and price, so deletion never touches past orders.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
