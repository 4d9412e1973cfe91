package repository

import (
    "context"
    "database/sql"

    "github.com/canidoac/webcasares/internal/model"
)

// ProductRepo mirrors the 'products' table backing the storefront.
type ProductRepo struct{ DB *sql.DB }

func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{DB: db} }

const productCols = "id,name,description,price_cents,image_url,stock,active,created_at,updated_at"

func scanProduct(row interface{ Scan(...any) error }) (model.Product, error) {
    var p model.Product
    err := row.Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.ImageURL,
        &p.Stock, &p.Active, &p.CreatedAt, &p.UpdatedAt)
    return p, err
}

// ListActive returns listed products for the public storefront.
func (r *ProductRepo) ListActive(ctx context.Context) ([]model.Product, error) {
    rows, err := r.DB.QueryContext(ctx,
        "SELECT "+productCols+" FROM products WHERE active=TRUE ORDER BY name")
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []model.Product
    for rows.Next() {
        p, err := scanProduct(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, p)
    }
    return out, rows.Err()
}

// GetByID fetches one product.
func (r *ProductRepo) GetByID(ctx context.Context, id uint64) (model.Product, error) {
    p, err := scanProduct(r.DB.QueryRowContext(ctx,
        "SELECT "+productCols+" FROM products WHERE id=? LIMIT 1", id))
    if err == sql.ErrNoRows {
        return p, ErrNotFound
    }
    return p, err
}

// Create inserts a product and returns its id.
func (r *ProductRepo) Create(ctx context.Context, p *model.Product) (uint64, error) {
    res, err := r.DB.ExecContext(ctx,
        "INSERT INTO products (name, description, price_cents, image_url, stock, active) VALUES (?,?,?,?,?,?)",
        p.Name, p.Description, p.PriceCents, p.ImageURL, p.Stock, p.Active)
    if err != nil {
        return 0, err
    }
    id, err := res.LastInsertId()
    return uint64(id), err
}

// Update rewrites a product.
func (r *ProductRepo) Update(ctx context.Context, p *model.Product) error {
    res, err := r.DB.ExecContext(ctx,
        "UPDATE products SET name=?, description=?, price_cents=?, image_url=?, stock=?, active=?, updated_at=CURRENT_TIMESTAMP WHERE id=?",
        p.Name, p.Description, p.PriceCents, p.ImageURL, p.Stock, p.Active, p.ID)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        var one int
        if err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM products WHERE id=?", p.ID).Scan(&one); err == sql.ErrNoRows {
            return ErrNotFound
        }
    }
    return nil
}

// Delete removes a product from the catalog.
func (r *ProductRepo) Delete(ctx context.Context, id uint64) error {
    res, err := r.DB.ExecContext(ctx, "DELETE FROM products WHERE id=?", id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrNotFound
    }
    return nil
}
