package repository

import (
	"context"
	"database/sql"

	"github.com/buildwise/buildwise/internal/catalog"
)

// ItemRepo handles catalog items.
type ItemRepo struct {
	db *sql.DB
}

func NewItemRepo(db *sql.DB) *ItemRepo {
	return &ItemRepo{db: db}
}

// Upsert inserts the item or updates the row with its code.
func (r *ItemRepo) Upsert(ctx context.Context, it catalog.Item) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO catalog_items(code, description, unit, unit_price, category)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(code) DO UPDATE SET
	 description=excluded.description,
	 unit=excluded.unit,
	 unit_price=excluded.unit_price,
	 category=excluded.category,
	 updated_at=datetime('now');
	`, it.Code, it.Description, it.Unit, it.UnitPrice, it.Category)
	return err
}

// List returns the full catalog ordered by code. The browser fetches it in
// one go and filters client-side.
func (r *ItemRepo) List(ctx context.Context) ([]catalog.Item, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT code, description, unit, unit_price, category FROM catalog_items ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []catalog.Item
	for rows.Next() {
		var it catalog.Item
		if err := rows.Scan(&it.Code, &it.Description, &it.Unit, &it.UnitPrice, &it.Category); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// Count returns the number of catalog items.
func (r *ItemRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM catalog_items`).Scan(&n)
	return n, err
}
