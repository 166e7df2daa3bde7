package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/airline-ticket-booking/internal/model"
)

// CatalogRepo provides lookups into the add-on catalogs consumed by
// pricing: meal options, entertainment/comfort items and snacks.  Catalog
// management is out of scope; only resolution by id is needed here.
type CatalogRepo struct {
	db *sql.DB
}

// NewCatalogRepo returns a new CatalogRepo bound to the given database.
func NewCatalogRepo(db *sql.DB) *CatalogRepo { return &CatalogRepo{db: db} }

// MealOptionByID resolves one meal option.  Returns ErrMealOptionNotFound
// when the id has no row.
func (r *CatalogRepo) MealOptionByID(ctx context.Context, id uint64) (*model.MealOption, error) {
	const q = `SELECT id, name, meal_type, weight_g, price FROM meal_options WHERE id = ?`
	var m model.MealOption
	var weight sql.NullInt64
	err := r.db.QueryRowContext(ctx, q, id).Scan(&m.ID, &m.Name, &m.MealType, &weight, &m.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMealOptionNotFound
	}
	if err != nil {
		return nil, err
	}
	if weight.Valid {
		w := int(weight.Int64)
		m.WeightG = &w
	}
	return &m, nil
}

// EntertainmentByIDs resolves a set of entertainment items.  When any id
// has no row the whole lookup fails with ErrItemNotFound so the booking
// request can be rejected as a unit.
func (r *CatalogRepo) EntertainmentByIDs(ctx context.Context, ids []uint64) ([]model.EntertainmentItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args := inQuery(`SELECT id, name, price FROM entertainment_items WHERE id IN `, ids)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.EntertainmentItem, 0, len(ids))
	found := make(map[uint64]struct{}, len(ids))
	for rows.Next() {
		var it model.EntertainmentItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Price); err != nil {
			return nil, err
		}
		found[it.ID] = struct{}{}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return nil, ErrItemNotFound
		}
	}
	return items, nil
}

// SnacksByIDs resolves a set of snack items with the same all-or-nothing
// semantics as EntertainmentByIDs.
func (r *CatalogRepo) SnacksByIDs(ctx context.Context, ids []uint64) ([]model.SnackItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args := inQuery(`SELECT id, name, price FROM snack_items WHERE id IN `, ids)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.SnackItem, 0, len(ids))
	found := make(map[uint64]struct{}, len(ids))
	for rows.Next() {
		var it model.SnackItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Price); err != nil {
			return nil, err
		}
		found[it.ID] = struct{}{}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return nil, ErrItemNotFound
		}
	}
	return items, nil
}

// inQuery appends an (?,?,...) placeholder list to prefix and returns the
// matching args slice.  ids must be non-empty.
func inQuery(prefix string, ids []uint64) (string, []interface{}) {
	query := prefix + "("
	args := make([]interface{}, 0, len(ids))
	for i, id := range ids {
		if i > 0 {
			query += ","
		}
		query += "?"
		args = append(args, id)
	}
	return query + ")", args
}
