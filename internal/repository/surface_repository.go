package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/Ricaps/tennis-club-reservations-management/internal/model"
)

// SurfaceRepo provides CRUD operations for court surfaces.  The
// surface table stores the per-minute rate and currency used when
// pricing reservations, so rows read here feed the pricing engine
// unchanged.  All timestamps are stored in UTC.
type SurfaceRepo struct {
	db *sql.DB
}

// NewSurfaceRepo returns a SurfaceRepo bound to the given database.
func NewSurfaceRepo(db *sql.DB) *SurfaceRepo { return &SurfaceRepo{db: db} }

var surfaceSortColumns = map[string]string{
	"name":      "name",
	"price":     "price",
	"createdat": "created_at",
}

// Create inserts a new surface.  The UID must be assigned by the
// caller; inserting a duplicate UID fails with ErrConflict.
func (r *SurfaceRepo) Create(ctx context.Context, s *model.Surface) error {
	const q = `INSERT INTO surface (uid, name, price, currency) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, s.UID.String(), s.Name, s.Price, s.Currency)
	if err != nil && isDuplicateKey(err) {
		return ErrConflict
	}
	return err
}

// GetByUID fetches a single surface.  Returns ErrNotFound when no row
// matches.
func (r *SurfaceRepo) GetByUID(ctx context.Context, uid uuid.UUID) (*model.Surface, error) {
	const q = `SELECT uid, name, price, currency, created_at FROM surface WHERE uid = ?`
	var (
		s      model.Surface
		rawUID string
	)
	err := r.db.QueryRowContext(ctx, q, uid.String()).Scan(&rawUID, &s.Name, &s.Price, &s.Currency, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	s.UID = uuid.MustParse(rawUID)
	return &s, nil
}

// List returns a page of surfaces plus the total row count.
func (r *SurfaceRepo) List(ctx context.Context, p Pageable) ([]*model.Surface, int64, error) {
	q := `SELECT uid, name, price, currency, created_at FROM surface` +
		orderClause(p, surfaceSortColumns, "name") + ` LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, p.Size, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	surfaces := make([]*model.Surface, 0)
	for rows.Next() {
		var (
			s      model.Surface
			rawUID string
		)
		if err := rows.Scan(&rawUID, &s.Name, &s.Price, &s.Currency, &s.CreatedAt); err != nil {
			return nil, 0, err
		}
		s.UID = uuid.MustParse(rawUID)
		surfaces = append(surfaces, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM surface`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return surfaces, total, nil
}

// Update rewrites a surface row.  Returns ErrNotFound when the UID is
// not persisted.  Existence is checked up front because MySQL reports
// zero affected rows for a no-change update.
func (r *SurfaceRepo) Update(ctx context.Context, s *model.Surface) error {
	ok, err := r.ExistsByUID(ctx, s.UID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	const q = `UPDATE surface SET name = ?, price = ?, currency = ? WHERE uid = ?`
	_, err = r.db.ExecContext(ctx, q, s.Name, s.Price, s.Currency, s.UID.String())
	return err
}

// Delete removes a surface.  Returns ErrNotFound when no row was
// deleted and ErrConflict when courts still reference the surface.
func (r *SurfaceRepo) Delete(ctx context.Context, uid uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM surface WHERE uid = ?`, uid.String())
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrConflict
		}
		return err
	}
	return requireAffected(res)
}

// ExistsByUID reports whether a surface row with the UID exists.
func (r *SurfaceRepo) ExistsByUID(ctx context.Context, uid uuid.UUID) (bool, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM surface WHERE uid = ?`, uid.String()).Scan(&n)
	return n > 0, err
}

// SaveAll inserts the given surfaces, used by the database seed.
func (r *SurfaceRepo) SaveAll(ctx context.Context, surfaces []*model.Surface) error {
	for _, s := range surfaces {
		if err := r.Create(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// isDuplicateKey detects the MySQL duplicate-entry error (1062).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}

// isForeignKeyViolation detects the MySQL row-is-referenced error (1451).
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1451")
}

// isMissingReference detects the MySQL missing-parent-row error (1452),
// raised when an insert or update points at a non-existent foreign row.
func isMissingReference(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1452")
}

// requireAffected maps an exec result touching zero rows to ErrNotFound.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
