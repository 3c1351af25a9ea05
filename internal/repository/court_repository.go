package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/Ricaps/tennis-club-reservations-management/internal/model"
)

// CourtRepo provides CRUD operations for courts.  Reads always join
// the surface table so callers get the court together with the rate
// information needed for pricing; the booking core treats the joined
// surface as an immutable snapshot for the duration of one attempt.
type CourtRepo struct {
	db *sql.DB
}

// NewCourtRepo returns a CourtRepo bound to the given database.
func NewCourtRepo(db *sql.DB) *CourtRepo { return &CourtRepo{db: db} }

var courtSortColumns = map[string]string{
	"name":      "c.name",
	"createdat": "c.created_at",
}

const courtSelect = `SELECT c.uid, c.name, c.created_at,
       s.uid, s.name, s.price, s.currency, s.created_at
FROM court c
JOIN surface s ON s.uid = c.surface_uid`

func scanCourt(scan func(dest ...any) error) (*model.Court, error) {
	var (
		c          model.Court
		s          model.Surface
		courtUID   string
		surfaceUID string
	)
	err := scan(&courtUID, &c.Name, &c.CreatedAt,
		&surfaceUID, &s.Name, &s.Price, &s.Currency, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.UID = uuid.MustParse(courtUID)
	s.UID = uuid.MustParse(surfaceUID)
	c.Surface = &s
	return &c, nil
}

// Create inserts a new court.  The referenced surface must already
// exist; a missing surface surfaces as ErrNotFound, a duplicate UID as
// ErrConflict.
func (r *CourtRepo) Create(ctx context.Context, c *model.Court) error {
	const q = `INSERT INTO court (uid, name, surface_uid) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, c.UID.String(), c.Name, c.Surface.UID.String())
	if err != nil {
		if isDuplicateKey(err) {
			return ErrConflict
		}
		if isMissingReference(err) {
			return ErrNotFound
		}
	}
	return err
}

// GetByUID fetches a court with its surface joined.  Returns
// ErrNotFound when no row matches.
func (r *CourtRepo) GetByUID(ctx context.Context, uid uuid.UUID) (*model.Court, error) {
	row := r.db.QueryRowContext(ctx, courtSelect+` WHERE c.uid = ?`, uid.String())
	c, err := scanCourt(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return c, err
}

// List returns a page of courts plus the total row count.
func (r *CourtRepo) List(ctx context.Context, p Pageable) ([]*model.Court, int64, error) {
	q := courtSelect + orderClause(p, courtSortColumns, "c.name") + ` LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, p.Size, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	courts := make([]*model.Court, 0)
	for rows.Next() {
		c, err := scanCourt(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		courts = append(courts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM court`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return courts, total, nil
}

// Update rewrites a court row, including its surface reference.
// Existence is checked up front because MySQL reports zero affected
// rows for a no-change update.
func (r *CourtRepo) Update(ctx context.Context, c *model.Court) error {
	ok, err := r.ExistsByUID(ctx, c.UID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	const q = `UPDATE court SET name = ?, surface_uid = ? WHERE uid = ?`
	_, err = r.db.ExecContext(ctx, q, c.Name, c.Surface.UID.String(), c.UID.String())
	if err != nil && isMissingReference(err) {
		return ErrNotFound
	}
	return err
}

// Delete removes a court.  Returns ErrConflict when reservations still
// reference it.
func (r *CourtRepo) Delete(ctx context.Context, uid uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM court WHERE uid = ?`, uid.String())
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrConflict
		}
		return err
	}
	return requireAffected(res)
}

// ExistsByUID reports whether a court row with the UID exists.
func (r *CourtRepo) ExistsByUID(ctx context.Context, uid uuid.UUID) (bool, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM court WHERE uid = ?`, uid.String()).Scan(&n)
	return n > 0, err
}
