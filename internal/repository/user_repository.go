package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/Ricaps/tennis-club-reservations-management/internal/model"
)

// UserRepo provides CRUD operations for users.  Phone numbers are
// unique and double as the login identifier; role sets are stored as a
// comma separated column and split on read.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo returns a UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

var userSortColumns = map[string]string{
	"firstname":   "first_name",
	"familyname":  "family_name",
	"phonenumber": "phone_number",
	"createdat":   "created_at",
}

const userSelect = `SELECT uid, first_name, family_name, phone_number, password, roles, created_at FROM user_entity`

func scanUser(scan func(dest ...any) error) (*model.User, error) {
	var (
		u      model.User
		rawUID string
		roles  string
	)
	err := scan(&rawUID, &u.FirstName, &u.FamilyName, &u.PhoneNumber, &u.Password, &roles, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	u.UID = uuid.MustParse(rawUID)
	u.Roles = model.SplitRoles(roles)
	return &u, nil
}

// Create inserts a new user.  The password must already be hashed by
// the caller.  A taken phone number fails with ErrPhoneExists, a
// duplicate UID with ErrConflict.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	const q = `INSERT INTO user_entity (uid, first_name, family_name, phone_number, password, roles)
VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		u.UID.String(), u.FirstName, u.FamilyName, u.PhoneNumber, u.Password, model.JoinRoles(u.Roles))
	if err != nil && isDuplicateKey(err) {
		var exists bool
		if e := r.db.QueryRowContext(ctx,
			`SELECT COUNT(*) > 0 FROM user_entity WHERE phone_number = ?`, u.PhoneNumber).Scan(&exists); e == nil && exists {
			return ErrPhoneExists
		}
		return ErrConflict
	}
	return err
}

// GetByUID fetches a user by identifier.  Returns ErrNotFound when no
// row matches.
func (r *UserRepo) GetByUID(ctx context.Context, uid uuid.UUID) (*model.User, error) {
	row := r.db.QueryRowContext(ctx, userSelect+` WHERE uid = ?`, uid.String())
	u, err := scanUser(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return u, err
}

// GetByPhoneNumber fetches a user by phone number, used by login.
func (r *UserRepo) GetByPhoneNumber(ctx context.Context, phone string) (*model.User, error) {
	row := r.db.QueryRowContext(ctx, userSelect+` WHERE phone_number = ?`, phone)
	u, err := scanUser(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return u, err
}

// List returns a page of users plus the total row count.
func (r *UserRepo) List(ctx context.Context, p Pageable) ([]*model.User, int64, error) {
	q := userSelect + orderClause(p, userSortColumns, "created_at") + ` LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, p.Size, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := make([]*model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM user_entity`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Update rewrites a user row.  The password field is expected to hold
// a hash, whether unchanged or freshly computed by the caller.
// Existence is checked up front because MySQL reports zero affected
// rows for a no-change update.
func (r *UserRepo) Update(ctx context.Context, u *model.User) error {
	ok, err := r.ExistsByUID(ctx, u.UID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	const q = `UPDATE user_entity SET first_name = ?, family_name = ?, phone_number = ?, password = ?, roles = ?
WHERE uid = ?`
	_, err = r.db.ExecContext(ctx, q,
		u.FirstName, u.FamilyName, u.PhoneNumber, u.Password, model.JoinRoles(u.Roles), u.UID.String())
	if err != nil && isDuplicateKey(err) {
		return ErrPhoneExists
	}
	return err
}

// Delete removes a user.  Returns ErrConflict when reservations still
// reference the user.
func (r *UserRepo) Delete(ctx context.Context, uid uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM user_entity WHERE uid = ?`, uid.String())
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrConflict
		}
		return err
	}
	return requireAffected(res)
}

// ExistsByUID reports whether a user row with the UID exists.
func (r *UserRepo) ExistsByUID(ctx context.Context, uid uuid.UUID) (bool, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM user_entity WHERE uid = ?`, uid.String()).Scan(&n)
	return n > 0, err
}
