package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/user-account-service/internal/model"
)

const userColumns = "id,username,email,password_hash,first_name,last_name,mobile,address,profile,created_at,updated_at"

// UserRepo persists user accounts in the 'users' table.  The table carries
// UNIQUE KEYs uq_username and uq_email, so duplicate identities are rejected
// by the database itself rather than by a separate existence check.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user and returns its ID.  The password must already be
// hashed by the caller.  A duplicate username or email maps to the matching
// sentinel error; the insert itself is the uniqueness check, so two
// concurrent registrations of the same name cannot both succeed.
func (r *UserRepo) Create(ctx context.Context, u model.User) (uint64, error) {
	u.Username = strings.TrimSpace(u.Username)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash, first_name, last_name, mobile, address, profile) VALUES (?,?,?,?,?,?,?,?)",
		u.Username, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Mobile, u.Address, u.Profile)
	if err != nil {
		return 0, dupKey(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches a user by exact username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	return r.getWhere(ctx, "username=?", strings.TrimSpace(username))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.getWhere(ctx, "id=?", id)
}

func (r *UserRepo) getWhere(ctx context.Context, where string, arg any) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE "+where+" LIMIT 1", arg).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName,
			&u.LastName, &u.Mobile, &u.Address, &u.Profile, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// UsernameExists reports whether a user with the given username is stored.
func (r *UserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username=?", strings.TrimSpace(username))
}

// EmailExists reports whether a user with the given email is stored.
func (r *UserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email=?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *UserRepo) exists(ctx context.Context, where string, arg any) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM users WHERE "+where+" LIMIT 1", arg).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ProfileUpdate lists the fields updateUser may merge into a record.  Nil
// pointers leave the stored value untouched.
type ProfileUpdate struct {
	Email     *string
	FirstName *string
	LastName  *string
	Mobile    *string
	Address   *string
	Profile   *string
}

// UpdateProfile merges the non-nil fields of upd into the user row.  A nil
// update is a no-op.  Changing the email can collide with uq_email, which
// maps to ErrEmailExists like Create.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, upd ProfileUpdate) error {
	sets := make([]string, 0, 6)
	args := make([]any, 0, 7)
	add := func(col string, v *string) {
		if v != nil {
			sets = append(sets, col+"=?")
			args = append(args, *v)
		}
	}
	add("email", upd.Email)
	add("first_name", upd.FirstName)
	add("last_name", upd.LastName)
	add("mobile", upd.Mobile)
	add("address", upd.Address)
	add("profile", upd.Profile)
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET "+strings.Join(sets, ",")+" WHERE id=?", args...)
	return dupKey(err)
}

// UpdatePassword replaces the stored hash for a username.
func (r *UserRepo) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET password_hash=? WHERE username=?",
		passwordHash, strings.TrimSpace(username))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// dupKey translates MySQL duplicate-key errors (1062) into sentinel errors,
// using the violated index name to tell username and email apart.
func dupKey(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "1062") {
		return err
	}
	if strings.Contains(msg, "uq_email") {
		return ErrEmailExists
	}
	return ErrUsernameExists
}
