package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/quizforge/quizforge-go/internal/model"
	"github.com/quizforge/quizforge-go/internal/utils"
)

// MySQLUserStore is the SQL-backed UserStore, selected with
// STORE_DRIVER=mysql.  Expected schema:
//
//	CREATE TABLE users (
//	  id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
//	  email VARCHAR(255) NOT NULL UNIQUE,
//	  username VARCHAR(30) NOT NULL UNIQUE,
//	  password_hash VARCHAR(100) NOT NULL,
//	  role VARCHAR(16) NOT NULL DEFAULT 'user',
//	  is_active TINYINT(1) NOT NULL DEFAULT 1,
//	  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
//	  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
//	) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin;
//
// The binary collation keeps email/username matching case-sensitive, same
// as the in-memory store.
type MySQLUserStore struct {
	db   *sql.DB
	cost int
}

// NewMySQLUserStore constructs the store with the provided DB handle and
// bcrypt cost.
func NewMySQLUserStore(db *sql.DB, cost int) *MySQLUserStore {
	return &MySQLUserStore{db: db, cost: cost}
}

const userColumns = "id, email, username, password_hash, role, is_active, created_at, updated_at"

func scanUser(row *sql.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create checks both uniqueness constraints (email first), hashes the
// password and inserts the row.  The pre-checks mirror the in-memory store;
// the unique indexes still back them up against races, surfacing as a plain
// error in that window.
func (s *MySQLUserStore) Create(ctx context.Context, email, username, password, role string) (*model.User, error) {
	if existing, err := s.FindByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrEmailExists
	}
	if existing, err := s.FindByUsername(ctx, username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrUsernameExists
	}

	hash, err := utils.HashPassword(password, s.cost)
	if err != nil {
		return nil, err
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO users (email, username, password_hash, role) VALUES (?,?,?,?)",
		email, username, hash, role)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	// Read the row back so callers get the DB-assigned timestamps.
	return s.FindByIDOrFail(ctx, uint64(id))
}

// FindByEmail fetches a user by exact email.
func (s *MySQLUserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// FindByUsername fetches a user by exact username.
func (s *MySQLUserStore) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return scanUser(s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username=? LIMIT 1", username))
}

// FindByID fetches a user by id.
func (s *MySQLUserStore) FindByID(ctx context.Context, id uint64) (*model.User, error) {
	return scanUser(s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// FindByIDOrFail is FindByID with a miss reported as ErrUserNotFound.
func (s *MySQLUserStore) FindByIDOrFail(ctx context.Context, id uint64) (*model.User, error) {
	u, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// FindAll returns every user ordered by id.
func (s *MySQLUserStore) FindAll(ctx context.Context) ([]*model.User, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.User
	for rows.Next() {
		u := new(model.User)
		if err := rows.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Touch bumps updated_at.  ErrUserNotFound when no row is affected.
func (s *MySQLUserStore) Touch(ctx context.Context, id uint64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET updated_at = CURRENT_TIMESTAMP WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}
