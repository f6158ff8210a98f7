package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("user not found")

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(ctx context.Context, username, email, role string) (*User, error) {
	if username == "" {
		return nil, fmt.Errorf("username required")
	}
	if role == "" {
		role = "user"
	}

	const q = `
insert into users (username, email, role)
values ($1, $2, $3)
returning id::text, username, email, role, created_at, updated_at;
`
	var u User
	err := r.db.QueryRow(ctx, q, username, email, role).
		Scan(&u.ID, &u.Username, &u.Email, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) List(ctx context.Context) ([]User, error) {
	const q = `
select id::text, username, email, role, created_at, updated_at
from users
order by created_at desc;
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]User, 0, 16)
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, id string) (*User, error) {
	const q = `
select id::text, username, email, role, created_at, updated_at
from users
where id = $1::uuid;
`
	var u User
	err := r.db.QueryRow(ctx, q, id).
		Scan(&u.ID, &u.Username, &u.Email, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repo) Update(ctx context.Context, id, username, email, role string) (*User, error) {
	const q = `
update users
set username = coalesce(nullif($2,''), username),
    email = coalesce(nullif($3,''), email),
    role = coalesce(nullif($4,''), role),
    updated_at = now()
where id = $1::uuid
returning id::text, username, email, role, created_at, updated_at;
`
	var u User
	err := r.db.QueryRow(ctx, q, id, username, email, role).
		Scan(&u.ID, &u.Username, &u.Email, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repo) Delete(ctx context.Context, id string) (bool, error) {
	const q = `delete from users where id = $1::uuid;`
	ct, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
