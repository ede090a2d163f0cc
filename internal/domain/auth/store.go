package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) FindActiveUserByEmail(ctx context.Context, email string) (*User, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, email, name, password_hash, role, COALESCE(designation, ''), status, created_at
    FROM users
    WHERE lower(email) = lower($1) AND status = $2
  `, email, UserStatusActive)

	var user User
	err := row.Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.Role, &user.Designation, &user.Status, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) GetUser(ctx context.Context, userID string) (*User, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, email, name, password_hash, role, COALESCE(designation, ''), status, created_at
    FROM users
    WHERE id = $1
  `, userID)

	var user User
	err := row.Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.Role, &user.Designation, &user.Status, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) UserEmail(ctx context.Context, userID string) (string, error) {
	var email string
	err := s.DB.QueryRow(ctx, "SELECT email FROM users WHERE id = $1", userID).Scan(&email)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", err
	}
	return email, nil
}

func (s *Store) UserExists(ctx context.Context, userID string) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM users WHERE id = $1", userID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) CreateUser(ctx context.Context, user User) (string, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	var emailCount int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM users WHERE lower(email) = lower($1)", user.Email).Scan(&emailCount); err != nil {
		return "", err
	}
	if emailCount > 0 {
		return "", ErrEmailTaken
	}

	_, err := s.DB.Exec(ctx, `
    INSERT INTO users (id, email, name, password_hash, role, designation, status)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
  `, user.ID, user.Email, user.Name, user.PasswordHash, user.Role, user.Designation, user.Status)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

func (s *Store) ListUsers(ctx context.Context, limit, offset int) ([]User, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, email, name, role, COALESCE(designation, ''), status, created_at
    FROM users
    ORDER BY created_at
    LIMIT $1 OFFSET $2
  `, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var user User
		if err := rows.Scan(&user.ID, &user.Email, &user.Name, &user.Role, &user.Designation, &user.Status, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (s *Store) CountUsers(ctx context.Context) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM users").Scan(&count)
	return count, err
}
