package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"petmatch-be/internal/entities"

	"github.com/mattn/go-sqlite3"
)

var (
	ErrEmailTaken   = errors.New("email already registered")
	ErrUserNotFound = errors.New("user not found")
)

// UserRepository defines the interface for user database operations
type UserRepository interface {
	Create(name, email, passwordHash string) (*entities.User, error)
	FindByEmail(email string) (*entities.User, error)
	UpdateName(email, name string) error
	UpdatePassword(email, passwordHash string) error
	// DeleteWithAnimals removes the user and every animal they own in one
	// transaction and returns the ids of the deleted animals.
	DeleteWithAnimals(email string) ([]int64, error)
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user into the database
func (r *userRepository) Create(name, email, passwordHash string) (*entities.User, error) {
	result, err := r.db.Exec(`
		INSERT INTO users (name, email, password_hash)
		VALUES (?, ?, ?)
	`, name, email, passwordHash)

	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted id: %w", err)
	}

	return r.findBy("id = ?", id)
}

// FindByEmail finds a user by email
func (r *userRepository) FindByEmail(email string) (*entities.User, error) {
	return r.findBy("email = ?", email)
}

func (r *userRepository) findBy(where string, arg interface{}) (*entities.User, error) {
	query := `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE ` + where

	var user entities.User
	err := r.db.QueryRow(query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &user, nil
}

// UpdateName changes the display name of the user with the given email
func (r *userRepository) UpdateName(email, name string) error {
	if _, err := r.db.Exec(`UPDATE users SET name = ? WHERE email = ?`, name, email); err != nil {
		return fmt.Errorf("failed to update name: %w", err)
	}
	return nil
}

// UpdatePassword replaces the stored password hash of the user with the given email
func (r *userRepository) UpdatePassword(email, passwordHash string) error {
	if _, err := r.db.Exec(`UPDATE users SET password_hash = ? WHERE email = ?`, passwordHash, email); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// DeleteWithAnimals deletes the user's animals and the user row atomically.
// Either both deletes commit or neither does.
func (r *userRepository) DeleteWithAnimals(email string) ([]int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var userID int64
	err = tx.QueryRow(`SELECT id FROM users WHERE email = ?`, email).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	rows, err := tx.Query(`SELECT id FROM animals WHERE owner_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owned animals: %w", err)
	}
	var animalIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan animal id: %w", err)
		}
		animalIDs = append(animalIDs, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating animal ids: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM animals WHERE owner_id = ?`, userID); err != nil {
		return nil, fmt.Errorf("failed to delete owned animals: %w", err)
	}

	result, err := tx.Exec(`DELETE FROM users WHERE id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return nil, ErrUserNotFound
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit deletion: %w", err)
	}

	return animalIDs, nil
}
