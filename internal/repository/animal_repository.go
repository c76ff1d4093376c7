package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"petmatch-be/internal/entities"
)

var ErrAnimalNotFound = errors.New("animal not found")

// Sentinels meaning "no filter" on species/sex dropdowns. The frontend
// historically sent both spellings.
var allSentinels = map[string]bool{
	"":      true,
	"all":   true,
	"todos": true,
}

// AnimalRepository defines the interface for animal database operations
type AnimalRepository interface {
	Create(name string, description, imagePath, species, sex *string, ownerID *int64) (*entities.Animal, error)
	// Search combines the optional criteria with AND and returns matches
	// newest-first. query is a case-insensitive substring match on name or
	// description; species and sex are case-insensitive exact matches,
	// skipped when empty or an "all" sentinel.
	Search(query, species, sex string) ([]*entities.Animal, error)
	FindByID(id int64) (*entities.Animal, error)
}

type animalRepository struct {
	db *sql.DB
}

// NewAnimalRepository creates a new animal repository
func NewAnimalRepository(db *sql.DB) AnimalRepository {
	return &animalRepository{db: db}
}

const animalColumns = `id, name, description, image_path, species, sex, owner_id, created_at`

// Create inserts a new animal into the database
func (r *animalRepository) Create(name string, description, imagePath, species, sex *string, ownerID *int64) (*entities.Animal, error) {
	result, err := r.db.Exec(`
		INSERT INTO animals (name, description, image_path, species, sex, owner_id)
		VALUES (?, ?, ?, ?, ?, ?)
	`, name, description, imagePath, species, sex, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to create animal: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted id: %w", err)
	}

	return r.FindByID(id)
}

// Search returns the animals matching the filter, ordered by descending id
func (r *animalRepository) Search(query, species, sex string) ([]*entities.Animal, error) {
	sqlQuery := `SELECT ` + animalColumns + ` FROM animals WHERE 1=1`
	var args []interface{}

	if q := strings.TrimSpace(query); q != "" {
		sqlQuery += ` AND (LOWER(name) LIKE ? OR LOWER(description) LIKE ?)`
		term := "%" + strings.ToLower(q) + "%"
		args = append(args, term, term)
	}

	if !allSentinels[strings.ToLower(species)] {
		sqlQuery += ` AND LOWER(species) = ?`
		args = append(args, strings.ToLower(species))
	}

	if !allSentinels[strings.ToLower(sex)] {
		sqlQuery += ` AND LOWER(sex) = ?`
		args = append(args, strings.ToLower(sex))
	}

	sqlQuery += ` ORDER BY id DESC`

	rows, err := r.db.Query(sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search animals: %w", err)
	}
	defer rows.Close()

	var animals []*entities.Animal
	for rows.Next() {
		animal, err := scanAnimal(rows.Scan)
		if err != nil {
			return nil, err
		}
		animals = append(animals, animal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating animals: %w", err)
	}

	return animals, nil
}

// FindByID finds an animal by id
func (r *animalRepository) FindByID(id int64) (*entities.Animal, error) {
	row := r.db.QueryRow(`SELECT `+animalColumns+` FROM animals WHERE id = ?`, id)

	animal, err := scanAnimal(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAnimalNotFound
	}
	if err != nil {
		return nil, err
	}
	return animal, nil
}

func scanAnimal(scan func(...interface{}) error) (*entities.Animal, error) {
	var animal entities.Animal
	err := scan(
		&animal.ID,
		&animal.Name,
		&animal.Description,
		&animal.ImagePath,
		&animal.Species,
		&animal.Sex,
		&animal.OwnerID,
		&animal.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan animal: %w", err)
	}
	return &animal, nil
}
