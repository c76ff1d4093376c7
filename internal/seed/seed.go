package seed

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type demoAnimal struct {
	Name        string
	Description string
	ImagePath   string
	Species     string
	Sex         string
}

var demoAnimals = []demoAnimal{
	{"Luna", "Siamese cat, 2 years old. Gentle and affectionate.", "Luna.jpg", "Gato", "Fêmea"},
	{"Max", "Labrador dog, 1 year old. Very playful.", "Max.jpg", "Cachorro", "Macho"},
	{"Bella", "Poodle dog, 3 years old. Loves children.", "Bella.jpg", "Cachorro", "Fêmea"},
	{"Oliver", "Persian cat, 1 year old. Very calm.", "Oliver.jpg", "Gato", "Macho"},
	{"Sophie", "Mixed-breed dog, 2 years old. The ideal companion.", "Sophie.jpg", "Cachorro", "Fêmea"},
	{"Luana", "Golden Retriever dog, 2 years old. Playful and loving.", "Luana.jpg", "Cachorro", "Fêmea"},
	{"Simba", "Orange tabby cat, 3 years old. Curious and independent.", "Simba.jpg", "Gato", "Macho"},
	{"Thor", "German Shepherd dog, 5 years old. Protective and loyal.", "Thor.jpg", "Cachorro", "Macho"},
}

const defaultOwnerEmail = "admin@example.com"

// Run inserts the demo animals, owned by a default account that is
// created on first use. Reruns update the existing rows instead of
// duplicating them.
func Run(db *sql.DB) error {
	ownerID, err := ensureDefaultOwner(db)
	if err != nil {
		return err
	}

	inserted := 0
	for _, animal := range demoAnimals {
		var existingID int64
		err := db.QueryRow(
			`SELECT id FROM animals WHERE name = ? AND species = ?`,
			animal.Name, animal.Species,
		).Scan(&existingID)

		switch err {
		case nil:
			_, err = db.Exec(`
				UPDATE animals SET description = ?, image_path = ?, sex = ?
				WHERE id = ?
			`, animal.Description, animal.ImagePath, animal.Sex, existingID)
			if err != nil {
				return fmt.Errorf("failed to update demo animal %s: %w", animal.Name, err)
			}
		case sql.ErrNoRows:
			_, err = db.Exec(`
				INSERT INTO animals (name, description, image_path, species, sex, owner_id)
				VALUES (?, ?, ?, ?, ?, ?)
			`, animal.Name, animal.Description, animal.ImagePath, animal.Species, animal.Sex, ownerID)
			if err != nil {
				return fmt.Errorf("failed to insert demo animal %s: %w", animal.Name, err)
			}
			inserted++
		default:
			return fmt.Errorf("failed to check demo animal %s: %w", animal.Name, err)
		}
	}

	log.Printf("Seed finished: %d new demo animals inserted", inserted)
	return nil
}

// ensureDefaultOwner returns the id of the seed account, creating it with
// an unguessable random password when absent. The account only exists to
// own the demo listings.
func ensureDefaultOwner(db *sql.DB) (int64, error) {
	var id int64
	err := db.QueryRow(`SELECT id FROM users WHERE email = ?`, defaultOwnerEmail).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("failed to look up seed owner: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.New().String()), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("failed to hash seed password: %w", err)
	}

	result, err := db.Exec(`
		INSERT INTO users (name, email, password_hash)
		VALUES (?, ?, ?)
	`, "Administrator", defaultOwnerEmail, string(hash))
	if err != nil {
		return 0, fmt.Errorf("failed to create seed owner: %w", err)
	}

	return result.LastInsertId()
}
