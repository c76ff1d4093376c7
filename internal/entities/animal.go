package entities

import "time"

// Animal represents an adoption listing entity in the database
type Animal struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	ImagePath   *string   `json:"image_path"` // Stored filename or an absolute external URL
	Species     *string   `json:"species"`
	Sex         *string   `json:"sex"`
	OwnerID     *int64    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}
