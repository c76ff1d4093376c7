package models

import "time"

// AnimalResponse represents a listing: the stored row plus its derived public image URL
type AnimalResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	ImagePath   *string   `json:"image_path"`
	Species     *string   `json:"species"`
	Sex         *string   `json:"sex"`
	OwnerID     *int64    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	ImageURL    *string   `json:"image_url"`
}

// CreateAnimalResponse represents the response after registering an animal
type CreateAnimalResponse struct {
	Message string `json:"message"`
	Image   string `json:"image"` // Stored filename
}
