package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"petmatch-be/internal/cache"
	"petmatch-be/internal/entities"
	"petmatch-be/internal/models"
	"petmatch-be/internal/repository"
	"petmatch-be/internal/storage"
)

var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

var (
	ErrNoImage            = errors.New("no image file provided")
	ErrFileTypeNotAllowed = errors.New("file type not allowed")
	ErrFileTooLarge       = errors.New("file exceeds the upload size limit")
)

const animalCacheTTL = 1 * time.Hour

func animalCacheKey(id int64) string {
	return fmt.Sprintf("animal:%d", id)
}

// AnimalService defines the interface for listing business logic
type AnimalService interface {
	Create(ownerEmail, name string, description *string, file *multipart.FileHeader) (*models.CreateAnimalResponse, error)
	Search(query, species, sex, baseURL string) ([]*models.AnimalResponse, error)
	Get(id int64, baseURL string) (*models.AnimalResponse, error)
}

type animalService struct {
	animalRepo     repository.AnimalRepository
	userRepo       repository.UserRepository
	files          storage.FileStore
	cache          cache.Cache
	maxUploadBytes int64
	ctx            context.Context
}

// NewAnimalService creates a new animal service. A zero maxUploadBytes
// disables the size cap.
func NewAnimalService(animalRepo repository.AnimalRepository, userRepo repository.UserRepository, files storage.FileStore, cacheClient cache.Cache, maxUploadBytes int64) AnimalService {
	return &animalService{
		animalRepo:     animalRepo,
		userRepo:       userRepo,
		files:          files,
		cache:          cacheClient,
		maxUploadBytes: maxUploadBytes,
		ctx:            context.Background(),
	}
}

// Create stores the uploaded image and inserts the listing owned by the
// authenticated user.
func (s *animalService) Create(ownerEmail, name string, description *string, file *multipart.FileHeader) (*models.CreateAnimalResponse, error) {
	if file == nil || file.Filename == "" {
		return nil, ErrNoImage
	}

	if !allowedImageExts[strings.ToLower(filepath.Ext(file.Filename))] {
		return nil, ErrFileTypeNotAllowed
	}

	// Gin's multipart memory limit only bounds the parse buffer; the
	// hard cap on the upload itself is enforced here.
	if s.maxUploadBytes > 0 && file.Size > s.maxUploadBytes {
		return nil, ErrFileTooLarge
	}

	owner, err := s.userRepo.FindByEmail(ownerEmail)
	if err != nil {
		return nil, err
	}

	storedName, err := s.files.Save(file)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	// The file write and the row insert are not atomic: a failure here
	// leaves an orphaned image on disk. Known gap, accepted for now.
	if _, err := s.animalRepo.Create(name, description, &storedName, nil, nil, &owner.ID); err != nil {
		return nil, err
	}

	return &models.CreateAnimalResponse{
		Message: "Animal registered successfully!",
		Image:   storedName,
	}, nil
}

// Search runs the filter and derives the public image URL for each match.
// No match is an empty list, not an error.
func (s *animalService) Search(query, species, sex, baseURL string) ([]*models.AnimalResponse, error) {
	animals, err := s.animalRepo.Search(query, species, sex)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.AnimalResponse, 0, len(animals))
	for _, animal := range animals {
		responses = append(responses, toAnimalResponse(animal, baseURL))
	}
	return responses, nil
}

// Get fetches a single listing, preferring the cache over the store
func (s *animalService) Get(id int64, baseURL string) (*models.AnimalResponse, error) {
	if s.cache != nil {
		var cached entities.Animal
		if err := s.cache.GetJSON(s.ctx, animalCacheKey(id), &cached); err == nil {
			return toAnimalResponse(&cached, baseURL), nil
		}
	}

	animal, err := s.animalRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(s.ctx, animalCacheKey(id), animal, animalCacheTTL); err != nil {
			log.Printf("Warning: failed to cache animal %d: %v", id, err)
		}
	}

	return toAnimalResponse(animal, baseURL), nil
}

// toAnimalResponse derives image_url: an absolute reference is used
// verbatim, a stored filename is joined onto the request's base origin,
// and no reference yields null.
func toAnimalResponse(animal *entities.Animal, baseURL string) *models.AnimalResponse {
	resp := &models.AnimalResponse{
		ID:          animal.ID,
		Name:        animal.Name,
		Description: animal.Description,
		ImagePath:   animal.ImagePath,
		Species:     animal.Species,
		Sex:         animal.Sex,
		OwnerID:     animal.OwnerID,
		CreatedAt:   animal.CreatedAt,
	}

	if animal.ImagePath != nil && *animal.ImagePath != "" {
		if strings.HasPrefix(*animal.ImagePath, "http") {
			resp.ImageURL = animal.ImagePath
		} else {
			url := fmt.Sprintf("%s/api/uploads/%s", strings.TrimRight(baseURL, "/"), *animal.ImagePath)
			resp.ImageURL = &url
		}
	}

	return resp
}
