package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"petmatch-be/internal/middleware"
	"petmatch-be/internal/repository"
	"petmatch-be/internal/service"

	"github.com/gin-gonic/gin"
)

type AnimalController struct {
	animalService service.AnimalService
	baseURL       string // Optional override; derived from the request when empty
}

func NewAnimalController(animalService service.AnimalService, baseURL string) *AnimalController {
	return &AnimalController{
		animalService: animalService,
		baseURL:       baseURL,
	}
}

// Create handles POST /api/animals (multipart: image, name, description)
func (ac *AnimalController) Create(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No image file provided"})
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name is required"})
		return
	}

	var description *string
	if d := c.PostForm("description"); d != "" {
		description = &d
	}

	response, err := ac.animalService.Create(middleware.UserEmail(c), name, description, file)
	switch {
	case errors.Is(err, service.ErrNoImage):
		c.JSON(http.StatusBadRequest, gin.H{"message": "No image file provided"})
	case errors.Is(err, service.ErrFileTypeNotAllowed):
		c.JSON(http.StatusBadRequest, gin.H{"message": "File type not allowed"})
	case errors.Is(err, service.ErrFileTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"message": "File exceeds the upload size limit"})
	case errors.Is(err, repository.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusCreated, response)
	}
}

// List handles GET /api/animals?query=&species=&sex=
func (ac *AnimalController) List(c *gin.Context) {
	animals, err := ac.animalService.Search(
		c.Query("query"),
		c.Query("species"),
		c.Query("sex"),
		ac.requestBaseURL(c),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, animals)
}

// Get handles GET /api/animals/:id
func (ac *AnimalController) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Animal not found"})
		return
	}

	animal, err := ac.animalService.Get(id, ac.requestBaseURL(c))
	if errors.Is(err, repository.ErrAnimalNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Animal not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, animal)
}

func (ac *AnimalController) requestBaseURL(c *gin.Context) string {
	if ac.baseURL != "" {
		return ac.baseURL
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}
