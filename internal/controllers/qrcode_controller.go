package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"petmatch-be/internal/repository"
	"petmatch-be/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
)

type QRCodeController struct {
	animalService service.AnimalService
	frontendURL   string
}

func NewQRCodeController(animalService service.AnimalService, frontendURL string) *QRCodeController {
	return &QRCodeController{
		animalService: animalService,
		frontendURL:   strings.TrimRight(frontendURL, "/"),
	}
}

// GenerateQRCode handles GET /api/animals/:id/qrcode - generates a QR code
// pointing at the listing's profile page, for adoption posters.
func (qc *QRCodeController) GenerateQRCode(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Animal not found"})
		return
	}

	if _, err := qc.animalService.Get(id, qc.frontendURL); err != nil {
		if errors.Is(err, repository.ErrAnimalNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Animal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	profileURL := fmt.Sprintf("%s/animals/%d", qc.frontendURL, id)

	// 256x256 pixels, medium error recovery
	qrCode, err := qrcode.New(profileURL, qrcode.Medium)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate QR code"})
		return
	}

	pngData, err := qrCode.PNG(256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate QR code image"})
		return
	}

	c.Header("Content-Disposition", "inline; filename=qrcode.png")
	c.Data(http.StatusOK, "image/png", pngData)
}
