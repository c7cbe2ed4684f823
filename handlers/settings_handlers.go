package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/D6nnisAd/Celeste-Emerald/models"
	"github.com/D6nnisAd/Celeste-Emerald/store"
)

// SettingsAccess is the singleton settings record, read and overwritten
// wholesale.
type SettingsAccess interface {
	Get(ctx context.Context) (*models.Settings, error)
	Save(ctx context.Context, settings *models.Settings) error
}

type SettingsHandlers struct {
	Settings SettingsAccess
}

func NewSettingsHandlers(settings SettingsAccess) *SettingsHandlers {
	return &SettingsHandlers{Settings: settings}
}

// GetSettings returns the global settings record. Before the first save no
// record exists; the dashboard then renders zero-value defaults.
func (h *SettingsHandlers) GetSettings(c *gin.Context) {
	settings, err := h.Settings.Get(c.Request.Context())
	if err != nil {
		if errors.Is(err, store.ErrSettingsNotFound) {
			log.Println("No settings record found. It will be created on first save.")
			c.JSON(http.StatusOK, &models.Settings{})
			return
		}
		log.Printf("Error loading settings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// SaveSettings overwrites the settings record with the submitted fields and
// a fresh update timestamp.
func (h *SettingsHandlers) SaveSettings(c *gin.Context) {
	var req models.SaveSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	settings := &models.Settings{
		EnablePaystack: req.EnablePaystack,
		SupportLink:    req.SupportLink,
		BankName:       req.BankName,
		AccountNumber:  req.AccountNumber,
		AccountName:    req.AccountName,
	}

	if err := h.Settings.Save(c.Request.Context(), settings); err != nil {
		log.Printf("Error saving settings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving settings: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Settings saved", "settings": settings})
}
