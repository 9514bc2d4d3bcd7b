package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/Tonkata28/imotiko-website/internal/database"
	"github.com/Tonkata28/imotiko-website/internal/models"

	"github.com/gin-gonic/gin"
)

// InquiryHandler serves inquiry submission
type InquiryHandler struct {
	db *database.GormDB
}

// NewInquiryHandler creates a new inquiry handler
func NewInquiryHandler(db *database.GormDB) *InquiryHandler {
	return &InquiryHandler{db: db}
}

// Create handles POST /api/inquiries. The response confirms receipt
// without echoing the stored record.
func (h *InquiryHandler) Create(c *gin.Context) {
	var req struct {
		PropertyID uint   `json:"property_id" binding:"required"`
		Name       string `json:"name" binding:"required,max=100"`
		Email      string `json:"email" binding:"required,email"`
		Phone      string `json:"phone" binding:"omitempty,max=20"`
		Message    string `json:"message" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err)})
		return
	}

	inquiry := models.Inquiry{
		PropertyID: req.PropertyID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Message:    req.Message,
	}

	if err := h.db.CreateInquiry(&inquiry); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		log.Printf("[Inquiries] Failed to save inquiry for property %d: %v", req.PropertyID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit inquiry"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Inquiry sent successfully!"})
}
