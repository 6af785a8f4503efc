package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/ironpeak-gym/internal/httperr"
	"github.com/BruksfildServices01/ironpeak-gym/internal/models"
	"github.com/BruksfildServices01/ironpeak-gym/internal/validators"
)

type ContactHandler struct {
	db *gorm.DB
}

func NewContactHandler(db *gorm.DB) *ContactHandler {
	return &ContactHandler{db: db}
}

type CreateContactRequest struct {
	Name    string  `json:"name" binding:"required,max=100"`
	Email   string  `json:"email" binding:"required,gym_email"`
	Phone   *string `json:"phone" binding:"omitempty,max=30"`
	Message string  `json:"message" binding:"required,max=5000"`
}

type UpdateContactRequest struct {
	Status string `json:"status" binding:"required,contact_status"`
}

func (h *ContactHandler) List(c *gin.Context) {
	status, ok := enumFilter(c, "status", func(s string) bool { return models.ContactStatus(s).Valid() })
	if !ok {
		respondCode(c, "invalid_status")
		return
	}

	q := h.db.WithContext(c.Request.Context())
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var contacts []models.Contact
	if err := q.Order("created_at DESC").Find(&contacts).Error; err != nil {
		respondListError(c, err, "failed_to_fetch_contacts", "Failed to fetch contacts")
		return
	}

	c.JSON(http.StatusOK, contacts)
}

func (h *ContactHandler) Create(c *gin.Context) {
	var req CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Name, email, and message are required")
		return
	}

	contact := models.Contact{
		Name:    strings.TrimSpace(req.Name),
		Email:   validators.NormalizeEmail(req.Email),
		Phone:   nonEmpty(req.Phone),
		Message: strings.TrimSpace(req.Message),
		Status:  models.ContactUnread,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&contact).Error; err != nil {
		respondError(c, err, "failed_to_submit_contact", "Failed to submit contact form")
		return
	}

	c.JSON(http.StatusCreated, contact)
}

func (h *ContactHandler) UpdateStatus(c *gin.Context) {
	var req UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondCode(c, "invalid_status")
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var contact models.Contact
	if err := db.Where("id = ?", c.Param("id")).First(&contact).Error; err != nil {
		if isNotFound(err) {
			respondCode(c, "contact_not_found")
			return
		}
		respondError(c, err, "failed_to_update_contact", "Failed to update contact")
		return
	}

	if err := db.Model(&contact).Update("status", req.Status).Error; err != nil {
		respondError(c, err, "failed_to_update_contact", "Failed to update contact")
		return
	}
	contact.Status = models.ContactStatus(req.Status)

	c.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) Delete(c *gin.Context) {
	res := h.db.WithContext(c.Request.Context()).
		Where("id = ?", c.Param("id")).
		Delete(&models.Contact{})
	if res.Error != nil {
		respondError(c, res.Error, "failed_to_delete_contact", "Failed to delete contact")
		return
	}
	if res.RowsAffected == 0 {
		respondCode(c, "contact_not_found")
		return
	}

	success(c)
}

