package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/ironpeak-gym/internal/audit"
	"github.com/BruksfildServices01/ironpeak-gym/internal/httperr"
	"github.com/BruksfildServices01/ironpeak-gym/internal/media"
	"github.com/BruksfildServices01/ironpeak-gym/internal/models"
)

type ClassHandler struct {
	db       *gorm.DB
	audit    *audit.Dispatcher
	uploader *media.Uploader
}

func NewClassHandler(db *gorm.DB, audit *audit.Dispatcher, uploader *media.Uploader) *ClassHandler {
	return &ClassHandler{db: db, audit: audit, uploader: uploader}
}

// --------- Requests ---------

type CreateClassRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description *string `json:"description"`
	TrainerID   string  `json:"trainerId" binding:"required"`
	MaxSpots    *int    `json:"maxSpots" binding:"omitempty,gt=0"`
	Duration    *int    `json:"duration" binding:"omitempty,gt=0"`
	Category    string  `json:"category" binding:"omitempty,category"`
	Image       *string `json:"image" binding:"omitempty,max=512"`
}

type UpdateClassRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
	TrainerID   *string `json:"trainerId" binding:"omitempty,min=1"`
	MaxSpots    *int    `json:"maxSpots" binding:"omitempty,gt=0"`
	Duration    *int    `json:"duration" binding:"omitempty,gt=0"`
	Category    *string `json:"category" binding:"omitempty,category"`
	Image       *string `json:"image" binding:"omitempty,max=512"`
}

type ClassWithCount struct {
	models.GymClass
	BookingCount int64 `json:"bookingCount"`
}

// --------- Handlers ---------

func (h *ClassHandler) List(c *gin.Context) {
	category, ok := enumFilter(c, "category", func(s string) bool { return models.Category(s).Valid() })
	if !ok {
		respondCode(c, "invalid_category")
		return
	}

	db := h.db.WithContext(c.Request.Context())

	q := db.
		Preload("Trainer", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "name", "image")
		}).
		Preload("Schedules")
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var classes []models.GymClass
	if err := q.Order("created_at DESC").Find(&classes).Error; err != nil {
		respondListError(c, err, "failed_to_fetch_classes", "Failed to fetch classes")
		return
	}

	ids := make([]string, 0, len(classes))
	for _, g := range classes {
		ids = append(ids, g.ID)
	}
	counts, err := countBy(db, &models.Booking{}, "class_id", ids)
	if err != nil {
		respondListError(c, err, "failed_to_fetch_classes", "Failed to fetch classes")
		return
	}

	out := make([]ClassWithCount, 0, len(classes))
	for _, g := range classes {
		out = append(out, ClassWithCount{GymClass: g, BookingCount: counts[g.ID]})
	}
	c.JSON(http.StatusOK, out)
}

func (h *ClassHandler) Create(c *gin.Context) {
	var req CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Name and trainer are required")
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var trainer models.Trainer
	if err := db.Where("id = ?", req.TrainerID).First(&trainer).Error; err != nil {
		if isNotFound(err) {
			respondCode(c, "trainer_not_found")
			return
		}
		respondError(c, err, "failed_to_create_class", "Failed to create class")
		return
	}

	class := models.GymClass{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		TrainerID:   trainer.ID,
		MaxSpots:    20,
		Duration:    60,
		Category:    models.CategoryStrength,
		Image:       nonEmpty(req.Image),
	}
	if req.MaxSpots != nil {
		class.MaxSpots = *req.MaxSpots
	}
	if req.Duration != nil {
		class.Duration = *req.Duration
	}
	if req.Category != "" {
		class.Category = models.Category(req.Category)
	}

	if err := db.Omit(clause.Associations).Create(&class).Error; err != nil {
		respondError(c, err, "failed_to_create_class", "Failed to create class")
		return
	}
	class.Trainer = &trainer

	h.audit.Dispatch(audit.Event{Action: "class_created", Entity: "class", EntityID: &class.ID})

	c.JSON(http.StatusCreated, class)
}

func (h *ClassHandler) Get(c *gin.Context) {
	db := h.db.WithContext(c.Request.Context())

	var class models.GymClass
	if err := db.
		Preload("Trainer").
		Preload("Schedules").
		Where("id = ?", c.Param("id")).
		First(&class).Error; err != nil {
		if isNotFound(err) {
			respondCode(c, "class_not_found")
			return
		}
		respondListError(c, err, "failed_to_fetch_class", "Failed to fetch class")
		return
	}

	var total int64
	if err := db.Model(&models.Booking{}).Where("class_id = ?", class.ID).Count(&total).Error; err != nil {
		respondListError(c, err, "failed_to_fetch_class", "Failed to fetch class")
		return
	}

	c.JSON(http.StatusOK, ClassWithCount{GymClass: class, BookingCount: total})
}

func (h *ClassHandler) Update(c *gin.Context) {
	var req UpdateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid class update")
		return
	}

	class, ok := h.load(c)
	if !ok {
		return
	}

	db := h.db.WithContext(c.Request.Context())

	if req.TrainerID != nil && *req.TrainerID != class.TrainerID {
		var n int64
		if err := db.Model(&models.Trainer{}).Where("id = ?", *req.TrainerID).Count(&n).Error; err != nil {
			respondError(c, err, "failed_to_update_class", "Failed to update class")
			return
		}
		if n == 0 {
			respondCode(c, "trainer_not_found")
			return
		}
		class.TrainerID = *req.TrainerID
	}
	if req.Name != nil {
		class.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		class.Description = req.Description
	}
	if req.MaxSpots != nil {
		class.MaxSpots = *req.MaxSpots
	}
	if req.Duration != nil {
		class.Duration = *req.Duration
	}
	if req.Category != nil {
		class.Category = models.Category(*req.Category)
	}
	if req.Image != nil {
		class.Image = nonEmpty(req.Image)
	}

	if err := db.Omit(clause.Associations).Save(class).Error; err != nil {
		respondError(c, err, "failed_to_update_class", "Failed to update class")
		return
	}

	c.JSON(http.StatusOK, class)
}

// Delete removes bookings, then schedules, then the class.
func (h *ClassHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("class_id = ?", id).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		if err := tx.Where("class_id = ?", id).Delete(&models.Schedule{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.GymClass{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness("class_not_found")
		}
		return nil
	})
	if err != nil {
		respondError(c, err, "failed_to_delete_class", "Failed to delete class")
		return
	}

	h.audit.Dispatch(audit.Event{Action: "class_deleted", Entity: "class", EntityID: &id})

	success(c)
}

func (h *ClassHandler) UploadImage(c *gin.Context) {
	class, ok := h.load(c)
	if !ok {
		return
	}

	url, err := readImage(c, h.uploader, "classes", class.ID)
	if err != nil {
		respondError(c, err, "failed_to_upload_image", "Failed to upload image")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(class).
		Update("image", url).Error; err != nil {
		respondError(c, err, "failed_to_update_class", "Failed to update class")
		return
	}
	class.Image = &url

	c.JSON(http.StatusOK, class)
}

func (h *ClassHandler) load(c *gin.Context) (*models.GymClass, bool) {
	var class models.GymClass
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ?", c.Param("id")).
		First(&class).Error; err != nil {
		if isNotFound(err) {
			respondCode(c, "class_not_found")
			return nil, false
		}
		respondError(c, err, "failed_to_fetch_class", "Failed to fetch class")
		return nil, false
	}
	return &class, true
}
