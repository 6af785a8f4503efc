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
	"github.com/BruksfildServices01/ironpeak-gym/internal/validators"
)

type TrainerHandler struct {
	db       *gorm.DB
	audit    *audit.Dispatcher
	uploader *media.Uploader
}

func NewTrainerHandler(db *gorm.DB, audit *audit.Dispatcher, uploader *media.Uploader) *TrainerHandler {
	return &TrainerHandler{db: db, audit: audit, uploader: uploader}
}

// --------- Requests ---------

type CreateTrainerRequest struct {
	Name       string   `json:"name" binding:"required,max=100"`
	Email      string   `json:"email" binding:"required,gym_email"`
	Phone      *string  `json:"phone" binding:"omitempty,max=30"`
	Specialty  []string `json:"specialty"`
	Bio        *string  `json:"bio"`
	Image      *string  `json:"image" binding:"omitempty,max=512"`
	Experience *int     `json:"experience" binding:"omitempty,gte=0"`
	Rating     *float64 `json:"rating" binding:"omitempty,gte=0,lte=5"`
}

type UpdateTrainerRequest struct {
	Name       *string  `json:"name" binding:"omitempty,min=1,max=100"`
	Email      *string  `json:"email" binding:"omitempty,gym_email"`
	Phone      *string  `json:"phone" binding:"omitempty,max=30"`
	Specialty  []string `json:"specialty"`
	Bio        *string  `json:"bio"`
	Image      *string  `json:"image" binding:"omitempty,max=512"`
	Experience *int     `json:"experience" binding:"omitempty,gte=0"`
	Rating     *float64 `json:"rating" binding:"omitempty,gte=0,lte=5"`
}

type TrainerWithCount struct {
	models.Trainer
	ClassCount int64 `json:"classCount"`
}

// --------- Handlers ---------

func (h *TrainerHandler) List(c *gin.Context) {
	db := h.db.WithContext(c.Request.Context())

	var trainers []models.Trainer
	if err := db.Order("rating DESC").Find(&trainers).Error; err != nil {
		respondListError(c, err, "failed_to_fetch_trainers", "Failed to fetch trainers")
		return
	}

	ids := make([]string, 0, len(trainers))
	for _, t := range trainers {
		ids = append(ids, t.ID)
	}
	counts, err := countBy(db, &models.GymClass{}, "trainer_id", ids)
	if err != nil {
		respondListError(c, err, "failed_to_fetch_trainers", "Failed to fetch trainers")
		return
	}

	out := make([]TrainerWithCount, 0, len(trainers))
	for _, t := range trainers {
		out = append(out, TrainerWithCount{Trainer: t, ClassCount: counts[t.ID]})
	}
	c.JSON(http.StatusOK, out)
}

func (h *TrainerHandler) Create(c *gin.Context) {
	var req CreateTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Name and email are required")
		return
	}

	trainer := models.Trainer{
		Name:       strings.TrimSpace(req.Name),
		Email:      validators.NormalizeEmail(req.Email),
		Phone:      nonEmpty(req.Phone),
		Specialty:  models.StringList(req.Specialty),
		Bio:        req.Bio,
		Image:      nonEmpty(req.Image),
		Experience: 1,
		Rating:     5.0,
	}
	if req.Experience != nil {
		trainer.Experience = *req.Experience
	}
	if req.Rating != nil {
		trainer.Rating = *req.Rating
	}

	if err := h.db.WithContext(c.Request.Context()).
		Omit(clause.Associations).
		Create(&trainer).Error; err != nil {
		respondError(c, err, "failed_to_create_trainer", "Failed to create trainer")
		return
	}

	h.audit.Dispatch(audit.Event{Action: "trainer_created", Entity: "trainer", EntityID: &trainer.ID})

	c.JSON(http.StatusCreated, trainer)
}

func (h *TrainerHandler) Get(c *gin.Context) {
	var trainer models.Trainer
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Classes").
		Where("id = ?", c.Param("id")).
		First(&trainer).Error; err != nil {
		if isNotFound(err) {
			respondCode(c, "trainer_not_found")
			return
		}
		respondListError(c, err, "failed_to_fetch_trainer", "Failed to fetch trainer")
		return
	}

	c.JSON(http.StatusOK, TrainerWithCount{Trainer: trainer, ClassCount: int64(len(trainer.Classes))})
}

func (h *TrainerHandler) Update(c *gin.Context) {
	var req UpdateTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid trainer update")
		return
	}

	trainer, ok := h.load(c)
	if !ok {
		return
	}

	if req.Name != nil {
		trainer.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		trainer.Email = validators.NormalizeEmail(*req.Email)
	}
	if req.Phone != nil {
		trainer.Phone = nonEmpty(req.Phone)
	}
	if req.Specialty != nil {
		trainer.Specialty = models.StringList(req.Specialty)
	}
	if req.Bio != nil {
		trainer.Bio = req.Bio
	}
	if req.Image != nil {
		trainer.Image = nonEmpty(req.Image)
	}
	if req.Experience != nil {
		trainer.Experience = *req.Experience
	}
	if req.Rating != nil {
		trainer.Rating = *req.Rating
	}

	if err := h.db.WithContext(c.Request.Context()).
		Omit(clause.Associations).
		Save(trainer).Error; err != nil {
		respondError(c, err, "failed_to_update_trainer", "Failed to update trainer")
		return
	}

	c.JSON(http.StatusOK, trainer)
}

// Delete removes the trainer with every class they teach, and those classes'
// bookings and schedules.
func (h *TrainerHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		classIDs := tx.Model(&models.GymClass{}).Select("id").Where("trainer_id = ?", id)

		if err := tx.Where("class_id IN (?)", classIDs).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		if err := tx.Where("class_id IN (?)", classIDs).Delete(&models.Schedule{}).Error; err != nil {
			return err
		}
		if err := tx.Where("trainer_id = ?", id).Delete(&models.GymClass{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", id).Delete(&models.Trainer{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness("trainer_not_found")
		}
		return nil
	})
	if err != nil {
		respondError(c, err, "failed_to_delete_trainer", "Failed to delete trainer")
		return
	}

	h.audit.Dispatch(audit.Event{Action: "trainer_deleted", Entity: "trainer", EntityID: &id})

	success(c)
}

func (h *TrainerHandler) UploadImage(c *gin.Context) {
	trainer, ok := h.load(c)
	if !ok {
		return
	}

	url, err := readImage(c, h.uploader, "trainers", trainer.ID)
	if err != nil {
		respondError(c, err, "failed_to_upload_image", "Failed to upload image")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(trainer).
		Update("image", url).Error; err != nil {
		respondError(c, err, "failed_to_update_trainer", "Failed to update trainer")
		return
	}
	trainer.Image = &url

	c.JSON(http.StatusOK, trainer)
}

func (h *TrainerHandler) load(c *gin.Context) (*models.Trainer, bool) {
	var trainer models.Trainer
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ?", c.Param("id")).
		First(&trainer).Error; err != nil {
		if isNotFound(err) {
			respondCode(c, "trainer_not_found")
			return nil, false
		}
		respondError(c, err, "failed_to_fetch_trainer", "Failed to fetch trainer")
		return nil, false
	}
	return &trainer, true
}
