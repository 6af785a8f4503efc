package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/ironpeak-gym/internal/audit"
	"github.com/BruksfildServices01/ironpeak-gym/internal/httperr"
	"github.com/BruksfildServices01/ironpeak-gym/internal/models"
	"github.com/BruksfildServices01/ironpeak-gym/internal/validators"
)

// ScheduleHandler manages the weekly slots whose capacity booking admission enforces.
type ScheduleHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewScheduleHandler(db *gorm.DB, audit *audit.Dispatcher) *ScheduleHandler {
	return &ScheduleHandler{db: db, audit: audit}
}

type CreateScheduleRequest struct {
	DayOfWeek *int   `json:"dayOfWeek" binding:"required,gte=0,lte=6"`
	StartTime string `json:"startTime" binding:"required,hhmm"`
	EndTime   string `json:"endTime" binding:"required,hhmm"`
	IsActive  *bool  `json:"isActive"`
}

type UpdateScheduleRequest struct {
	DayOfWeek *int    `json:"dayOfWeek" binding:"omitempty,gte=0,lte=6"`
	StartTime *string `json:"startTime" binding:"omitempty,hhmm"`
	EndTime   *string `json:"endTime" binding:"omitempty,hhmm"`
	IsActive  *bool   `json:"isActive"`
}

func (h *ScheduleHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context())

	if classID := c.Query("classId"); classID != "" {
		q = q.Where("class_id = ?", classID)
	}
	if raw := c.Query("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_request", "active must be true or false")
			return
		}
		q = q.Where("is_active = ?", active)
	}

	var schedules []models.Schedule
	if err := q.Order("day_of_week ASC, start_time ASC").Find(&schedules).Error; err != nil {
		respondListError(c, err, "failed_to_fetch_schedules", "Failed to fetch schedules")
		return
	}

	c.JSON(http.StatusOK, schedules)
}

func (h *ScheduleHandler) Create(c *gin.Context) {
	var req CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Day of week, start time and end time are required")
		return
	}
	if !validators.StartsBefore(req.StartTime, req.EndTime) {
		respondCode(c, "invalid_time_range")
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var n int64
	if err := db.Model(&models.GymClass{}).Where("id = ?", c.Param("id")).Count(&n).Error; err != nil {
		respondError(c, err, "failed_to_create_schedule", "Failed to create schedule")
		return
	}
	if n == 0 {
		respondCode(c, "class_not_found")
		return
	}

	s := models.Schedule{
		ClassID:   c.Param("id"),
		DayOfWeek: *req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		IsActive:  true,
	}
	if req.IsActive != nil {
		s.IsActive = *req.IsActive
	}

	if err := db.Omit(clause.Associations).Create(&s).Error; err != nil {
		respondError(c, err, "failed_to_create_schedule", "Failed to create schedule")
		return
	}

	h.audit.Dispatch(audit.Event{Action: "schedule_created", Entity: "schedule", EntityID: &s.ID})

	c.JSON(http.StatusCreated, s)
}

func (h *ScheduleHandler) Update(c *gin.Context) {
	var req UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid schedule update")
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var s models.Schedule
	if err := db.Where("id = ?", c.Param("id")).First(&s).Error; err != nil {
		if isNotFound(err) {
			httperr.NotFound(c, "schedule_not_found", "Schedule not found")
			return
		}
		respondError(c, err, "failed_to_update_schedule", "Failed to update schedule")
		return
	}

	if req.DayOfWeek != nil {
		s.DayOfWeek = *req.DayOfWeek
	}
	if req.StartTime != nil {
		s.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		s.EndTime = *req.EndTime
	}
	if req.IsActive != nil {
		s.IsActive = *req.IsActive
	}
	if !validators.StartsBefore(s.StartTime, s.EndTime) {
		respondCode(c, "invalid_time_range")
		return
	}

	if err := db.Omit(clause.Associations).Save(&s).Error; err != nil {
		respondError(c, err, "failed_to_update_schedule", "Failed to update schedule")
		return
	}

	c.JSON(http.StatusOK, s)
}

// Delete refuses while any booking still references the schedule.
func (h *ScheduleHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var s models.Schedule
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&s).Error; err != nil {
			if isNotFound(err) {
				return httperr.ErrBusiness("schedule_not_found")
			}
			return err
		}

		var referenced int64
		if err := tx.Model(&models.Booking{}).Where("schedule_id = ?", id).Count(&referenced).Error; err != nil {
			return err
		}
		if referenced > 0 {
			return httperr.ErrBusiness("schedule_in_use")
		}

		return tx.Where("id = ?", id).Delete(&models.Schedule{}).Error
	})
	if httperr.IsBusiness(err, "schedule_not_found") {
		httperr.NotFound(c, "schedule_not_found", "Schedule not found")
		return
	}
	if err != nil {
		respondError(c, err, "failed_to_delete_schedule", "Failed to delete schedule")
		return
	}

	h.audit.Dispatch(audit.Event{Action: "schedule_deleted", Entity: "schedule", EntityID: &id})

	success(c)
}
