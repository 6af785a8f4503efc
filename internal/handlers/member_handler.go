package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/ironpeak-gym/internal/audit"
	"github.com/BruksfildServices01/ironpeak-gym/internal/domain/membership"
	"github.com/BruksfildServices01/ironpeak-gym/internal/httperr"
	"github.com/BruksfildServices01/ironpeak-gym/internal/models"
	"github.com/BruksfildServices01/ironpeak-gym/internal/validators"
)

type MemberHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewMemberHandler(db *gorm.DB, audit *audit.Dispatcher) *MemberHandler {
	return &MemberHandler{db: db, audit: audit, now: time.Now}
}

// --------- Requests ---------

type CreateMemberRequest struct {
	Name  string  `json:"name" binding:"required,max=100"`
	Email string  `json:"email" binding:"required,gym_email"`
	Phone *string `json:"phone" binding:"omitempty,max=30"`
	Plan  string  `json:"plan" binding:"omitempty,plan"`
}

type UpdateMemberRequest struct {
	Name      *string    `json:"name" binding:"omitempty,min=1,max=100"`
	Email     *string    `json:"email" binding:"omitempty,gym_email"`
	Phone     *string    `json:"phone" binding:"omitempty,max=30"`
	Plan      *string    `json:"plan" binding:"omitempty,plan"`
	Status    *string    `json:"status" binding:"omitempty,member_status"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

// --------- Responses ---------

type MemberWithCount struct {
	models.Member
	BookingCount int64 `json:"bookingCount"`
}

// --------- Handlers ---------

func (h *MemberHandler) List(c *gin.Context) {
	plan, ok := enumFilter(c, "plan", func(s string) bool { return models.Plan(s).Valid() })
	if !ok {
		respondCode(c, "invalid_plan")
		return
	}
	status, ok := enumFilter(c, "status", func(s string) bool { return models.MemberStatus(s).Valid() })
	if !ok {
		respondCode(c, "invalid_status")
		return
	}

	q := h.db.WithContext(c.Request.Context()).Model(&models.Member{})
	if plan != "" {
		q = q.Where("plan = ?", plan)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if search := strings.ToLower(strings.TrimSpace(c.Query("search"))); search != "" {
		like := "%" + search + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	var members []models.Member
	if err := q.Order("created_at DESC").Find(&members).Error; err != nil {
		respondListError(c, err, "failed_to_fetch_members", "Failed to fetch members")
		return
	}

	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}
	counts, err := countBy(h.db.WithContext(c.Request.Context()), &models.Booking{}, "member_id", ids)
	if err != nil {
		respondListError(c, err, "failed_to_fetch_members", "Failed to fetch members")
		return
	}

	out := make([]MemberWithCount, 0, len(members))
	for _, m := range members {
		out = append(out, MemberWithCount{Member: m, BookingCount: counts[m.ID]})
	}

	c.JSON(http.StatusOK, out)
}

func (h *MemberHandler) Create(c *gin.Context) {
	var req CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Name and email are required")
		return
	}

	plan := models.PlanStarter
	if req.Plan != "" {
		plan = models.Plan(req.Plan)
	}

	expiresAt := membership.PeriodEnd(h.now())
	member := models.Member{
		Name:      strings.TrimSpace(req.Name),
		Email:     validators.NormalizeEmail(req.Email),
		Phone:     nonEmpty(req.Phone),
		Plan:      plan,
		Status:    models.MemberActive,
		ExpiresAt: &expiresAt,
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Member{}).
			Where("email = ?", member.Email).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return httperr.ErrBusiness("email_already_registered")
		}
		return tx.Omit(clause.Associations).Create(&member).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = httperr.ErrBusiness("email_already_registered")
	}
	if err != nil {
		respondError(c, err, "failed_to_create_member", "Failed to create member")
		return
	}

	h.audit.Dispatch(audit.Event{Action: "member_created", Entity: "member", EntityID: &member.ID})

	c.JSON(http.StatusCreated, member)
}

func (h *MemberHandler) Get(c *gin.Context) {
	db := h.db.WithContext(c.Request.Context())

	var member models.Member
	if err := db.
		Preload("Bookings", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at DESC").Limit(10)
		}).
		Preload("Bookings.GymClass").
		Preload("Bookings.Schedule").
		Where("id = ?", c.Param("id")).
		First(&member).Error; err != nil {
		if isNotFound(err) {
			respondCode(c, "member_not_found")
			return
		}
		respondListError(c, err, "failed_to_fetch_member", "Failed to fetch member")
		return
	}

	var total int64
	if err := db.Model(&models.Booking{}).
		Where("member_id = ?", member.ID).
		Count(&total).Error; err != nil {
		respondListError(c, err, "failed_to_fetch_member", "Failed to fetch member")
		return
	}

	c.JSON(http.StatusOK, MemberWithCount{Member: member, BookingCount: total})
}

func (h *MemberHandler) Update(c *gin.Context) {
	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid member update")
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var member models.Member
	if err := db.Where("id = ?", c.Param("id")).First(&member).Error; err != nil {
		if isNotFound(err) {
			respondCode(c, "member_not_found")
			return
		}
		respondError(c, err, "failed_to_update_member", "Failed to update member")
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		email := validators.NormalizeEmail(*req.Email)
		if email != member.Email {
			var taken int64
			if err := db.Model(&models.Member{}).
				Where("email = ? AND id <> ?", email, member.ID).
				Count(&taken).Error; err != nil {
				respondError(c, err, "failed_to_update_member", "Failed to update member")
				return
			}
			if taken > 0 {
				respondCode(c, "email_already_registered")
				return
			}
		}
		updates["email"] = email
	}
	if req.Phone != nil {
		updates["phone"] = nonEmpty(req.Phone)
	}
	if req.Plan != nil {
		updates["plan"] = *req.Plan
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.ExpiresAt != nil {
		updates["expires_at"] = *req.ExpiresAt
	}

	if len(updates) > 0 {
		err := db.Model(&member).Updates(updates).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			err = httperr.ErrBusiness("email_already_registered")
		}
		if err != nil {
			respondError(c, err, "failed_to_update_member", "Failed to update member")
			return
		}
	}

	if err := db.Where("id = ?", member.ID).First(&member).Error; err != nil {
		respondError(c, err, "failed_to_update_member", "Failed to update member")
		return
	}

	h.audit.Dispatch(audit.Event{Action: "member_updated", Entity: "member", EntityID: &member.ID, Metadata: updates})

	c.JSON(http.StatusOK, member)
}

// Delete removes the member and their bookings together.
func (h *MemberHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("member_id = ?", id).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Member{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness("member_not_found")
		}
		return nil
	})
	if err != nil {
		respondError(c, err, "failed_to_delete_member", "Failed to delete member")
		return
	}

	h.audit.Dispatch(audit.Event{Action: "member_deleted", Entity: "member", EntityID: &id})

	success(c)
}

// --------- Helpers ---------

// countBy returns COUNT(*) of model rows grouped by column, for the given keys.
func countBy(db *gorm.DB, model any, column string, keys []string) (map[string]int64, error) {
	out := make(map[string]int64, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	var rows []struct {
		GroupKey string
		Total    int64
	}
	if err := db.Model(model).
		Select(column+" AS group_key, COUNT(*) AS total").
		Where(column+" IN ?", keys).
		Group(column).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, r := range rows {
		out[r.GroupKey] = r.Total
	}
	return out, nil
}

func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
