package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/ironpeak-gym/internal/httpresp"
	"github.com/BruksfildServices01/ironpeak-gym/internal/models"
	"github.com/BruksfildServices01/ironpeak-gym/internal/timezone"
)

const (
	auditDefaultLimit = 50
	auditMaxLimit     = 200
)

type AuditLogsHandler struct {
	db       *gorm.DB
	timezone string
}

func NewAuditLogsHandler(db *gorm.DB, tz string) *AuditLogsHandler {
	return &AuditLogsHandler{db: db, timezone: tz}
}

// auditFilter is the parsed query of GET /audit-logs. From and To bound
// created_at as a half-open range [From, To).
type auditFilter struct {
	Action string
	Entity string
	From   *time.Time
	To     *time.Time
	Page   int
	Limit  int
}

func (f auditFilter) apply(q *gorm.DB) *gorm.DB {
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}
	return q
}

// parseAuditFilter reads from/to as calendar days in the gym timezone; "to"
// includes the whole day. A malformed day is reported as ok=false.
func parseAuditFilter(c *gin.Context, tz string) (f auditFilter, ok bool) {
	f = auditFilter{
		Action: strings.TrimSpace(c.Query("action")),
		Entity: strings.TrimSpace(c.Query("entity")),
		Page:   1,
		Limit:  auditDefaultLimit,
	}

	if p, err := strconv.Atoi(c.Query("page")); err == nil && p > 0 {
		f.Page = p
	}
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 {
		f.Limit = min(l, auditMaxLimit)
	}

	loc := timezone.Location(tz)

	if raw := c.Query("from"); raw != "" {
		from, err := time.ParseInLocation(time.DateOnly, raw, loc)
		if err != nil {
			return f, false
		}
		f.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.ParseInLocation(time.DateOnly, raw, loc)
		if err != nil {
			return f, false
		}
		end := to.AddDate(0, 0, 1)
		f.To = &end
	}

	return f, true
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	f, ok := parseAuditFilter(c, h.timezone)
	if !ok {
		respondCode(c, "invalid_date")
		return
	}

	q := f.apply(h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{}))

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		respondListError(c, err, "audit_count_failed", "Failed to count audit logs")
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&logs).Error; err != nil {
		respondListError(c, err, "audit_list_failed", "Failed to list audit logs")
		return
	}

	httpresp.Page(c, http.StatusOK, logs, f.Page, f.Limit, total)
}
