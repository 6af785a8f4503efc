package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/ironpeak-gym/internal/models"
)

const writeTimeout = 5 * time.Second

// GormWriter stores each event as one AuditLog row.
type GormWriter struct {
	db *gorm.DB
}

func NewGormWriter(db *gorm.DB) *GormWriter {
	return &GormWriter{db: db}
}

func (w *GormWriter) Log(ev Event) error {
	row := models.AuditLog{
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
	}

	if ev.Metadata != nil {
		b, err := json.Marshal(ev.Metadata)
		if err != nil {
			return fmt.Errorf("encode metadata of %s: %w", ev.Action, err)
		}
		row.Metadata = string(b)
	}

	// the dispatcher runs detached from any request
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	return w.db.WithContext(ctx).Create(&row).Error
}

var _ Writer = (*GormWriter)(nil)
