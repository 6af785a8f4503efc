package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/ironpeak-gym/internal/domain/booking"
	"github.com/BruksfildServices01/ironpeak-gym/internal/httperr"
	"github.com/BruksfildServices01/ironpeak-gym/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

func occupyingStatuses() []string {
	out := make([]string, 0, len(domain.OccupyingStatuses))
	for _, s := range domain.OccupyingStatuses {
		out = append(out, string(s))
	}
	return out
}

// --------------------------------------------------
// Class
// --------------------------------------------------

func (r *BookingGormRepository) GetClass(
	ctx context.Context,
	classID string,
) (*models.GymClass, error) {

	var class models.GymClass
	if err := r.db.WithContext(ctx).
		Where("id = ?", classID).
		First(&class).Error; err != nil {
		return nil, notFound(err, "class_not_found")
	}
	return &class, nil
}

// --------------------------------------------------
// Booking (create)
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(b).Error
}

// ReserveOrWaitlist locks the schedule row so that concurrent admissions for the
// same schedule run one after another: each one counts only committed bookings.
// Capacity is read from the class inside the same transaction.
func (r *BookingGormRepository) ReserveOrWaitlist(
	ctx context.Context,
	b *models.Booking,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sched models.Schedule
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND class_id = ? AND is_active = ?", *b.ScheduleID, b.ClassID, true).
			First(&sched).Error; err != nil {
			return notFound(err, "schedule_not_found")
		}

		var class models.GymClass
		if err := tx.
			Clauses(clause.Locking{Strength: "SHARE"}).
			Select("id", "max_spots").
			Where("id = ?", b.ClassID).
			First(&class).Error; err != nil {
			return notFound(err, "class_not_found")
		}

		var occupied int64
		if err := tx.
			Model(&models.Booking{}).
			Where("schedule_id = ? AND status IN ?", sched.ID, occupyingStatuses()).
			Count(&occupied).Error; err != nil {
			return err
		}

		b.Status = domain.Admit(occupied, class.MaxSpots)

		return tx.Omit(clause.Associations).Create(b).Error
	})
}

// --------------------------------------------------
// Booking (admin)
// --------------------------------------------------

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id string,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&b).Error; err != nil {
		return nil, notFound(err, "booking_not_found")
	}
	return &b, nil
}

func (r *BookingGormRepository) UpdateBookingStatus(
	ctx context.Context,
	id string,
	status models.BookingStatus,
) (*models.Booking, error) {

	b, err := r.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Model(b).
		Update("status", string(status)).Error; err != nil {
		return nil, err
	}

	b.Status = status
	return b, nil
}

func (r *BookingGormRepository) DeleteBooking(
	ctx context.Context,
	id string,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Booking{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.Wrap("booking_not_found", httperr.ErrNotFound)
	}
	return nil
}

func (r *BookingGormRepository) ListBookings(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).
		Preload("GymClass").
		Preload("Member").
		Preload("Schedule")

	if f.Status != nil {
		q = q.Where("status = ?", string(*f.Status))
	}
	if f.ClassID != "" {
		q = q.Where("class_id = ?", f.ClassID)
	}

	var bookings []models.Booking
	if err := q.
		Order("created_at DESC").
		Limit(f.Limit).
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
