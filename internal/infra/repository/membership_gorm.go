package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/ironpeak-gym/internal/domain/membership"
	"github.com/BruksfildServices01/ironpeak-gym/internal/httperr"
	"github.com/BruksfildServices01/ironpeak-gym/internal/models"
)

type MembershipGormRepository struct {
	db *gorm.DB
}

func NewMembershipGormRepository(db *gorm.DB) *MembershipGormRepository {
	return &MembershipGormRepository{db: db}
}

func (r *MembershipGormRepository) FindMemberByEmail(
	ctx context.Context,
	email string,
) (*models.Member, error) {

	var m models.Member
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&m).Error; err != nil {
		return nil, notFound(err, "member_not_found")
	}
	return &m, nil
}

func (r *MembershipGormRepository) GetMember(
	ctx context.Context,
	id string,
) (*models.Member, error) {

	var m models.Member
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&m).Error; err != nil {
		return nil, notFound(err, "member_not_found")
	}
	return &m, nil
}

func (r *MembershipGormRepository) MarkInactive(
	ctx context.Context,
	id string,
) error {

	return r.db.WithContext(ctx).
		Model(&models.Member{}).
		Where("id = ? AND status = ?", id, string(models.MemberActive)).
		Update("status", string(models.MemberInactive)).Error
}

func (r *MembershipGormRepository) ActivateMembership(
	ctx context.Context,
	a domain.Activation,
) (*models.Member, error) {

	var member models.Member

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seen int64
		if err := tx.Model(&models.MembershipPayment{}).
			Where("payment_id = ?", a.PaymentID).
			Count(&seen).Error; err != nil {
			return err
		}
		if seen > 0 {
			return httperr.ErrBusiness("payment_already_applied")
		}

		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("email = ?", a.Email).
			First(&member).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			member = models.Member{
				Name:      a.Name,
				Email:     a.Email,
				Plan:      a.Plan,
				Status:    models.MemberActive,
				ExpiresAt: &a.ExpiresAt,
			}
			if err := tx.Omit(clause.Associations).Create(&member).Error; err != nil {
				return err
			}

		case err != nil:
			return err

		case member.Status == models.MemberSuspended:
			return httperr.ErrBusiness("membership_suspended")

		default:
			if err := tx.Model(&member).Updates(map[string]any{
				"plan":       string(a.Plan),
				"status":     string(models.MemberActive),
				"expires_at": a.ExpiresAt,
			}).Error; err != nil {
				return err
			}
			member.Plan = a.Plan
			member.Status = models.MemberActive
			member.ExpiresAt = &a.ExpiresAt
		}

		// the primary key also stops a replay racing this one
		return tx.Create(&models.MembershipPayment{
			PaymentID: a.PaymentID,
			MemberID:  member.ID,
			Plan:      a.Plan,
			ExpiresAt: a.ExpiresAt,
		}).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, httperr.ErrBusiness("payment_already_applied")
	}
	if err != nil {
		return nil, err
	}

	return &member, nil
}

// Compile-time check
var _ domain.Repository = (*MembershipGormRepository)(nil)
