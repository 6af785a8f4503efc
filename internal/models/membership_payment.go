package models

import "time"

// MembershipPayment records a provider payment that has been turned into
// membership time. PaymentID is the provider's id, so a payment applies once.
// MemberID is a plain column: the row outlives the member it paid for.
type MembershipPayment struct {
	PaymentID string `gorm:"size:64;primaryKey" json:"paymentId"`
	MemberID  string `gorm:"type:varchar(36);not null;index" json:"memberId"`
	Plan      Plan   `gorm:"size:20;not null" json:"plan"`

	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}
