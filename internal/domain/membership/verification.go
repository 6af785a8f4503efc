package membership

import (
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/ironpeak-gym/internal/models"
)

// Reason explains why a membership check failed. The values double as error codes.
type Reason string

const (
	ReasonNone     Reason = ""
	ReasonNotFound Reason = "no_membership"
	ReasonInactive Reason = "membership_inactive"
	ReasonExpired  Reason = "membership_expired"
)

// Summary is the projection of a member returned by a successful verification.
type Summary struct {
	ID     string              `json:"id"`
	Name   string              `json:"name"`
	Plan   models.Plan         `json:"plan"`
	Status models.MemberStatus `json:"status"`
}

type Result struct {
	Valid   bool
	Reason  Reason
	Message string
	Member  *Summary
}

// Evaluate applies the decision table to a looked-up member (nil when none was
// found). When it returns ReasonExpired the caller must persist INACTIVE.
func Evaluate(m *models.Member, now time.Time) Result {
	if m == nil {
		return Result{
			Reason:  ReasonNotFound,
			Message: "No membership found for this email. Please purchase a membership first.",
		}
	}

	if m.Status != models.MemberActive {
		return Result{
			Reason: ReasonInactive,
			Message: fmt.Sprintf(
				"Your membership is %s. Please contact us to reactivate.",
				strings.ToLower(string(m.Status)),
			),
		}
	}

	if m.ExpiresAt != nil && m.ExpiresAt.Before(now) {
		return Result{
			Reason:  ReasonExpired,
			Message: "Your membership has expired. Please renew to book classes.",
		}
	}

	return Result{
		Valid: true,
		Member: &Summary{
			ID:     m.ID,
			Name:   m.Name,
			Plan:   m.Plan,
			Status: m.Status,
		},
	}
}
