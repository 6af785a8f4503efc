package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordBookingAdmitted(t *testing.T) {
	before := testutil.ToFloat64(BookingsAdmittedTotal.WithLabelValues("WAITLISTED"))
	RecordBookingAdmitted("WAITLISTED")
	assert.Equal(t, before+1, testutil.ToFloat64(BookingsAdmittedTotal.WithLabelValues("WAITLISTED")))
}

func TestRecordVerification(t *testing.T) {
	before := testutil.ToFloat64(VerificationsTotal.WithLabelValues("membership_expired"))
	RecordVerification("membership_expired")
	RecordVerification("membership_expired")
	assert.Equal(t, before+2, testutil.ToFloat64(VerificationsTotal.WithLabelValues("membership_expired")))
}

func TestRecordMembershipExpiry(t *testing.T) {
	before := testutil.ToFloat64(MembershipExpiriesTotal)
	RecordMembershipExpiry()
	assert.Equal(t, before+1, testutil.ToFloat64(MembershipExpiriesTotal))
}
