package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/salonsuite/salon-scheduler/internal/domain/appointment"
	"github.com/salonsuite/salon-scheduler/internal/httperr"
	"github.com/salonsuite/salon-scheduler/internal/models"
)

type updateFixture struct {
	repo   *memRepo
	locker *passLocker
	audit  *captureAudit
	uc     *UpdateAppointment
}

func newUpdateFixture() *updateFixture {
	f := &updateFixture{
		repo:   newMemRepo(),
		locker: &passLocker{},
		audit:  &captureAudit{},
	}
	f.uc = NewUpdateAppointment(f.repo, f.locker, f.audit)
	return f
}

func (f *updateFixture) seedBooking(start time.Time, durationMin int) *models.Appointment {
	svcID := uint(10)
	return f.repo.addAppointment(&models.Appointment{
		PractitionerID: 1,
		ClientID:       20,
		ServiceID:      &svcID,
		StartAt:        start,
		DurationMin:    durationMin,
		Status:         string(domain.StatusBooked),
	})
}

func TestUpdateNotesOnlySkipsLock(t *testing.T) {
	f := newUpdateFixture()
	ap := f.seedBooking(futureSlot(10), 60)

	notes := "prefers scissors"
	got, err := f.uc.Execute(context.Background(), UpdateAppointmentInput{
		AppointmentID: ap.ID,
		Notes:         &notes,
	})
	require.NoError(t, err)

	assert.Equal(t, "prefers scissors", got.Notes)
	assert.Equal(t, 0, f.locker.calls)
	assert.Equal(t, 0, f.repo.rescheduleCalls)
	assert.Equal(t, 1, f.repo.updateCalls)
	assert.Equal(t, []string{"appointment_updated"}, f.audit.actions())
}

func TestUpdateRescheduleRunsConflictCheck(t *testing.T) {
	f := newUpdateFixture()
	ap := f.seedBooking(futureSlot(10), 60)

	newStart := futureSlot(14)
	got, err := f.uc.Execute(context.Background(), UpdateAppointmentInput{
		AppointmentID: ap.ID,
		StartAt:       &newStart,
	})
	require.NoError(t, err)

	assert.Equal(t, newStart, got.StartAt)
	assert.Equal(t, 1, f.locker.calls)
	assert.Equal(t, 1, f.repo.rescheduleCalls)
	assert.Equal(t, 0, f.repo.updateCalls)
}

func TestUpdateRescheduleOntoOwnSlotAllowed(t *testing.T) {
	f := newUpdateFixture()
	ap := f.seedBooking(futureSlot(10), 60)

	// shift by 15 minutes: the new interval still overlaps the old one,
	// which must not count as a conflict with itself
	newStart := ap.StartAt.Add(15 * time.Minute)
	_, err := f.uc.Execute(context.Background(), UpdateAppointmentInput{
		AppointmentID: ap.ID,
		StartAt:       &newStart,
	})
	assert.NoError(t, err)
}

func TestUpdateRescheduleOntoOtherBookingRejected(t *testing.T) {
	f := newUpdateFixture()
	ap := f.seedBooking(futureSlot(10), 60)
	f.seedBooking(futureSlot(14), 60)

	newStart := futureSlot(14).Add(30 * time.Minute)
	_, err := f.uc.Execute(context.Background(), UpdateAppointmentInput{
		AppointmentID: ap.ID,
		StartAt:       &newStart,
	})
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))
}

func TestUpdateSelectionChangeRecomputesDuration(t *testing.T) {
	f := newUpdateFixture()
	f.repo.addService(11, "Color", 90, 9000)
	ap := f.seedBooking(futureSlot(10), 60)

	sel := domain.CatalogSelection(11, nil)
	got, err := f.uc.Execute(context.Background(), UpdateAppointmentInput{
		AppointmentID: ap.ID,
		Selection:     &sel,
	})
	require.NoError(t, err)

	require.NotNil(t, got.ServiceID)
	assert.Equal(t, uint(11), *got.ServiceID)
	assert.Equal(t, 90, got.DurationMin)
	// duration grew, so the interval changed and the guarded path ran
	assert.Equal(t, 1, f.repo.rescheduleCalls)
}

func TestUpdateSwitchToCustomClearsCatalogFields(t *testing.T) {
	f := newUpdateFixture()
	ap := f.seedBooking(futureSlot(10), 60)

	sel := domain.CustomSelection("scalp treatment", 3000, 60)
	got, err := f.uc.Execute(context.Background(), UpdateAppointmentInput{
		AppointmentID: ap.ID,
		Selection:     &sel,
	})
	require.NoError(t, err)

	assert.Nil(t, got.ServiceID)
	assert.Nil(t, got.ServiceOptionID)
	assert.Equal(t, "scalp treatment", got.CustomServiceName)
	require.NotNil(t, got.CustomDurationMin)
	assert.Equal(t, 60, *got.CustomDurationMin)
	// same 60 minutes, same start: no interval change, plain save
	assert.Equal(t, 0, f.repo.rescheduleCalls)
	assert.Equal(t, 1, f.repo.updateCalls)
}

func TestUpdateRescheduleCancelledRejected(t *testing.T) {
	f := newUpdateFixture()
	ap := f.seedBooking(futureSlot(10), 60)
	require.NoError(t, domain.Cancel(ap, time.Now()))

	newStart := futureSlot(14)
	_, err := f.uc.Execute(context.Background(), UpdateAppointmentInput{
		AppointmentID: ap.ID,
		StartAt:       &newStart,
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestUpdateUnknownAppointment(t *testing.T) {
	f := newUpdateFixture()

	notes := "x"
	_, err := f.uc.Execute(context.Background(), UpdateAppointmentInput{
		AppointmentID: 404,
		Notes:         &notes,
	})
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}
