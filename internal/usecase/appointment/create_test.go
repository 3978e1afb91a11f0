package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/salonsuite/salon-scheduler/internal/domain/appointment"
	"github.com/salonsuite/salon-scheduler/internal/httperr"
)

type createFixture struct {
	repo     *memRepo
	locker   *passLocker
	payments *fakePayments
	audit    *captureAudit
	notify   *captureNotify
	uc       *CreateAppointment
}

func newCreateFixture(minAdvanceMin int) *createFixture {
	f := &createFixture{
		repo:     newMemRepo(),
		locker:   &passLocker{},
		payments: &fakePayments{},
		audit:    &captureAudit{},
		notify:   &captureNotify{},
	}
	f.uc = NewCreateAppointment(f.repo, f.locker, f.payments, f.audit, f.notify, "UTC", minAdvanceMin)
	return f
}

func futureSlot(hour int) time.Time {
	d := time.Now().UTC().AddDate(0, 0, 7)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, time.UTC)
}

func TestCreateCatalogBooking(t *testing.T) {
	f := newCreateFixture(0)
	f.repo.addPractitioner(1, "Lena")
	f.repo.addService(10, "Haircut", 45, 4000)
	f.repo.addClientForUser(20, 7, "mara")

	start := futureSlot(10)
	ap, err := f.uc.Execute(context.Background(), CreateAppointmentInput{
		PractitionerID: 1,
		Selection:      domain.CatalogSelection(10, nil),
		StartAt:        start,
		ClientUserID:   7,
		EnforceFuture:  true,
		CardToken:      "tok_abc",
	})
	require.NoError(t, err)

	assert.NotZero(t, ap.ID)
	assert.Equal(t, uint(1), ap.PractitionerID)
	assert.Equal(t, uint(20), ap.ClientID)
	require.NotNil(t, ap.ServiceID)
	assert.Equal(t, uint(10), *ap.ServiceID)
	assert.Equal(t, 45, ap.DurationMin)
	assert.Equal(t, start.Add(45*time.Minute), ap.EndAt())
	assert.Equal(t, string(domain.StatusBooked), ap.Status)

	// priced catalog booking goes through the payment gate exactly once
	require.Len(t, f.payments.charges, 1)
	assert.Equal(t, 4000, f.payments.charges[0].AmountCents)
	assert.Equal(t, "tok_abc", f.payments.charges[0].CardToken)
	assert.NotEmpty(t, f.payments.charges[0].IdempotencyKey)

	assert.Equal(t, 1, f.locker.calls)
	assert.Equal(t, []string{"appointment_created"}, f.audit.actions())
	require.Len(t, f.notify.messages, 1)
	assert.Equal(t, "mara@example.com", f.notify.messages[0].ToAddr)
}

func TestCreateCustomBookingSkipsPaymentGate(t *testing.T) {
	f := newCreateFixture(0)
	f.repo.addPractitioner(1, "Lena")

	ap, err := f.uc.Execute(context.Background(), CreateAppointmentInput{
		PractitionerID: 1,
		Selection:      domain.CustomSelection("fringe touch-up", 1500, 20),
		StartAt:        futureSlot(11),
		WalkIn:         &WalkInClient{Name: "Ana", Phone: "555-0101"},
	})
	require.NoError(t, err)

	assert.Nil(t, ap.ServiceID)
	assert.Equal(t, "fringe touch-up", ap.CustomServiceName)
	require.NotNil(t, ap.CustomPriceCents)
	assert.Equal(t, 1500, *ap.CustomPriceCents)
	assert.Equal(t, 20, ap.DurationMin)

	// settled at the desk, never authorized online
	assert.Empty(t, f.payments.charges)
}

func TestCreateWalkInResolvesClient(t *testing.T) {
	f := newCreateFixture(0)
	f.repo.addPractitioner(1, "Lena")
	f.repo.addService(10, "Trim", 30, 0)

	ap, err := f.uc.Execute(context.Background(), CreateAppointmentInput{
		PractitionerID: 1,
		Selection:      domain.CatalogSelection(10, nil),
		StartAt:        futureSlot(9),
		WalkIn:         &WalkInClient{Name: "Rui", Phone: "555-0102"},
	})
	require.NoError(t, err)

	client := f.repo.clients[ap.ClientID]
	require.NotNil(t, client)
	assert.Equal(t, "Rui", client.Name)
	assert.Nil(t, client.UserID)

	// same walk-in again reuses the record
	ap2, err := f.uc.Execute(context.Background(), CreateAppointmentInput{
		PractitionerID: 1,
		Selection:      domain.CatalogSelection(10, nil),
		StartAt:        futureSlot(12),
		WalkIn:         &WalkInClient{Name: "Rui", Phone: "555-0102"},
	})
	require.NoError(t, err)
	assert.Equal(t, ap.ClientID, ap2.ClientID)
}

func TestCreateWalkInRequiresName(t *testing.T) {
	f := newCreateFixture(0)
	f.repo.addPractitioner(1, "Lena")
	f.repo.addService(10, "Trim", 30, 0)

	_, err := f.uc.Execute(context.Background(), CreateAppointmentInput{
		PractitionerID: 1,
		Selection:      domain.CatalogSelection(10, nil),
		StartAt:        futureSlot(9),
		WalkIn:         &WalkInClient{Phone: "555-0103"},
	})
	assert.True(t, httperr.IsBusiness(err, "missing_client_name"))
}

func TestCreateConflictAtWriteTime(t *testing.T) {
	f := newCreateFixture(0)
	f.repo.addPractitioner(1, "Lena")
	f.repo.addService(10, "Trim", 60, 0)
	f.repo.addClientForUser(20, 7, "mara")

	start := futureSlot(10)
	_, err := f.uc.Execute(context.Background(), CreateAppointmentInput{
		PractitionerID: 1,
		Selection:      domain.CatalogSelection(10, nil),
		StartAt:        start,
		ClientUserID:   7,
	})
	require.NoError(t, err)

	// overlapping second booking for the same practitioner
	_, err = f.uc.Execute(context.Background(), CreateAppointmentInput{
		PractitionerID: 1,
		Selection:      domain.CatalogSelection(10, nil),
		StartAt:        start.Add(30 * time.Minute),
		ClientUserID:   7,
	})
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))
	assert.Len(t, f.repo.appointments, 1)
	assert.Contains(t, f.audit.actions(), "appointment_conflict")

	// back-to-back is fine
	_, err = f.uc.Execute(context.Background(), CreateAppointmentInput{
		PractitionerID: 1,
		Selection:      domain.CatalogSelection(10, nil),
		StartAt:        start.Add(60 * time.Minute),
		ClientUserID:   7,
	})
	assert.NoError(t, err)
}

func TestCreateCancelledSlotIsReusable(t *testing.T) {
	f := newCreateFixture(0)
	f.repo.addPractitioner(1, "Lena")
	f.repo.addService(10, "Trim", 60, 0)
	f.repo.addClientForUser(20, 7, "mara")

	start := futureSlot(10)
	ap, err := f.uc.Execute(context.Background(), CreateAppointmentInput{
		PractitionerID: 1,
		Selection:      domain.CatalogSelection(10, nil),
		StartAt:        start,
		ClientUserID:   7,
	})
	require.NoError(t, err)

	require.NoError(t, domain.Cancel(ap, time.Now()))

	_, err = f.uc.Execute(context.Background(), CreateAppointmentInput{
		PractitionerID: 1,
		Selection:      domain.CatalogSelection(10, nil),
		StartAt:        start,
		ClientUserID:   7,
	})
	assert.NoError(t, err)
}

func TestCreatePaymentDeclinedWritesNothing(t *testing.T) {
	f := newCreateFixture(0)
	f.payments.decline = true
	f.repo.addPractitioner(1, "Lena")
	f.repo.addService(10, "Color", 90, 12000)
	f.repo.addClientForUser(20, 7, "mara")

	_, err := f.uc.Execute(context.Background(), CreateAppointmentInput{
		PractitionerID: 1,
		Selection:      domain.CatalogSelection(10, nil),
		StartAt:        futureSlot(10),
		ClientUserID:   7,
		CardToken:      "tok_bad",
	})
	assert.True(t, httperr.IsBusiness(err, "payment_declined"))
	assert.Empty(t, f.repo.appointments)
	assert.Equal(t, 0, f.locker.calls)
}

func TestCreateEnforcesMinimumAdvance(t *testing.T) {
	f := newCreateFixture(120)
	f.repo.addPractitioner(1, "Lena")
	f.repo.addService(10, "Trim", 30, 0)
	f.repo.addClientForUser(20, 7, "mara")

	_, err := f.uc.Execute(context.Background(), CreateAppointmentInput{
		PractitionerID: 1,
		Selection:      domain.CatalogSelection(10, nil),
		StartAt:        time.Now().UTC().Add(30 * time.Minute),
		ClientUserID:   7,
		EnforceFuture:  true,
	})
	assert.True(t, httperr.IsBusiness(err, "past_start"))
}

func TestCreateStaffMayBackdate(t *testing.T) {
	f := newCreateFixture(120)
	f.repo.addPractitioner(1, "Lena")
	f.repo.addService(10, "Trim", 30, 0)

	// same-day walk-in logged after the fact
	_, err := f.uc.Execute(context.Background(), CreateAppointmentInput{
		PractitionerID: 1,
		Selection:      domain.CatalogSelection(10, nil),
		StartAt:        time.Now().UTC().Add(-time.Hour),
		WalkIn:         &WalkInClient{Name: "Ana"},
		EnforceFuture:  false,
	})
	assert.NoError(t, err)
}

func TestCreateLockContention(t *testing.T) {
	f := newCreateFixture(0)
	f.repo.addPractitioner(1, "Lena")
	f.repo.addService(10, "Trim", 30, 0)
	f.repo.addClientForUser(20, 7, "mara")

	uc := NewCreateAppointment(f.repo, busyLocker{}, f.payments, f.audit, f.notify, "UTC", 0)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		PractitionerID: 1,
		Selection:      domain.CatalogSelection(10, nil),
		StartAt:        futureSlot(10),
		ClientUserID:   7,
	})
	assert.True(t, httperr.IsBusiness(err, "slot_busy"))
	assert.Empty(t, f.repo.appointments)
}

func TestCreateUnknownPractitioner(t *testing.T) {
	f := newCreateFixture(0)
	f.repo.addService(10, "Trim", 30, 0)

	_, err := f.uc.Execute(context.Background(), CreateAppointmentInput{
		PractitionerID: 99,
		Selection:      domain.CatalogSelection(10, nil),
		StartAt:        futureSlot(10),
		ClientUserID:   7,
	})
	assert.True(t, httperr.IsBusiness(err, "practitioner_not_found"))
}
