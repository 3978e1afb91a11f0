package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/salonsuite/salon-scheduler/internal/audit"
	domain "github.com/salonsuite/salon-scheduler/internal/domain/appointment"
	"github.com/salonsuite/salon-scheduler/internal/httperr"
	"github.com/salonsuite/salon-scheduler/internal/lock"
	"github.com/salonsuite/salon-scheduler/internal/models"
	"github.com/salonsuite/salon-scheduler/internal/notify"
	"github.com/salonsuite/salon-scheduler/internal/payment"
	"github.com/salonsuite/salon-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type WalkInClient struct {
	Name  string
	Phone string
	Email string
}

type CreateAppointmentInput struct {
	PractitionerID uint

	Selection domain.ServiceSelection
	StartAt   time.Time
	Notes     string

	// Exactly one of the two identifies who the appointment is for:
	// the registered user booking for themselves, or walk-in details
	// typed in by staff.
	ClientUserID uint
	WalkIn       *WalkInClient

	// EnforceFuture is set on the client path. Staff may backdate to log
	// same-day walk-in visits.
	EnforceFuture bool

	CardToken  string
	PayerEmail string

	ActorUserID *uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	locker   lock.BookingLocker
	payments payment.Authorizer
	audit    audit.Recorder
	notify   notify.Notifier

	tz            string
	minAdvanceMin int
}

func NewCreateAppointment(
	repo domain.Repository,
	locker lock.BookingLocker,
	payments payment.Authorizer,
	auditRec audit.Recorder,
	notifier notify.Notifier,
	tz string,
	minAdvanceMin int,
) *CreateAppointment {
	return &CreateAppointment{
		repo:          repo,
		locker:        locker,
		payments:      payments,
		audit:         auditRec,
		notify:        notifier,
		tz:            tz,
		minAdvanceMin: minAdvanceMin,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if err := in.Selection.Validate(); err != nil {
		return nil, err
	}

	practitioner, err := uc.repo.GetPractitioner(ctx, in.PractitionerID)
	if err != nil {
		return nil, httperr.ErrBusiness("practitioner_not_found")
	}

	var (
		svc *models.Service
		opt *models.ServiceOption
	)
	if !in.Selection.IsCustom() {
		svc, err = uc.repo.GetService(ctx, in.Selection.ServiceID())
		if err != nil {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		if optID := in.Selection.OptionID(); optID != nil {
			opt, err = uc.repo.GetServiceOption(ctx, svc.ID, *optID)
			if err != nil {
				return nil, httperr.ErrBusiness("option_not_found")
			}
		}
	}

	interval, err := domain.NewInterval(in.StartAt, in.Selection.Duration(svc, opt))
	if err != nil {
		return nil, err
	}

	if in.EnforceFuture {
		now := timezone.NowIn(uc.tz)
		floor := now.Add(time.Duration(uc.minAdvanceMin) * time.Minute)
		if in.StartAt.Before(floor) {
			return nil, httperr.ErrBusiness("past_start")
		}
	}

	client, err := uc.resolveClient(ctx, in)
	if err != nil {
		return nil, err
	}

	// Payment gate: a priced catalog booking must be authorized before
	// anything is written. Custom bookings are settled at the desk.
	if !in.Selection.IsCustom() {
		if price := in.Selection.PriceCents(svc, opt); price > 0 {
			payerEmail := in.PayerEmail
			if payerEmail == "" {
				payerEmail = client.Email
			}
			err := uc.payments.Authorize(ctx, payment.Charge{
				AmountCents:    price,
				Description:    svc.Name,
				CardToken:      in.CardToken,
				PayerEmail:     payerEmail,
				IdempotencyKey: uuid.NewString(),
			})
			if errors.Is(err, payment.ErrDeclined) {
				return nil, httperr.ErrBusiness("payment_declined")
			}
			if err != nil {
				return nil, err
			}
		}
	}

	ap := uc.buildAppointment(in, practitioner.ID, client.ID, interval)

	err = uc.locker.WithPractitionerLock(ctx, practitioner.ID, in.StartAt, func(lockCtx context.Context) error {
		return uc.repo.CreateAppointment(lockCtx, ap)
	})
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			return nil, httperr.ErrBusiness("slot_busy")
		}
		if httperr.IsBusiness(err, "time_conflict") {
			uc.audit.Dispatch(audit.Event{
				UserID:   in.ActorUserID,
				Action:   "appointment_conflict",
				Entity:   "appointment",
				Metadata: map[string]any{"start": interval.Start, "end": interval.End},
			})
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.ActorUserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	uc.notify.Dispatch(notify.BookingConfirmed(
		client.Name,
		client.Email,
		serviceNameOf(in.Selection, svc),
		ap.StartAt,
	))

	return ap, nil
}

func (uc *CreateAppointment) resolveClient(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Client, error) {

	if in.WalkIn != nil {
		if in.WalkIn.Name == "" {
			return nil, httperr.ErrBusiness("missing_client_name")
		}
		return uc.repo.GetOrCreateClient(ctx, in.WalkIn.Name, in.WalkIn.Phone, in.WalkIn.Email)
	}

	if in.ClientUserID == 0 {
		return nil, httperr.ErrBusiness("missing_client")
	}
	return uc.repo.EnsureClientForUser(ctx, in.ClientUserID)
}

func (uc *CreateAppointment) buildAppointment(
	in CreateAppointmentInput,
	practitionerID uint,
	clientID uint,
	interval domain.Interval,
) *models.Appointment {

	ap := &models.Appointment{
		PractitionerID: practitionerID,
		ClientID:       clientID,
		StartAt:        interval.Start,
		DurationMin:    int(interval.Duration() / time.Minute),
		Status:         string(domain.InitialStatus()),
		Notes:          in.Notes,
	}

	if in.Selection.IsCustom() {
		ap.CustomServiceName = in.Selection.CustomName()
		price := in.Selection.CustomPriceCents()
		ap.CustomPriceCents = &price
		if d := in.Selection.CustomDurationMin(); d > 0 {
			ap.CustomDurationMin = &d
		}
	} else {
		serviceID := in.Selection.ServiceID()
		ap.ServiceID = &serviceID
		ap.ServiceOptionID = in.Selection.OptionID()
	}

	return ap
}

func serviceNameOf(sel domain.ServiceSelection, svc *models.Service) string {
	if sel.IsCustom() {
		return sel.CustomName()
	}
	if svc != nil {
		return svc.Name
	}
	return "appointment"
}
