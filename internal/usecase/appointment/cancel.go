package appointment

import (
	"context"

	"github.com/salonsuite/salon-scheduler/internal/audit"
	domain "github.com/salonsuite/salon-scheduler/internal/domain/appointment"
	"github.com/salonsuite/salon-scheduler/internal/httperr"
	"github.com/salonsuite/salon-scheduler/internal/models"
	"github.com/salonsuite/salon-scheduler/internal/notify"
	"github.com/salonsuite/salon-scheduler/internal/timezone"
)

// Actor is who is asking for the cancellation.
type Actor struct {
	UserID uint
	Role   string
}

type CancelAppointment struct {
	repo   domain.Repository
	audit  audit.Recorder
	notify notify.Notifier
	tz     string
}

func NewCancelAppointment(
	repo domain.Repository,
	auditRec audit.Recorder,
	notifier notify.Notifier,
	tz string,
) *CancelAppointment {
	return &CancelAppointment{
		repo:   repo,
		audit:  auditRec,
		notify: notifier,
		tz:     tz,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	actor Actor,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	// cancelling twice is a no-op, not an error
	if domain.Status(ap.Status) == domain.StatusCancelled {
		return ap, nil
	}

	now := timezone.NowIn(uc.tz)

	// Clients cancel only their own, still-future appointments. Staff and
	// admins may cancel anything, including past entries, to fix records.
	if actor.Role == models.RoleClient {
		client, err := uc.repo.EnsureClientForUser(ctx, actor.UserID)
		if err != nil || client.ID != ap.ClientID {
			return nil, httperr.ErrBusiness("not_allowed")
		}
		if !ap.StartAt.After(now) {
			return nil, httperr.ErrBusiness("past_appointment")
		}
	}

	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	actorID := actor.UserID
	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	uc.notify.Dispatch(notify.BookingCancelled(
		ap.Client.Name,
		ap.Client.Email,
		appointmentServiceName(ap),
		ap.StartAt,
	))

	return ap, nil
}

func appointmentServiceName(ap *models.Appointment) string {
	if ap.CustomServiceName != "" {
		return ap.CustomServiceName
	}
	if ap.Service != nil {
		return ap.Service.Name
	}
	return "appointment"
}
