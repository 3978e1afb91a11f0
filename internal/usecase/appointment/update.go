package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/salonsuite/salon-scheduler/internal/audit"
	domain "github.com/salonsuite/salon-scheduler/internal/domain/appointment"
	"github.com/salonsuite/salon-scheduler/internal/httperr"
	"github.com/salonsuite/salon-scheduler/internal/lock"
	"github.com/salonsuite/salon-scheduler/internal/models"
)

// UpdateAppointmentInput carries the staff-side partial update: unset
// fields keep their previous value.
type UpdateAppointmentInput struct {
	AppointmentID uint

	StartAt   *time.Time
	Selection *domain.ServiceSelection
	Notes     *string

	ActorUserID *uint
}

type UpdateAppointment struct {
	repo   domain.Repository
	locker lock.BookingLocker
	audit  audit.Recorder
}

func NewUpdateAppointment(
	repo domain.Repository,
	locker lock.BookingLocker,
	auditRec audit.Recorder,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:   repo,
		locker: locker,
		audit:  auditRec,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	intervalChanged := false

	if in.Selection != nil {
		if err := in.Selection.Validate(); err != nil {
			return nil, err
		}

		var (
			svc *models.Service
			opt *models.ServiceOption
		)
		if in.Selection.IsCustom() {
			ap.ServiceID = nil
			ap.ServiceOptionID = nil
			ap.Service = nil
			ap.ServiceOption = nil
			ap.CustomServiceName = in.Selection.CustomName()
			price := in.Selection.CustomPriceCents()
			ap.CustomPriceCents = &price
			if d := in.Selection.CustomDurationMin(); d > 0 {
				ap.CustomDurationMin = &d
			} else {
				ap.CustomDurationMin = nil
			}
		} else {
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
			serviceID := svc.ID
			ap.ServiceID = &serviceID
			ap.ServiceOptionID = in.Selection.OptionID()
			ap.CustomServiceName = ""
			ap.CustomPriceCents = nil
			ap.CustomDurationMin = nil
		}

		if d := in.Selection.DurationMin(svc, opt); d != ap.DurationMin {
			ap.DurationMin = d
			intervalChanged = true
		}
	}

	if in.StartAt != nil && !in.StartAt.Equal(ap.StartAt) {
		ap.StartAt = *in.StartAt
		intervalChanged = true
	}

	if in.Notes != nil {
		ap.Notes = *in.Notes
	}

	if intervalChanged {
		if err := domain.CanReschedule(domain.Status(ap.Status)); err != nil {
			return nil, err
		}
		if _, err := domain.NewInterval(ap.StartAt, time.Duration(ap.DurationMin)*time.Minute); err != nil {
			return nil, err
		}

		// the moved interval must not collide with anyone else, but may
		// land on the appointment's own previous slot
		err = uc.locker.WithPractitionerLock(ctx, ap.PractitionerID, ap.StartAt, func(lockCtx context.Context) error {
			return uc.repo.RescheduleAppointment(lockCtx, ap)
		})
		if err != nil {
			if errors.Is(err, lock.ErrNotAcquired) {
				return nil, httperr.ErrBusiness("slot_busy")
			}
			return nil, err
		}
	} else {
		if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
			return nil, err
		}
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.ActorUserID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
