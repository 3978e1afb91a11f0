package appointment

import (
	"context"

	domain "github.com/salonsuite/salon-scheduler/internal/domain/appointment"
	"github.com/salonsuite/salon-scheduler/internal/httperr"
	"github.com/salonsuite/salon-scheduler/internal/models"
	"github.com/salonsuite/salon-scheduler/internal/timezone"
)

type GetAvailability struct {
	repo domain.Repository
	tz   string
}

func NewGetAvailability(repo domain.Repository, tz string) *GetAvailability {
	return &GetAvailability{repo: repo, tz: tz}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.PractitionerAvailability, error) {

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	var opt *models.ServiceOption
	if in.ServiceOptionID != nil {
		opt, err = uc.repo.GetServiceOption(ctx, in.ServiceID, *in.ServiceOptionID)
		if err != nil {
			return nil, httperr.ErrBusiness("option_not_found")
		}
	}

	duration := domain.CatalogSelection(in.ServiceID, in.ServiceOptionID).Duration(svc, opt)

	var practitioners []models.User
	if in.PractitionerID != 0 {
		p, err := uc.repo.GetPractitioner(ctx, in.PractitionerID)
		if err != nil {
			return nil, httperr.ErrBusiness("practitioner_not_found")
		}
		practitioners = []models.User{*p}
	} else {
		practitioners, err = uc.repo.ListPractitioners(ctx)
		if err != nil {
			return nil, err
		}
	}

	// no eligible practitioners means no appointment queries at all
	out := make([]domain.PractitionerAvailability, 0, len(practitioners))
	if len(practitioners) == 0 {
		return out, nil
	}

	window := domain.WorkingWindow(in.Day, timezone.Location(uc.tz))

	for _, p := range practitioners {
		busy, err := uc.repo.BusyIntervals(ctx, p.ID, window)
		if err != nil {
			return nil, err
		}

		out = append(out, domain.PractitionerAvailability{
			PractitionerID:   p.ID,
			PractitionerName: p.Name,
			Slots:            domain.GenerateSlots(window, duration, busy),
		})
	}

	return out, nil
}
