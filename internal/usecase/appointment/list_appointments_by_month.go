package appointment

import (
	"context"
	"time"

	domain "github.com/salonsuite/salon-scheduler/internal/domain/appointment"
	"github.com/salonsuite/salon-scheduler/internal/dto"
	"github.com/salonsuite/salon-scheduler/internal/timezone"
)

type ListAppointmentsByMonth struct {
	repo domain.Repository
	tz   string
}

func NewListAppointmentsByMonth(repo domain.Repository, tz string) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{repo: repo, tz: tz}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	practitionerID uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	loc := timezone.Location(uc.tz)

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		practitionerID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	return toListDTOs(appointments), nil
}
