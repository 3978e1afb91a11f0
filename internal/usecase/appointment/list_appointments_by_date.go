package appointment

import (
	"context"
	"time"

	domain "github.com/salonsuite/salon-scheduler/internal/domain/appointment"
	"github.com/salonsuite/salon-scheduler/internal/dto"
	"github.com/salonsuite/salon-scheduler/internal/models"
	"github.com/salonsuite/salon-scheduler/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
	tz   string
}

func NewListAppointmentsByDate(repo domain.Repository, tz string) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{repo: repo, tz: tz}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	practitionerID uint,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	loc := timezone.Location(uc.tz)

	start := time.Date(
		date.Year(),
		date.Month(),
		date.Day(),
		0, 0, 0, 0,
		loc,
	)
	end := start.Add(24 * time.Hour)

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

func toListDTOs(appointments []models.Appointment) []dto.AppointmentListDTO {
	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for i := range appointments {
		ap := &appointments[i]
		out = append(out, dto.AppointmentListDTO{
			ID:          ap.ID,
			StartAt:     ap.StartAt,
			EndAt:       ap.EndAt(),
			Status:      ap.Status,
			ClientName:  ap.Client.Name,
			ServiceName: appointmentServiceName(ap),
			PriceCents:  appointmentPriceCents(ap),
			Notes:       ap.Notes,
		})
	}
	return out
}

func appointmentPriceCents(ap *models.Appointment) int {
	if ap.CustomPriceCents != nil {
		return *ap.CustomPriceCents
	}
	p := 0
	if ap.Service != nil {
		p = ap.Service.PriceCents
	}
	if ap.ServiceOption != nil {
		p += ap.ServiceOption.ExtraPriceCents
	}
	return p
}
