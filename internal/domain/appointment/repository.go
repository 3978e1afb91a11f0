package appointment

import (
	"context"
	"time"

	"github.com/salonsuite/salon-scheduler/internal/models"
)

type Repository interface {
	// -------- Practitioner --------
	GetPractitioner(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	ListPractitioners(
		ctx context.Context,
	) ([]models.User, error)

	// -------- Catalog --------
	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	GetServiceOption(
		ctx context.Context,
		serviceID uint,
		optionID uint,
	) (*models.ServiceOption, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// EnsureClientForUser resolves (creating on first booking) the client
	// record linked to a registered user.
	EnsureClientForUser(
		ctx context.Context,
		userID uint,
	) (*models.Client, error)

	// -------- Appointment (read) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	// BusyIntervals lists the non-cancelled intervals of a practitioner
	// intersecting the window, ordered by start.
	BusyIntervals(
		ctx context.Context,
		practitionerID uint,
		window Interval,
	) ([]Interval, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		practitionerID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForClient(
		ctx context.Context,
		clientID uint,
	) ([]models.Appointment, error)

	// -------- Appointment (write) --------

	// CreateAppointment re-runs the overlap check under a row lock and
	// inserts in the same transaction. Returns the time_conflict business
	// error when the interval is taken.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// RescheduleAppointment saves a changed interval with the same
	// transactional overlap check, excluding the appointment itself.
	RescheduleAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// UpdateAppointment persists status or note changes without touching
	// the interval.
	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error
}
