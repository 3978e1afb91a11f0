package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/salonsuite/salon-scheduler/internal/domain/appointment"
	"github.com/salonsuite/salon-scheduler/internal/httperr"
	"github.com/salonsuite/salon-scheduler/internal/models"
)

// overlapCond matches non-cancelled rows of a practitioner whose derived
// [start_at, start_at + duration) interval intersects [?, ?). The end is
// computed in the store so catalog edits never shift booked intervals.
const overlapCond = "practitioner_id = ? AND status <> 'cancelled' " +
	"AND start_at < ? AND start_at + (duration_min * interval '1 minute') > ?"

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Practitioner
// --------------------------------------------------

func (r *AppointmentGormRepository) GetPractitioner(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	if !user.IsPractitioner() {
		return nil, httperr.ErrBusiness("not_a_practitioner")
	}
	return &user, nil
}

func (r *AppointmentGormRepository) ListPractitioners(
	ctx context.Context,
) ([]models.User, error) {

	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("role = ? AND bookable = true AND active = true", models.RoleStaff).
		Order("name ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = true", id).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *AppointmentGormRepository) GetServiceOption(
	ctx context.Context,
	serviceID uint,
	optionID uint,
) (*models.ServiceOption, error) {

	var opt models.ServiceOption
	if err := r.db.WithContext(ctx).
		Where("id = ? AND service_id = ?", optionID, serviceID).
		First(&opt).Error; err != nil {
		return nil, err
	}
	return &opt, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetOrCreateClient(
	ctx context.Context,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}

	client = models.Client{
		Name:  name,
		Phone: phone,
		Email: email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

func (r *AppointmentGormRepository) EnsureClientForUser(
	ctx context.Context,
	userID uint,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&client).Error

	if err == nil {
		return &client, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, err
	}

	client = models.Client{
		UserID: &user.ID,
		Name:   user.Name,
		Phone:  user.Phone,
		Email:  user.Email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("ServiceOption").
		First(&ap, id).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) BusyIntervals(
	ctx context.Context,
	practitionerID uint,
	window domain.Interval,
) ([]domain.Interval, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("start_at", "duration_min").
		Where(overlapCond, practitionerID, window.End, window.Start).
		Order("start_at ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	busy := make([]domain.Interval, 0, len(apps))
	for i := range apps {
		busy = append(busy, domain.IntervalOf(&apps[i]))
	}

	return busy, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	practitionerID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("ServiceOption").
		Where(
			"practitioner_id = ? AND start_at >= ? AND start_at < ?",
			practitionerID,
			start,
			end,
		).
		Order("start_at ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForClient(
	ctx context.Context,
	clientID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Practitioner").
		Preload("Service").
		Preload("ServiceOption").
		Where("client_id = ?", clientID).
		Order("start_at DESC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Appointment (write)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := assertNoConflict(tx, ap, 0); err != nil {
			return err
		}
		return tx.Create(ap).Error
	})
}

func (r *AppointmentGormRepository) RescheduleAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := assertNoConflict(tx, ap, ap.ID); err != nil {
			return err
		}
		return tx.Save(ap).Error
	})
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// assertNoConflict is the write-time overlap guard. It selects conflicting
// rows under FOR UPDATE so a concurrent writer blocks until this
// transaction commits; whatever the availability read said earlier, this
// answer is authoritative.
func assertNoConflict(tx *gorm.DB, ap *models.Appointment, excludeID uint) error {
	q := tx.
		Select("id").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(overlapCond, ap.PractitionerID, ap.EndAt(), ap.StartAt)

	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var conflicts []models.Appointment
	if err := q.Find(&conflicts).Error; err != nil {
		return err
	}

	if len(conflicts) > 0 {
		return httperr.ErrBusiness("time_conflict")
	}

	return nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
