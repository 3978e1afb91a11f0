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
	"github.com/salonsuite/salon-scheduler/internal/notify"
	"github.com/salonsuite/salon-scheduler/internal/payment"
)

var errNotFound = errors.New("not found")

// memRepo is an in-memory domain.Repository with the same conflict
// semantics as the SQL implementation.
type memRepo struct {
	practitioners map[uint]*models.User
	services      map[uint]*models.Service
	options       map[uint]*models.ServiceOption
	clients       map[uint]*models.Client
	appointments  map[uint]*models.Appointment

	nextID uint

	busyIntervalCalls int
	rescheduleCalls   int
	updateCalls       int
}

func newMemRepo() *memRepo {
	return &memRepo{
		practitioners: map[uint]*models.User{},
		services:      map[uint]*models.Service{},
		options:       map[uint]*models.ServiceOption{},
		clients:       map[uint]*models.Client{},
		appointments:  map[uint]*models.Appointment{},
		nextID:        1,
	}
}

func (r *memRepo) addPractitioner(id uint, name string) *models.User {
	u := &models.User{ID: id, Name: name, Role: models.RoleStaff, Bookable: true, Active: true}
	r.practitioners[id] = u
	return u
}

func (r *memRepo) addService(id uint, name string, durationMin, priceCents int) *models.Service {
	s := &models.Service{ID: id, Name: name, DurationMin: durationMin, PriceCents: priceCents, Active: true}
	r.services[id] = s
	return s
}

func (r *memRepo) addClientForUser(clientID, userID uint, name string) *models.Client {
	uid := userID
	c := &models.Client{ID: clientID, UserID: &uid, Name: name, Email: name + "@example.com"}
	r.clients[clientID] = c
	return c
}

func (r *memRepo) addAppointment(ap *models.Appointment) *models.Appointment {
	if ap.ID == 0 {
		ap.ID = r.nextID
		r.nextID++
	}
	r.appointments[ap.ID] = ap
	return ap
}

func (r *memRepo) GetPractitioner(ctx context.Context, id uint) (*models.User, error) {
	p, ok := r.practitioners[id]
	if !ok || !p.IsPractitioner() {
		return nil, errNotFound
	}
	return p, nil
}

func (r *memRepo) ListPractitioners(ctx context.Context) ([]models.User, error) {
	out := []models.User{}
	for _, p := range r.practitioners {
		if p.IsPractitioner() {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memRepo) GetService(ctx context.Context, id uint) (*models.Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, errNotFound
	}
	return s, nil
}

func (r *memRepo) GetServiceOption(ctx context.Context, serviceID, optionID uint) (*models.ServiceOption, error) {
	o, ok := r.options[optionID]
	if !ok || o.ServiceID != serviceID {
		return nil, errNotFound
	}
	return o, nil
}

func (r *memRepo) GetOrCreateClient(ctx context.Context, name, phone, email string) (*models.Client, error) {
	for _, c := range r.clients {
		if c.UserID == nil && c.Name == name && c.Phone == phone {
			return c, nil
		}
	}
	c := &models.Client{ID: r.nextID, Name: name, Phone: phone, Email: email}
	r.nextID++
	r.clients[c.ID] = c
	return c, nil
}

func (r *memRepo) EnsureClientForUser(ctx context.Context, userID uint) (*models.Client, error) {
	for _, c := range r.clients {
		if c.UserID != nil && *c.UserID == userID {
			return c, nil
		}
	}
	uid := userID
	c := &models.Client{ID: r.nextID, UserID: &uid}
	r.nextID++
	r.clients[c.ID] = c
	return c, nil
}

func (r *memRepo) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	ap, ok := r.appointments[id]
	if !ok {
		return nil, errNotFound
	}
	return ap, nil
}

func (r *memRepo) BusyIntervals(ctx context.Context, practitionerID uint, window domain.Interval) ([]domain.Interval, error) {
	r.busyIntervalCalls++

	out := []domain.Interval{}
	for _, ap := range r.appointments {
		if ap.PractitionerID != practitionerID || ap.Status == string(domain.StatusCancelled) {
			continue
		}
		iv := domain.IntervalOf(ap)
		if iv.Overlaps(window) {
			out = append(out, iv)
		}
	}
	return out, nil
}

func (r *memRepo) ListAppointmentsForPeriod(ctx context.Context, practitionerID uint, start, end time.Time) ([]models.Appointment, error) {
	out := []models.Appointment{}
	for _, ap := range r.appointments {
		if practitionerID != 0 && ap.PractitionerID != practitionerID {
			continue
		}
		if ap.StartAt.Before(end) && ap.EndAt().After(start) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *memRepo) ListAppointmentsForClient(ctx context.Context, clientID uint) ([]models.Appointment, error) {
	out := []models.Appointment{}
	for _, ap := range r.appointments {
		if ap.ClientID == clientID {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *memRepo) conflicts(ap *models.Appointment, excludeID uint) bool {
	proposed := domain.IntervalOf(ap)
	for _, other := range r.appointments {
		if other.ID == excludeID {
			continue
		}
		if other.PractitionerID != ap.PractitionerID {
			continue
		}
		if other.Status == string(domain.StatusCancelled) {
			continue
		}
		if proposed.Overlaps(domain.IntervalOf(other)) {
			return true
		}
	}
	return false
}

func (r *memRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	if r.conflicts(ap, 0) {
		return httperr.ErrBusiness("time_conflict")
	}
	ap.ID = r.nextID
	r.nextID++
	r.appointments[ap.ID] = ap
	return nil
}

func (r *memRepo) RescheduleAppointment(ctx context.Context, ap *models.Appointment) error {
	r.rescheduleCalls++
	if r.conflicts(ap, ap.ID) {
		return httperr.ErrBusiness("time_conflict")
	}
	r.appointments[ap.ID] = ap
	return nil
}

func (r *memRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	r.updateCalls++
	r.appointments[ap.ID] = ap
	return nil
}

var _ domain.Repository = (*memRepo)(nil)

// passLocker runs the protected section inline; busyLocker simulates a
// lost lock race.
type passLocker struct{ calls int }

func (l *passLocker) WithPractitionerLock(ctx context.Context, practitionerID uint, day time.Time, fn func(ctx context.Context) error) error {
	l.calls++
	return fn(ctx)
}

type busyLocker struct{}

func (busyLocker) WithPractitionerLock(ctx context.Context, practitionerID uint, day time.Time, fn func(ctx context.Context) error) error {
	return lock.ErrNotAcquired
}

type fakePayments struct {
	decline bool
	charges []payment.Charge
}

func (p *fakePayments) Authorize(ctx context.Context, ch payment.Charge) error {
	p.charges = append(p.charges, ch)
	if p.decline {
		return payment.ErrDeclined
	}
	return nil
}

type captureAudit struct{ events []audit.Event }

func (a *captureAudit) Dispatch(ev audit.Event) { a.events = append(a.events, ev) }

func (a *captureAudit) actions() []string {
	out := make([]string, 0, len(a.events))
	for _, ev := range a.events {
		out = append(out, ev.Action)
	}
	return out
}

type captureNotify struct{ messages []notify.Message }

func (n *captureNotify) Dispatch(msg notify.Message) { n.messages = append(n.messages, msg) }
