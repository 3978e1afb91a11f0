package appointment

import (
	"time"

	"github.com/salonsuite/salon-scheduler/internal/httperr"
	"github.com/salonsuite/salon-scheduler/internal/models"
)

// DefaultDurationMin applies when neither a custom duration nor a catalog
// duration is known.
const DefaultDurationMin = 60

// ServiceSelection is what the appointment is for: either a catalog service
// (optionally with one of its options) or an ad-hoc custom entry typed in
// by staff. Keeping it a closed union makes duration and price resolution
// exhaustive instead of a pile of nullable fields.
type ServiceSelection struct {
	custom bool

	serviceID uint
	optionID  *uint

	customName        string
	customPriceCents  int
	customDurationMin int
}

func CatalogSelection(serviceID uint, optionID *uint) ServiceSelection {
	return ServiceSelection{serviceID: serviceID, optionID: optionID}
}

func CustomSelection(name string, priceCents, durationMin int) ServiceSelection {
	return ServiceSelection{
		custom:            true,
		customName:        name,
		customPriceCents:  priceCents,
		customDurationMin: durationMin,
	}
}

func (s ServiceSelection) IsCustom() bool { return s.custom }

func (s ServiceSelection) ServiceID() uint { return s.serviceID }

func (s ServiceSelection) OptionID() *uint { return s.optionID }

func (s ServiceSelection) CustomName() string { return s.customName }

func (s ServiceSelection) CustomPriceCents() int { return s.customPriceCents }

func (s ServiceSelection) CustomDurationMin() int { return s.customDurationMin }

// Validate rejects selections no booking can be built from.
func (s ServiceSelection) Validate() error {
	if s.custom {
		if s.customName == "" {
			return httperr.ErrBusiness("missing_custom_service_name")
		}
		if s.customPriceCents < 0 {
			return httperr.ErrBusiness("invalid_custom_price")
		}
		if s.customDurationMin < 0 {
			return httperr.ErrBusiness("invalid_custom_duration")
		}
		return nil
	}
	if s.serviceID == 0 {
		return httperr.ErrBusiness("missing_service")
	}
	return nil
}

// DurationMin resolves the effective duration in minutes:
// custom duration, else catalog duration plus option extra, else default.
func (s ServiceSelection) DurationMin(svc *models.Service, opt *models.ServiceOption) int {
	if s.custom {
		if s.customDurationMin > 0 {
			return s.customDurationMin
		}
		return DefaultDurationMin
	}

	d := 0
	if svc != nil {
		d = svc.DurationMin
	}
	if opt != nil {
		d += opt.ExtraDurationMin
	}
	if d <= 0 {
		return DefaultDurationMin
	}
	return d
}

func (s ServiceSelection) Duration(svc *models.Service, opt *models.ServiceOption) time.Duration {
	return time.Duration(s.DurationMin(svc, opt)) * time.Minute
}

// PriceCents resolves what the booking costs. Custom bookings are settled
// at the desk, so their price never goes through the payment gate.
func (s ServiceSelection) PriceCents(svc *models.Service, opt *models.ServiceOption) int {
	if s.custom {
		return s.customPriceCents
	}

	p := 0
	if svc != nil {
		p = svc.PriceCents
	}
	if opt != nil {
		p += opt.ExtraPriceCents
	}
	return p
}
