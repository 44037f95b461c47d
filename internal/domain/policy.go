package domain

import (
	"errors"
	"fmt"
	"time"
)

// DurationMode способ расчёта длительности бронирования
type DurationMode string

const (
	// DurationByCategory длительность зависит от категории устройства (основной режим)
	DurationByCategory DurationMode = "category"
	// DurationFixed одна длительность для всех устройств (режим старой версии, 1.5 часа)
	DurationFixed DurationMode = "fixed"
)

// Правила, нарушение которых возвращается как policy violation
const (
	RuleBlackout = "blackout"
	RulePast     = "past"
	RuleHorizon  = "horizon"

	// RuleMalformedTime время начала не разбирается как ISO-8601 с часовым поясом
	RuleMalformedTime = "malformed_time"
)

// ErrInvalidPolicy возвращается при некорректной конфигурации политики
var ErrInvalidPolicy = errors.New("domain: invalid booking policy")

// BookingPolicy правила бронирования: длительности, сетка слотов, blackout, горизонт
type BookingPolicy struct {
	Mode           DurationMode
	WasherDuration time.Duration
	DryerDuration  time.Duration
	FixedDuration  time.Duration
	// Grid шаг сетки слотов; 0 = выводится из Mode
	Grid time.Duration

	// Blackout [BlackoutStartHour, BlackoutEndHour) по местному времени
	BlackoutStartHour int
	BlackoutEndHour   int

	HorizonDays    int
	Location       *time.Location
	RejectPast     bool
	EnforceHorizon bool
}

// DefaultBookingPolicy возвращает политику по умолчанию: стиральная 1ч, сушильная 2ч, сетка 1ч
func DefaultBookingPolicy() BookingPolicy {
	return BookingPolicy{
		Mode:              DurationByCategory,
		WasherDuration:    time.Duration(DefaultWasherMinutes) * time.Minute,
		DryerDuration:     time.Duration(DefaultDryerMinutes) * time.Minute,
		FixedDuration:     time.Duration(DefaultFixedMinutes) * time.Minute,
		BlackoutStartHour: DefaultBlackoutStartHour,
		BlackoutEndHour:   DefaultBlackoutEndHour,
		HorizonDays:       DefaultHorizonDays,
		Location:          time.Local,
		RejectPast:        true,
		EnforceHorizon:    true,
	}
}

// Validate проверяет согласованность политики
func (p BookingPolicy) Validate() error {
	switch p.Mode {
	case DurationByCategory:
		if p.WasherDuration <= 0 || p.DryerDuration <= 0 {
			return fmt.Errorf("%w: category durations must be positive", ErrInvalidPolicy)
		}
	case DurationFixed:
		if p.FixedDuration <= 0 {
			return fmt.Errorf("%w: fixed duration must be positive", ErrInvalidPolicy)
		}
	default:
		return fmt.Errorf("%w: unknown duration mode %q", ErrInvalidPolicy, p.Mode)
	}

	if p.Grid < 0 || (p.Grid > 0 && (24*time.Hour)%p.Grid != 0) {
		return fmt.Errorf("%w: grid must divide 24h", ErrInvalidPolicy)
	}
	if p.BlackoutStartHour < 0 || p.BlackoutStartHour > 24 || p.BlackoutEndHour < 0 || p.BlackoutEndHour > 24 {
		return fmt.Errorf("%w: blackout hours must be within 0..24", ErrInvalidPolicy)
	}
	if p.HorizonDays <= 0 {
		return fmt.Errorf("%w: horizon days must be positive", ErrInvalidPolicy)
	}
	if p.Location == nil {
		return fmt.Errorf("%w: location is required", ErrInvalidPolicy)
	}
	return nil
}

// Duration возвращает длительность бронирования для категории устройства
func (p BookingPolicy) Duration(category DeviceCategory) time.Duration {
	if p.Mode == DurationFixed {
		return p.FixedDuration
	}
	if category == CategoryDryer {
		return p.DryerDuration
	}
	return p.WasherDuration
}

// MaxDuration самая длинная возможная длительность бронирования
func (p BookingPolicy) MaxDuration() time.Duration {
	if p.Mode == DurationFixed {
		return p.FixedDuration
	}
	if p.DryerDuration > p.WasherDuration {
		return p.DryerDuration
	}
	return p.WasherDuration
}

// SlotGrid шаг сетки слотов: явно заданный, иначе 1ч для category и 30м для fixed
func (p BookingPolicy) SlotGrid() time.Duration {
	if p.Grid > 0 {
		return p.Grid
	}
	if p.Mode == DurationFixed {
		return 30 * time.Minute
	}
	return time.Hour
}

// InBlackout сообщает, попадает ли начало t в blackout по местному времени
// Поддерживается окно через полночь (например 22..6)
func (p BookingPolicy) InBlackout(t time.Time) bool {
	if p.BlackoutStartHour == p.BlackoutEndHour {
		return false
	}
	hour := t.In(p.location()).Hour()
	if p.BlackoutStartHour < p.BlackoutEndHour {
		return hour >= p.BlackoutStartHour && hour < p.BlackoutEndHour
	}
	return hour >= p.BlackoutStartHour || hour < p.BlackoutEndHour
}

// StartOfDay полночь календарного дня t по местному времени
func (p BookingPolicy) StartOfDay(t time.Time) time.Time {
	local := t.In(p.location())
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, p.location())
}

// HorizonEnd первый момент после горизонта: полночь дня today + HorizonDays
func (p BookingPolicy) HorizonEnd(now time.Time) time.Time {
	today := p.StartOfDay(now)
	return time.Date(today.Year(), today.Month(), today.Day()+p.HorizonDays, 0, 0, 0, 0, p.location())
}

func (p BookingPolicy) location() *time.Location {
	if p.Location == nil {
		return time.Local
	}
	return p.Location
}

// Local переводит t в часовой пояс политики
func (p BookingPolicy) Local(t time.Time) time.Time {
	return t.In(p.location())
}
