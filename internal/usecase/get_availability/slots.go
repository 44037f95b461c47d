package get_availability

import (
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

// horizonDays возвращает полночь каждой даты горизонта начиная с сегодняшней
func horizonDays(policy domain.BookingPolicy, now time.Time) []time.Time {
	today := policy.StartOfDay(now)
	days := make([]time.Time, 0, policy.HorizonDays)
	for i := 0; i < policy.HorizonDays; i++ {
		days = append(days, time.Date(today.Year(), today.Month(), today.Day()+i, 0, 0, 0, 0, today.Location()))
	}
	return days
}

// nextDay полночь следующей календарной даты (учитывает сутки длиной 23/25 часов)
func nextDay(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day()+1, 0, 0, 0, 0, day.Location())
}

// enumerateDay генерирует свободные времена начала одной даты.
// Кандидаты идут по сетке политики от полуночи; пропускаются blackout, прошедшие моменты
// (кандидат ровно в now остаётся) и пересечения с существующими бронированиями
func enumerateDay(
	policy domain.BookingPolicy,
	day time.Time,
	duration time.Duration,
	now time.Time,
	reservations []*domain.Reservation,
) []Slot {
	grid := policy.SlotGrid()
	y, m, d := day.Date()
	loc := day.Location()

	slots := make([]Slot, 0)
	for offset := time.Duration(0); offset < 24*time.Hour; offset += grid {
		hour := int(offset / time.Hour)
		minute := int((offset % time.Hour) / time.Minute)

		start := time.Date(y, m, d, hour, minute, 0, 0, loc)
		// Местное время, пропущенное при переходе на летнее время
		if start.Hour() != hour || start.Minute() != minute {
			continue
		}

		if policy.InBlackout(start) {
			continue
		}

		if start.Before(now) {
			continue
		}

		end := start.Add(duration)
		if domain.FindConflict(start, end, reservations) != nil {
			continue
		}

		slots = append(slots, Slot{
			Label:   start.Format(domain.TimeFormat),
			StartAt: start,
			EndAt:   end,
		})
	}

	return slots
}
