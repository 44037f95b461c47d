package domain

import "time"

// Overlaps сообщает, пересекаются ли полуинтервалы [startA, endA) и [startB, endB)
// Интервал, который заканчивается ровно в момент начала другого, пересечением не считается
//
// Примеры:
// - 10:00-11:00 и 10:30-11:30 → ЕСТЬ пересечение
// - 10:00-11:00 и 11:00-12:00 → НЕТ пересечения (граничат)
func Overlaps(startA, endA, startB, endB time.Time) bool {
	return startA.Before(endB) && startB.Before(endA)
}

// FindConflict возвращает первое активное бронирование, пересекающееся с [start, end), или nil
// Используется и при расчёте доступности, и при проверке перед созданием бронирования
func FindConflict(start, end time.Time, reservations []*Reservation) *Reservation {
	for _, r := range reservations {
		if r == nil || !r.IsActive() {
			continue
		}
		if Overlaps(start, end, r.StartAt, r.EndAt) {
			return r
		}
	}
	return nil
}
