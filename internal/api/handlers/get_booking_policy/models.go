package get_booking_policy

import "github.com/m04kA/SMC-LaundryService/internal/domain"

// PolicyResponse действующие правила бронирования
type PolicyResponse struct {
	DurationMode  string         `json:"durationMode"`
	Durations     map[string]int `json:"durationMinutes"` // по категориям
	GridMinutes   int            `json:"gridMinutes"`
	BlackoutStart int            `json:"blackoutStartHour"`
	BlackoutEnd   int            `json:"blackoutEndHour"`
	HorizonDays   int            `json:"horizonDays"`
	Timezone      string         `json:"timezone"`
}

// FromDomainPolicy конвертирует политику в DTO
func FromDomainPolicy(p domain.BookingPolicy) *PolicyResponse {
	tz := "Local"
	if p.Location != nil {
		tz = p.Location.String()
	}

	return &PolicyResponse{
		DurationMode: string(p.Mode),
		Durations: map[string]int{
			string(domain.CategoryWasher): int(p.Duration(domain.CategoryWasher).Minutes()),
			string(domain.CategoryDryer):  int(p.Duration(domain.CategoryDryer).Minutes()),
		},
		GridMinutes:   int(p.SlotGrid().Minutes()),
		BlackoutStart: p.BlackoutStartHour,
		BlackoutEnd:   p.BlackoutEndHour,
		HorizonDays:   p.HorizonDays,
		Timezone:      tz,
	}
}
