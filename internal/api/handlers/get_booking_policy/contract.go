package get_booking_policy

import "github.com/m04kA/SMC-LaundryService/internal/domain"

type PolicyProvider interface {
	Policy() domain.BookingPolicy
}
