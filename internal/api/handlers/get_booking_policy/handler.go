package get_booking_policy

import (
	"net/http"

	"github.com/m04kA/SMC-LaundryService/internal/api/handlers"
)

type Handler struct {
	provider PolicyProvider
}

func NewHandler(provider PolicyProvider) *Handler {
	return &Handler{provider: provider}
}

// Handle GET /api/v1/policy
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, FromDomainPolicy(h.provider.Policy()))
}
