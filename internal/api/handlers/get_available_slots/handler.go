package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
)

const (
	msgInvalidTenantID = "некорректный ID салона"
	msgInvalidMenuIDs  = "некорректный список меню"
	msgInvalidStaffID  = "некорректный ID сотрудника"
	msgMissingDate     = "дата обязательна"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput    = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/tenants/{tenantId}/available-slots
// Query params: date (required, YYYY-MM-DD), menuIds (1,2,...), staffId (optional).
// Поддерживаются старые имена параметров menu_id и staff_id.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, err := handlers.ParsePathID(mux.Vars(r)["tenantId"])
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/available-slots - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /tenants/{id}/available-slots - Missing date: tenant_id=%d", tenantID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	menuIDs, err := handlers.ParseIDList(query, "menuIds", "menu_id")
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/available-slots - Invalid menu IDs: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMenuIDs)
		return
	}

	staffID, err := handlers.ParseOptionalID(query, "staffId", "staff_id")
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/available-slots - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	useCaseReq, err := ToUseCaseRequest(tenantID, dateStr, menuIDs, staffID)
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /tenants/{id}/available-slots - Invalid input: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("GET /tenants/{id}/available-slots - Failed to get slots: tenant_id=%d, date=%s, error=%v",
				tenantID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /tenants/{id}/available-slots - Slots retrieved successfully: tenant_id=%d, date=%s, slots_count=%d",
		tenantID, dateStr, len(response))
	handlers.RespondJSON(w, http.StatusOK, response)
}
