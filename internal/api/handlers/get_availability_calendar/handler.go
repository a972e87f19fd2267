package get_availability_calendar

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	getCalendar "github.com/m04kA/SMC-SalonService/internal/usecase/get_availability_calendar"
)

const (
	msgInvalidTenantID = "некорректный ID салона"
	msgInvalidMenuIDs  = "некорректный список меню"
	msgInvalidStaffID  = "некорректный ID сотрудника"
	msgInvalidFrom     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDays     = "некорректное количество дней"
	msgInvalidInput    = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailabilityCalendarUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/tenants/{tenantId}/availability-calendar
// Query params: from (YYYY-MM-DD, по умолчанию сегодня), days (1..31, по умолчанию 14), menuIds, staffId
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, err := handlers.ParsePathID(mux.Vars(r)["tenantId"])
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/availability-calendar - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	query := r.URL.Query()
	req := &getCalendar.Request{TenantID: tenantID}

	if fromStr := query.Get("from"); fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			h.logger.Warn("GET /tenants/{id}/availability-calendar - Invalid from: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFrom)
			return
		}
		req.From = from
	}

	if daysStr := query.Get("days"); daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil || days < 1 || days > domain.MaxCalendarDays {
			h.logger.Warn("GET /tenants/{id}/availability-calendar - Invalid days: %q", daysStr)
			handlers.RespondBadRequest(w, msgInvalidDays)
			return
		}
		req.Days = days
	}

	if req.MenuIDs, err = handlers.ParseIDList(query, "menuIds", "menu_id"); err != nil {
		h.logger.Warn("GET /tenants/{id}/availability-calendar - Invalid menu IDs: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMenuIDs)
		return
	}

	if req.StaffID, err = handlers.ParseOptionalID(query, "staffId", "staff_id"); err != nil {
		h.logger.Warn("GET /tenants/{id}/availability-calendar - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getCalendar.ErrInvalidInput):
			h.logger.Warn("GET /tenants/{id}/availability-calendar - Invalid input: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("GET /tenants/{id}/availability-calendar - Failed to build calendar: tenant_id=%d, error=%v",
				tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tenants/{id}/availability-calendar - Calendar retrieved successfully: tenant_id=%d, days=%d",
		tenantID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
