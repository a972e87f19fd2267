package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
)

// FromUseCaseResponse конвертирует ответ use case в список "HH:MM"
func FromUseCaseResponse(resp *getAvailableSlots.Response) []string {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}
	return slots
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(tenantID int64, dateStr string, menuIDs []int64, staffID *int64) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		TenantID: tenantID,
		Date:     date,
		MenuIDs:  menuIDs,
		StaffID:  staffID,
	}, nil
}
