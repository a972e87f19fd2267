package get_day_bookings

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(tenantID int64, dateStr, statusStr string) (*models.GetDayBookingsRequest, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	req := &models.GetDayBookingsRequest{
		TenantID: tenantID,
		Date:     date,
	}
	if statusStr != "" {
		req.Status = &statusStr
	}

	return req, nil
}
