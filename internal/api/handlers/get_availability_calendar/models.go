package get_availability_calendar

import (
	"github.com/m04kA/SMC-SalonService/internal/domain"
	getCalendar "github.com/m04kA/SMC-SalonService/internal/usecase/get_availability_calendar"
)

// CalendarResponse HTTP response model
type CalendarResponse struct {
	From string        `json:"from"`
	Days []CalendarDay `json:"days"`
}

// CalendarDay доступность на дату
type CalendarDay struct {
	Date      string   `json:"date"`
	Available bool     `json:"available"`
	Slots     []string `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getCalendar.Response) *CalendarResponse {
	days := make([]CalendarDay, len(resp.Days))
	for i, day := range resp.Days {
		slots := make([]string, len(day.Slots))
		for j, s := range day.Slots {
			slots[j] = s.String()
		}
		days[i] = CalendarDay{
			Date:      day.Date.Format(domain.DateFormat),
			Available: day.Available,
			Slots:     slots,
		}
	}

	return &CalendarResponse{
		From: resp.From.Format(domain.DateFormat),
		Days: days,
	}
}
