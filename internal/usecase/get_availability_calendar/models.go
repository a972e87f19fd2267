package get_availability_calendar

import (
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Request модель запроса календаря доступности
type Request struct {
	TenantID int64
	From     time.Time // первая дата, zero = сегодня по времени салона
	Days     int       // количество дней, 0 = DefaultCalendarDays
	MenuIDs  []int64
	StaffID  *int64
}

// Response модель ответа календаря доступности
type Response struct {
	TenantID int64
	From     time.Time
	Days     []Day // по возрастанию даты
}

// Day доступность на одну дату
type Day struct {
	Date      time.Time
	Available bool
	Slots     []types.TimeString
}
