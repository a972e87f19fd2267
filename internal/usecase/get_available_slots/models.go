package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Режимы расчета (метка метрики availability_slots_returned)
const (
	ModeStaff = "staff" // запрошен конкретный сотрудник
	ModePool  = "pool"  // любой свободный сотрудник
)

// Request модель запроса на получение доступных слотов
type Request struct {
	TenantID int64     // ID тенанта (салона)
	Date     time.Time // Дата в локальном времени салона (время игнорируется)
	MenuIDs  []int64   // ID выбранных меню, пусто = длительность по умолчанию
	StaffID  *int64    // nil = любой сотрудник
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time
	TenantID        int64
	StaffID         *int64
	DurationMinutes int                // Суммарная длительность выбранных меню
	Slots           []types.TimeString // Время начала, по возрастанию
}
