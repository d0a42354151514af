package get_available_slots

import (
	"time"

	"github.com/m04kA/Salon-BookingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Date      time.Time // Дата для получения слотов (без времени)
	ServiceID int64     // ID услуги (определяет длительность)
	StaffID   *int64    // ID сотрудника; nil = любой сотрудник
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time          // Дата, на которую запрашивались слоты
	ServiceID       int64              // ID услуги
	StaffID         *int64             // ID сотрудника (если запрашивался)
	DurationMinutes int                // Длительность услуги в минутах
	Slots           []types.TimeString // Времена начала свободных слотов
}
