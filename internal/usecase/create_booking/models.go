package create_booking

import (
	"time"

	"github.com/m04kA/Salon-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerID int64            // ID клиента
	ServiceID  int64            // ID услуги (определяет длительность)
	StaffID    *int64           // ID сотрудника; nil = любой мастер, запись блокирует всех
	Date       time.Time        // Дата бронирования (без времени)
	StartTime  types.TimeString // Время начала слота (например, "10:00")
	Notes      *string          // Дополнительные заметки (опционально)

	// JoinWaitlist - при занятом слоте создать запись в листе ожидания
	// вместо отказа; такая запись время не блокирует
	JoinWaitlist bool
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64            // ID созданного бронирования
	CustomerID      int64            // ID клиента
	ServiceID       int64            // ID услуги
	StaffID         *int64           // ID сотрудника
	Date            time.Time        // Дата бронирования
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность в минутах (скопирована из услуги)
	Status          string           // Статус бронирования
	PartySize       int              // Размер группы
	Notes           *string          // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
