package create_group_booking

import (
	"time"

	"github.com/m04kA/Salon-BookingService/pkg/types"
)

// Request модель запроса на создание групповой записи
// Группа хранится одной строкой: первый клиент из списка становится
// владельцем записи, размер группы равен длине списка
type Request struct {
	CustomerIDs []int64          // ID клиентов группы; первый - владелец записи
	ServiceID   int64            // ID услуги (определяет длительность)
	StaffID     *int64           // ID сотрудника; nil = любой мастер
	Date        time.Time        // Дата бронирования (без времени)
	StartTime   types.TimeString // Время начала слота
	Notes       *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной групповой записью
type Response struct {
	ID              int64            // ID созданного бронирования
	CustomerID      int64            // ID клиента-владельца (первый в списке)
	ServiceID       int64            // ID услуги
	StaffID         *int64           // ID сотрудника
	Date            time.Time        // Дата бронирования
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус бронирования
	PartySize       int              // Размер группы
	Notes           *string          // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
