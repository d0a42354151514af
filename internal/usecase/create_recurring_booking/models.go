package create_recurring_booking

import (
	"time"

	"github.com/m04kA/Salon-BookingService/pkg/types"
)

// Request модель запроса на создание серии бронирований
type Request struct {
	CustomerID int64            // ID клиента
	ServiceID  int64            // ID услуги (определяет длительность)
	StaffID    *int64           // ID сотрудника; nil = любой мастер
	StartDate  time.Time        // Дата первого вхождения
	StartTime  types.TimeString // Время начала, одинаковое для всех вхождений
	Pattern    string           // Шаблон повторения: daily | weekly | monthly
	Count      int              // Количество вхождений, >= 2
	Notes      *string          // Дополнительные заметки (опционально)
}

// CreatedOccurrence созданное вхождение серии
type CreatedOccurrence struct {
	ReservationID int64
	Date          time.Time
}

// SkippedOccurrence пропущенное вхождение серии с причиной
type SkippedOccurrence struct {
	Date   time.Time
	Reason string
}

// Response модель ответа с результатом развертывания серии
// Серия создается по принципу best-effort: конфликтующие вхождения
// пропускаются, остальные создаются
type Response struct {
	SeriesID        *int64              // ID якорной записи; nil, если не создано ни одного вхождения
	DurationMinutes int                 // Длительность каждого вхождения
	Created         []CreatedOccurrence // Созданные вхождения в порядке дат
	Skipped         []SkippedOccurrence // Пропущенные вхождения с причинами
}
