package get_available_slots

import (
	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/pkg/types"
)

// generateTimeSlots генерирует все допустимые времена начала на день
// Сетка идет от открытия с фиксированным шагом, последний допустимый старт
// рассчитывается так, чтобы интервал целиком помещался до закрытия
func generateTimeSlots(calendar domain.BusinessCalendar, durationMinutes int) ([]types.TimeString, error) {
	slots := make([]types.TimeString, 0)
	current := calendar.OpeningTime()

	for {
		slotEnd, err := current.AddMinutes(durationMinutes)
		if err != nil {
			break
		}
		if slotEnd.IsAfter(calendar.ClosingTime()) {
			break
		}

		slots = append(slots, current)

		current, err = current.AddMinutes(calendar.SlotGranularityMinutes())
		if err != nil {
			break
		}
	}

	return slots, nil
}

// filterFreeSlots оставляет только те старты, интервал которых не пересекается
// ни с одним блокирующим бронированием
func filterFreeSlots(slots []types.TimeString, durationMinutes int, reservations []*domain.Reservation) []types.TimeString {
	free := make([]types.TimeString, 0, len(slots))

	for _, slotStart := range slots {
		if countOverlappingReservations(slotStart, durationMinutes, reservations) == 0 {
			free = append(free, slotStart)
		}
	}

	return free
}

// countOverlappingReservations подсчитывает количество бронирований, пересекающихся с указанным слотом
// Пересечение есть только если интервалы действительно накладываются друг на друга
// Если одно бронирование заканчивается ровно там, где начинается слот (или наоборот) - это НЕ пересечение
//
// Примеры:
// - Слот 11:30-12:30, бронирование 11:20-11:40 → ЕСТЬ пересечение (11:30-11:40)
// - Слот 11:30-12:30, бронирование 11:00-11:30 → НЕТ пересечения (граничат)
// - Слот 11:30-12:30, бронирование 12:30-13:00 → НЕТ пересечения (граничат)
func countOverlappingReservations(slotStart types.TimeString, durationMinutes int, reservations []*domain.Reservation) int {
	slotEnd, err := slotStart.AddMinutes(durationMinutes)
	if err != nil {
		// Если не можем вычислить конец слота, считаем что пересечений нет
		return 0
	}

	count := 0

	for _, res := range reservations {
		// Отмененные и ожидающие в листе ожидания не занимают время
		if !res.IsBlocking() {
			continue
		}

		resStart := res.StartTime
		resEnd, err := res.EndTime()
		if err != nil {
			continue
		}

		// Проверяем РЕАЛЬНОЕ пересечение временных интервалов
		// Интервалы пересекаются, только если:
		// - начало бронирования СТРОГО раньше конца слота И
		// - конец бронирования СТРОГО позже начала слота
		//
		// Используем строгие неравенства (IsBefore, IsAfter), чтобы граничные случаи не считались пересечением
		if resStart.IsBefore(slotEnd) && resEnd.IsAfter(slotStart) {
			count++
		}
	}

	return count
}
