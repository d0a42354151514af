package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrSeriesNotFound возвращается, когда серия бронирований не найдена
	ErrSeriesNotFound = errors.New("reservation.repository: series not found")

	// ErrSeriesAlreadyLinked возвращается при попытке изменить ссылку на серию
	// Привязка к серии неизменяема после установки
	ErrSeriesAlreadyLinked = errors.New("reservation.repository: reservation already linked to a series")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
