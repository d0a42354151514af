package create_group_booking

import "errors"

var (
	// ErrCustomerNotFound возвращается, когда клиент из группы не найден
	ErrCustomerNotFound = errors.New("create_group_booking: customer not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_group_booking: service not found")

	// ErrStaffNotFound возвращается, когда сотрудник не найден
	ErrStaffNotFound = errors.New("create_group_booking: staff member not found")

	// ErrSlotOccupied возвращается, когда выбранный слот пересекается с активным бронированием
	ErrSlotOccupied = errors.New("create_group_booking: slot is already occupied")

	// ErrOutsideOperatingHours возвращается, когда интервал не помещается в рабочее окно салона
	ErrOutsideOperatingHours = errors.New("create_group_booking: slot is outside operating hours")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_group_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_group_booking: internal error")
)
