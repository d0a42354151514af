package domain

import "time"

// Service represents a salon service from the catalog
type Service struct {
	ID              int64
	Name            string
	Category        *string
	DurationMinutes *int // nil = длительность не задана, используется DefaultDurationMinutes
	Price           float64
	Active          bool
	CreatedAt       time.Time
}

// EffectiveDuration returns the service duration, falling back to the default.
// The value is copied onto the reservation at creation time; later changes to
// the service never alter existing reservations.
func (s *Service) EffectiveDuration() int {
	if s.DurationMinutes == nil || *s.DurationMinutes <= 0 {
		return DefaultDurationMinutes
	}
	return *s.DurationMinutes
}

// Staff represents a salon staff member
type Staff struct {
	ID        int64
	FirstName string
	LastName  string
	Email     *string
	Role      *string
	Active    bool
	CreatedAt time.Time
}

// FullName returns the staff member's display name
func (s *Staff) FullName() string {
	return s.FirstName + " " + s.LastName
}

// Customer represents a salon customer
type Customer struct {
	ID        int64
	FirstName string
	LastName  string
	Email     *string
	Phone     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName returns the customer's display name
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
