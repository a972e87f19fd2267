package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// GetDayBookingsRequest запрос на получение бронирований салона за день
type GetDayBookingsRequest struct {
	TenantID int64
	Date     time.Time
	Status   *string // опционально
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetDayBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		TenantID: r.TenantID,
		Date:     r.Date,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = status
	}

	return filter, nil
}

// BookingResponse бронирование с вычисленной длительностью
type BookingResponse struct {
	ID              int64  `json:"id"`
	TenantID        int64  `json:"tenantId"`
	BookingDate     string `json:"bookingDate"` // "2025-06-02"
	StartTime       string `json:"startTime"`   // "10:00"
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	StaffID         *int64 `json:"staffId,omitempty"`
	Status          string `json:"status"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// ToDomainBookingStatus проверяет и конвертирует статус
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	switch status := domain.BookingStatus(s); status {
	case domain.StatusConfirmed, domain.StatusCancelled, domain.StatusCompleted:
		return status, nil
	default:
		return "", ErrInvalidStatus
	}
}

// FromDomainBooking конвертирует domain модель в DTO.
// Длительность без меню считается как 60 минут, как и при расчете слотов.
func FromDomainBooking(b *domain.Booking) BookingResponse {
	duration := b.DurationMinutes
	if duration <= 0 {
		duration = domain.DefaultServiceDurationMinutes
	}

	return BookingResponse{
		ID:              b.ID,
		TenantID:        b.TenantID,
		BookingDate:     b.BookingDate.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		EndTime:         b.EndTime(duration).String(),
		DurationMinutes: duration,
		StaffID:         b.StaffID,
		Status:          string(b.Status),
	}
}

// FromDomainBookingList конвертирует список бронирований
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{Bookings: make([]BookingResponse, 0, len(bookings))}
	for _, b := range bookings {
		if b == nil {
			continue
		}
		resp.Bookings = append(resp.Bookings, FromDomainBooking(b))
	}
	return resp
}
