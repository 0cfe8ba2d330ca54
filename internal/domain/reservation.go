package domain

import "time"

type ReservationStatus string

const (
	ReservationConfirmed   ReservationStatus = "CONFIRMED"
	ReservationProvisional ReservationStatus = "PROVISIONAL"
	ReservationCancelled   ReservationStatus = "CANCELLED"
)

func IsValidReservationStatus(s ReservationStatus) bool {
	switch s {
	case ReservationConfirmed, ReservationProvisional, ReservationCancelled:
		return true
	}
	return false
}

type Reservation struct {
	ID        string            `json:"id"`
	TenantID  string            `json:"tenant_id"`
	RoomID    *string           `json:"room_id,omitempty"`
	GuestName string            `json:"guest_name"`
	CheckIn   time.Time         `json:"check_in"`
	CheckOut  time.Time         `json:"check_out"`
	Status    ReservationStatus `json:"status"`
	Amount    int64             `json:"amount"`
	Deposit   int64             `json:"deposit"`
	Source    string            `json:"source"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`

	// Room is attached on reads when the reservation references one.
	Room *Room `json:"room,omitempty"`
}

type CreateReservationRequest struct {
	GuestName string            `json:"guestName" validate:"required"`
	CheckIn   time.Time         `json:"checkIn" validate:"required"`
	CheckOut  time.Time         `json:"checkOut" validate:"required,gtfield=CheckIn"`
	RoomID    *string           `json:"roomId,omitempty"`
	Status    ReservationStatus `json:"status" validate:"omitempty,oneof=CONFIRMED PROVISIONAL CANCELLED"`
	Amount    int64             `json:"amount" validate:"gte=0"`
	Deposit   int64             `json:"deposit" validate:"gte=0"`
	Source    string            `json:"source"`
}

type UpdateReservationStatusRequest struct {
	Status ReservationStatus `json:"status" validate:"required,oneof=CONFIRMED PROVISIONAL CANCELLED"`
}
