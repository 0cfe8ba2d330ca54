package domain

import "time"

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "AVAILABLE"
	RoomOccupied    RoomStatus = "OCCUPIED"
	RoomMaintenance RoomStatus = "MAINTENANCE"
)

func IsValidRoomStatus(s RoomStatus) bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomMaintenance:
		return true
	}
	return false
}

type Room struct {
	ID        string     `json:"id"`
	TenantID  string     `json:"tenant_id"`
	Number    string     `json:"number"`
	Type      string     `json:"type"`
	Floor     string     `json:"floor"`
	Status    RoomStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CreateRoomRequest struct {
	Number string     `json:"number" validate:"required"`
	Type   string     `json:"type"`
	Floor  string     `json:"floor"`
	Status RoomStatus `json:"status" validate:"omitempty,oneof=AVAILABLE OCCUPIED MAINTENANCE"`
}

type UpdateRoomStatusRequest struct {
	Status RoomStatus `json:"status" validate:"required,oneof=AVAILABLE OCCUPIED MAINTENANCE"`
}
