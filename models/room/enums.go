package room

type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "available"
	RoomStatusOccupied    RoomStatus = "occupied"
	RoomStatusCleaning    RoomStatus = "cleaning"
	RoomStatusMaintenance RoomStatus = "maintenance"
)

func (rs RoomStatus) String() string {
	return string(rs)
}

func (rs RoomStatus) IsValid() bool {
	switch rs {
	case RoomStatusAvailable, RoomStatusOccupied, RoomStatusCleaning, RoomStatusMaintenance:
		return true
	default:
		return false
	}
}

// GetAllRoomStatuses returns all valid room statuses
func GetAllRoomStatuses() []RoomStatus {
	return []RoomStatus{
		RoomStatusAvailable,
		RoomStatusOccupied,
		RoomStatusCleaning,
		RoomStatusMaintenance,
	}
}
