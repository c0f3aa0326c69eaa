package domain

import "time"

// VehicleClass represents the class of vehicle a captain drives.
type VehicleClass string

const (
	VehicleClassSolo  VehicleClass = "solo"
	VehicleClassShare VehicleClass = "share"
)

// Captain represents a driver in the system.
//
// A captain's live position is not stored here: it lives in the Redis
// geo index and is refreshed over the realtime channel while the
// captain is online.
type Captain struct {
	ID           string
	Name         string
	Phone        string
	PasswordHash string
	VehiclePlate string
	VehicleClass VehicleClass
	CreatedAt    time.Time
}

// CaptainLocation represents a captain's last reported position.
type CaptainLocation struct {
	CaptainID string
	Lat       float64
	Lng       float64
}
