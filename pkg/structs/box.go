package structs

import (
	"strings"
)

type BoxStatus string

const (
	BoxRunning      BoxStatus = "RUNNING"
	BoxStart        BoxStatus = "START"
	BoxProvisioning BoxStatus = "PROVISIONING"
	BoxStaging      BoxStatus = "STAGING"
	BoxStopping     BoxStatus = "STOPPING"
	BoxTerminated   BoxStatus = "TERMINATED"
)

// Box is a (GPU backed) worker machine.
type Box struct {
	ID        string    `json:"box_id"`
	Kind      string    `json:"kind"`
	IPAddress string    `json:"ip_address"`
	Zone      string    `json:"zone"`
	Status    BoxStatus `json:"status"`

	// UpdatedAt is unix time in seconds of the last inventory write
	UpdatedAt int64 `json:"updated_at"`
}

func ToBoxStatus(s string) BoxStatus {
	return BoxStatus(strings.ToUpper(strings.TrimSpace(s)))
}
