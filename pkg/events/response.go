package events

import "time"

// Response action names (closed set; anything else fails closed).
const (
	ActionBlockIP     = "Block_IP"
	ActionDisableUser = "Disable_User"
	ActionIsolateHost = "Isolate_Host"
)

// Response statuses.
const (
	StatusSuccess = "Success"
	StatusFailed  = "Failed"
)

// ResponseRecord is one audited response action, success or failure.
type ResponseRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Target    string    `json:"target"`
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Executor  string    `json:"executor"`
}

// ResponseCommand is a remote response request (e.g. received over the bus).
type ResponseCommand struct {
	Action      string `json:"action"`
	Target      string `json:"target"`
	RequestedBy string `json:"requested_by"`
}
