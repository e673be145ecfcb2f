package entity

import "time"

const (
	CallStatusCalling = "calling"
	CallStatusActive  = "active"
	CallStatusEnded   = "ended"
)

type VideoCall struct {
	ID        string     `json:"id"`
	CallerID  string     `json:"caller_id"`
	CalleeID  string     `json:"callee_id"`
	Status    string     `json:"status"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	Duration  *int       `json:"duration,omitempty"`
}

// Other returns the participant on the other end of the call.
func (that *VideoCall) Other(userID string) string {
	if userID == that.CallerID {
		return that.CalleeID
	}

	return that.CallerID
}

func (that *VideoCall) HasParticipant(userID string) bool {
	return userID == that.CallerID || userID == that.CalleeID
}
