package roster

// Participant is one scheduled attendee of a training session.
type Participant struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Department  string `json:"department"`
	SessionDate string `json:"session_date"`
	Time        string `json:"time"`
}
