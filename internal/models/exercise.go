package models

// Exercise is a single log entry. Immutable once created; UserID must point at
// an existing user.
type Exercise struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        Date   `json:"date"`
}

// LogResult is what the log query returns: the user's identity plus the
// filtered exercise log. Count is the number of entries in Log, not the user's
// lifetime count.
type LogResult struct {
	ID       string     `json:"id"`
	Username string     `json:"username"`
	Count    int        `json:"count"`
	Log      []Exercise `json:"log"`
}
