package models

// User is a registered account. Log holds the ids of the user's exercises in
// insertion order; Count is derived from it and must equal len(Log) after any
// mutation.
type User struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Count    int      `json:"count"`
	Log      []string `json:"log"`
}
