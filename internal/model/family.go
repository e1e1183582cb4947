package model

// Family is the group that owns a shared travel calendar.
type Family struct {
	ID           int64  `json:"id"`
	Nickname     string `json:"nickname"`
	ProfileImage string `json:"profileImage"`
}
