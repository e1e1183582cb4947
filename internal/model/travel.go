package model

// TravelRecord is a scheduled trip owned by the remote backend.
// Dates are "YYYY-MM-DD" strings as transmitted on the wire.
type TravelRecord struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	StartDate string          `json:"startDate"`
	EndDate   string          `json:"endDate"`
	Checklist []ChecklistItem `json:"checklist"`
	FamilyID  int64           `json:"familyId"`
}

type ChecklistItem struct {
	ID        int64  `json:"id"`
	CheckName string `json:"checkName"`
	Content   string `json:"content"`
	Success   bool   `json:"success"`
}

// TravelEvent is the display-ready projection of a TravelRecord for the
// calendar view. It is derived on every fetch and never stored.
type TravelEvent struct {
	Title string `json:"title"`
	Start string `json:"start"`
	End   string `json:"end"`
	Color string `json:"color"`
}
