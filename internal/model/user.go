package model

// User is the authenticated user's profile. The backend spells this
// field "nickName" here but "nickname" on feeds; both are preserved.
type User struct {
	NickName     string `json:"nickName"`
	ProfileImage string `json:"profileImage"`
	FamilyID     int64  `json:"familyId"`
}
