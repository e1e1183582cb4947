package model

// Feed is a travel post as returned by the backend's feed-detail endpoint.
type Feed struct {
	ID           int64     `json:"id"`
	Nickname     string    `json:"nickname"`
	ProfileImage string    `json:"profileImage"`
	Place        string    `json:"place"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	ImageList    []string  `json:"imageList"`
	LikeCnt      int       `json:"likeCnt"`
	IsLiked      bool      `json:"isLiked"`
	CreateDate   string    `json:"createDate"`
	CommentList  []Comment `json:"commentList"`
}

// FeedSummary is a single entry in the paginated feed list.
type FeedSummary struct {
	ID           int64  `json:"id"`
	Nickname     string `json:"nickname"`
	ProfileImage string `json:"profileImage"`
	Place        string `json:"place"`
	Title        string `json:"title"`
	LikeCnt      int    `json:"likeCnt"`
	CommentCnt   int    `json:"commentCnt"`
	CreateDate   string `json:"createDate"`
}

type Comment struct {
	ID           int64  `json:"id"`
	Nickname     string `json:"nickname"`
	ProfileImage string `json:"profileImage"`
	Comment      string `json:"comment"`
	CreatedAt    string `json:"createdAt"`
	LikeCnt      int    `json:"likeCnt"`
	IsLiked      bool   `json:"isLiked"`
}
