package handler

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/tripterrior/tripterrior/internal/api"
	"github.com/tripterrior/tripterrior/internal/auth"
	"github.com/tripterrior/tripterrior/internal/like"
	"github.com/tripterrior/tripterrior/internal/model"
	ws "github.com/tripterrior/tripterrior/internal/websocket"
)

// FeedHandler serves the feed list, the feed detail page, and the
// comment/like partials underneath it.
type FeedHandler struct {
	api       *api.Client
	hub       *ws.Hub
	templates *template.Template
	logger    *slog.Logger
}

func NewFeedHandler(client *api.Client, hub *ws.Hub, templates *template.Template, logger *slog.Logger) *FeedHandler {
	return &FeedHandler{
		api:       client,
		hub:       hub,
		templates: templates,
		logger:    logger,
	}
}

const defaultFeedPageSize = 10

// likeButtonView renders a like button for a feed or a comment. Author
// and Viewer ride along in the form so the self-like guard survives
// partial re-renders.
type likeButtonView struct {
	TargetID int64
	Liked    bool
	Count    int
	Author   string
	Viewer   string
	Own      bool
	Error    string
}

type commentView struct {
	model.Comment
	Own  bool // viewer wrote this comment; shows the delete button
	Like likeButtonView
}

// commentSectionView is the comment block under a feed. Write failures
// are always surfaced through Error, never dropped.
type commentSectionView struct {
	FeedID   int64
	Comments []commentView
	User     *model.User
	Error    string
}

// feedView is the feed detail page data with image keys resolved to URLs.
type feedView struct {
	Feed      *model.Feed
	User      *model.User
	ImageURLs []string
	Like      likeButtonView
	Comments  commentSectionView
}

// List serves GET / with one page of the feed.
func (h *FeedHandler) List(w http.ResponseWriter, r *http.Request) {
	token := auth.Token(r.Context())

	page := 1
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}

	feeds, err := h.api.FetchFeeds(r.Context(), token, page, defaultFeedPageSize)
	if err != nil {
		h.handleFetchErr(w, r, "fetch feeds", err)
		return
	}

	user, err := h.api.FetchUser(r.Context(), token)
	if err != nil {
		h.handleFetchErr(w, r, "fetch user", err)
		return
	}

	render(w, h.templates, h.logger, "feeds.html", map[string]any{
		"Feeds":    feeds,
		"User":     user,
		"Page":     page,
		"PrevPage": page - 1,
		"NextPage": page + 1,
	})
}

// Detail serves GET /main/{id}: the feed post with comments and likes.
func (h *FeedHandler) Detail(w http.ResponseWriter, r *http.Request) {
	token := auth.Token(r.Context())
	id := r.PathValue("id")

	feed, err := h.api.FetchFeedDetail(r.Context(), token, id)
	if err != nil {
		h.handleFetchErr(w, r, "fetch feed detail", err)
		return
	}

	user, err := h.api.FetchUser(r.Context(), token)
	if err != nil {
		h.handleFetchErr(w, r, "fetch user", err)
		return
	}

	urls := make([]string, 0, len(feed.ImageList))
	for _, key := range feed.ImageList {
		urls = append(urls, h.api.ImageURL(key))
	}

	render(w, h.templates, h.logger, "feed.html", feedView{
		Feed:      feed,
		User:      user,
		ImageURLs: urls,
		Like: likeButtonView{
			TargetID: feed.ID,
			Liked:    feed.IsLiked,
			Count:    feed.LikeCnt,
			Author:   feed.Nickname,
			Viewer:   user.NickName,
			Own:      feed.Nickname == user.NickName,
		},
		Comments: buildCommentSection(feed, user, ""),
	})
}

// CommentSection serves GET /partials/feeds/{id}/comments: the current
// comment block, re-pulled by open pages when another family member's
// comment write is broadcast.
func (h *FeedHandler) CommentSection(w http.ResponseWriter, r *http.Request) {
	h.renderCommentSection(w, r, r.PathValue("id"), "")
}

// CommentCreate handles POST /partials/feeds/{id}/comments and returns
// the refreshed comment section.
func (h *FeedHandler) CommentCreate(w http.ResponseWriter, r *http.Request) {
	token := auth.Token(r.Context())
	feedID := r.PathValue("id")

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	text := strings.TrimSpace(r.FormValue("comment"))
	if text == "" {
		h.renderCommentSection(w, r, feedID, "댓글을 입력하세요.")
		return
	}

	if err := h.api.CreateComment(r.Context(), token, feedID, text); err != nil {
		h.logger.Error("create comment", "feed_id", feedID, "error", err)
		h.renderCommentSection(w, r, feedID, "댓글 추가에 실패 했습니다")
		return
	}

	if id, err := strconv.ParseInt(feedID, 10, 64); err == nil {
		h.hub.Broadcast(ws.NewMessage("comment", "created", id))
	}
	h.renderCommentSection(w, r, feedID, "")
}

// CommentDelete handles DELETE /partials/feeds/{id}/comments/{commentID}.
func (h *FeedHandler) CommentDelete(w http.ResponseWriter, r *http.Request) {
	token := auth.Token(r.Context())
	feedID := r.PathValue("id")
	commentID := r.PathValue("commentID")

	if err := h.api.DeleteComment(r.Context(), token, commentID); err != nil {
		h.logger.Error("delete comment", "comment_id", commentID, "error", err)
		h.renderCommentSection(w, r, feedID, "댓글 삭제에 실패 했습니다")
		return
	}

	if id, err := strconv.ParseInt(commentID, 10, 64); err == nil {
		h.hub.Broadcast(ws.NewMessage("comment", "deleted", id))
	}
	h.renderCommentSection(w, r, feedID, "")
}

// FeedLike handles POST /partials/feeds/{id}/like. The form carries the
// state the button was rendered with; the toggle flips it optimistically
// and the partial reflects the confirmed or rolled-back outcome.
func (h *FeedHandler) FeedLike(w http.ResponseWriter, r *http.Request) {
	h.toggleLike(w, r, "like-button", func(ctx context.Context, token string, id int64, liked bool) error {
		if liked {
			return h.api.LikeFeed(ctx, token, id)
		}
		return h.api.UnlikeFeed(ctx, token, id)
	})
}

// CommentLike handles POST /partials/comments/{id}/like.
func (h *FeedHandler) CommentLike(w http.ResponseWriter, r *http.Request) {
	h.toggleLike(w, r, "comment-like-button", func(ctx context.Context, token string, id int64, liked bool) error {
		if liked {
			return h.api.LikeComment(ctx, token, id)
		}
		return h.api.UnlikeComment(ctx, token, id)
	})
}

func (h *FeedHandler) toggleLike(w http.ResponseWriter, r *http.Request, partial string, call func(ctx context.Context, token string, id int64, liked bool) error) {
	token := auth.Token(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	count, _ := strconv.Atoi(r.FormValue("count"))
	view := likeButtonView{
		TargetID: id,
		Liked:    r.FormValue("liked") == "true",
		Count:    count,
		Author:   r.FormValue("author"),
		Viewer:   r.FormValue("viewer"),
	}
	view.Own = view.Author != "" && view.Author == view.Viewer

	if view.Own {
		view.Error = "자신의 글에는 좋아요를 누를 수 없습니다."
		render(w, h.templates, h.logger, partial, view)
		return
	}

	tg := like.NewToggler(view.Liked, view.Count)
	res, err := tg.Toggle(r.Context(), func(ctx context.Context, desired bool) error {
		return call(ctx, token, id, desired)
	})
	if err != nil {
		h.logger.Error("toggle like", "target_id", id, "error", err)
		view.Error = "좋아요 처리에 실패 했습니다"
	}
	view.Liked = res.Liked
	view.Count = res.Count

	render(w, h.templates, h.logger, partial, view)
}

// renderCommentSection re-fetches the feed and renders the comment
// block. msg, when non-empty, is shown inline above the input.
func (h *FeedHandler) renderCommentSection(w http.ResponseWriter, r *http.Request, feedID, msg string) {
	token := auth.Token(r.Context())

	feed, err := h.api.FetchFeedDetail(r.Context(), token, feedID)
	if err != nil {
		h.logger.Error("refresh comment section", "feed_id", feedID, "error", err)
		render(w, h.templates, h.logger, "form-error", map[string]string{"Error": "댓글 목록을 불러오지 못했습니다"})
		return
	}

	user, err := h.api.FetchUser(r.Context(), token)
	if err != nil {
		h.logger.Error("refresh comment section user", "feed_id", feedID, "error", err)
		render(w, h.templates, h.logger, "form-error", map[string]string{"Error": "댓글 목록을 불러오지 못했습니다"})
		return
	}

	render(w, h.templates, h.logger, "comment-section", buildCommentSection(feed, user, msg))
}

func buildCommentSection(feed *model.Feed, user *model.User, msg string) commentSectionView {
	comments := make([]commentView, 0, len(feed.CommentList))
	for _, cm := range feed.CommentList {
		comments = append(comments, commentView{
			Comment: cm,
			Own:     cm.Nickname == user.NickName,
			Like: likeButtonView{
				TargetID: cm.ID,
				Liked:    cm.IsLiked,
				Count:    cm.LikeCnt,
				Author:   cm.Nickname,
				Viewer:   user.NickName,
				Own:      cm.Nickname == user.NickName,
			},
		})
	}
	return commentSectionView{
		FeedID:   feed.ID,
		Comments: comments,
		User:     user,
		Error:    msg,
	}
}

// handleFetchErr maps read failures: expired or missing auth goes back
// to sign-in, everything else becomes a 502 with a logged cause.
func (h *FeedHandler) handleFetchErr(w http.ResponseWriter, r *http.Request, op string, err error) {
	if api.StatusOf(err) == http.StatusUnauthorized {
		redirectToSignIn(w, r)
		return
	}

	var fe *api.FetchError
	if errors.As(err, &fe) {
		h.logger.Error(op, "error", err)
		http.Error(w, "데이터를 불러오지 못했습니다", http.StatusBadGateway)
		return
	}

	h.logger.Error(op, "error", err)
	http.Error(w, "server error", http.StatusInternalServerError)
}

func redirectToSignIn(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/signin")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/signin", http.StatusSeeOther)
}
