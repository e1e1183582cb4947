package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripterrior/tripterrior/internal/model"
	ws "github.com/tripterrior/tripterrior/internal/websocket"
	"github.com/tripterrior/tripterrior/web"
)

// fakeFeedBackend serves the read endpoints the comment section needs to
// re-render and records writes for assertions.
type fakeFeedBackend struct {
	mux          *http.ServeMux
	commentBody  atomic.Pointer[string]
	likeCalls    atomic.Int32
	likeStatus   int
	deleteCalled atomic.Bool
}

func newFakeFeedBackend() *fakeFeedBackend {
	b := &fakeFeedBackend{mux: http.NewServeMux(), likeStatus: http.StatusOK}

	b.mux.HandleFunc("GET /api/v1/feed/{id}", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(model.Feed{
			ID:       7,
			Nickname: "엄마",
			Title:    "부산 여행",
			LikeCnt:  3,
			CommentList: []model.Comment{
				{ID: 11, Nickname: "아빠", Comment: "좋네요", LikeCnt: 1},
			},
		})
	})
	b.mux.HandleFunc("GET /api/v1/user", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(model.User{NickName: "아들", FamilyID: 1})
	})
	b.mux.HandleFunc("POST /api/v1/comment/{id}", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		s := string(body)
		b.commentBody.Store(&s)
		w.WriteHeader(http.StatusCreated)
	})
	b.mux.HandleFunc("DELETE /api/v1/comment/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.deleteCalled.Store(true)
		w.WriteHeader(http.StatusOK)
	})
	b.mux.HandleFunc("POST /api/v1/feed/{id}/like", func(w http.ResponseWriter, r *http.Request) {
		b.likeCalls.Add(1)
		w.WriteHeader(b.likeStatus)
	})
	b.mux.HandleFunc("DELETE /api/v1/feed/{id}/like", func(w http.ResponseWriter, r *http.Request) {
		b.likeCalls.Add(1)
		w.WriteHeader(b.likeStatus)
	})

	return b
}

func newFeedHandler(t *testing.T, backend *fakeFeedBackend) *FeedHandler {
	t.Helper()
	client := newBackend(t, backend.mux)
	logger := testLogger()
	return NewFeedHandler(client, ws.NewHub(logger), web.Templates(), logger)
}

func TestCommentSectionPartial(t *testing.T) {
	backend := newFakeFeedBackend()
	h := newFeedHandler(t, backend)

	req := authedRequest(http.MethodGet, "/partials/feeds/7/comments", "")
	req.SetPathValue("id", "7")

	rec := httptest.NewRecorder()
	h.CommentSection(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `id="comment-section"`)
	// The live-refresh script locates the section by its feed id.
	assert.Contains(t, body, `data-feed-id="7"`)
	assert.Contains(t, body, "좋네요")
}

func TestCommentCreateEmptyInput(t *testing.T) {
	backend := newFakeFeedBackend()
	h := newFeedHandler(t, backend)

	form := url.Values{"comment": {"   "}}
	req := authedRequest(http.MethodPost, "/partials/feeds/7/comments", form.Encode())
	req.SetPathValue("id", "7")

	rec := httptest.NewRecorder()
	h.CommentCreate(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "댓글을 입력하세요.")
	assert.Nil(t, backend.commentBody.Load(), "backend must not receive an empty comment")
}

func TestCommentCreateSendsRawText(t *testing.T) {
	backend := newFakeFeedBackend()
	h := newFeedHandler(t, backend)

	form := url.Values{"comment": {"멋진 사진이에요"}}
	req := authedRequest(http.MethodPost, "/partials/feeds/7/comments", form.Encode())
	req.SetPathValue("id", "7")

	rec := httptest.NewRecorder()
	h.CommentCreate(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	sent := backend.commentBody.Load()
	require.NotNil(t, sent)
	assert.Equal(t, "멋진 사진이에요", *sent)
	// Refreshed section comes back, without an error message.
	assert.Contains(t, rec.Body.String(), `id="comment-section"`)
	assert.NotContains(t, rec.Body.String(), "실패")
}

func TestCommentDeleteFailureSurfacesError(t *testing.T) {
	backend := newFakeFeedBackend()
	// The backend rejects deleting this particular comment.
	backend.mux.HandleFunc("DELETE /api/v1/comment/99", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	h := newFeedHandler(t, backend)

	req := authedRequest(http.MethodDelete, "/partials/feeds/7/comments/99", "")
	req.SetPathValue("id", "7")
	req.SetPathValue("commentID", "99")

	rec := httptest.NewRecorder()
	h.CommentDelete(rec, req)

	assert.Contains(t, rec.Body.String(), "댓글 삭제에 실패 했습니다")
}

func TestFeedLikeOptimisticConfirm(t *testing.T) {
	backend := newFakeFeedBackend()
	h := newFeedHandler(t, backend)

	form := url.Values{
		"liked":  {"false"},
		"count":  {"3"},
		"author": {"엄마"},
		"viewer": {"아들"},
	}
	req := authedRequest(http.MethodPost, "/partials/feeds/7/like", form.Encode())
	req.SetPathValue("id", "7")

	rec := httptest.NewRecorder()
	h.FeedLike(rec, req)

	assert.Equal(t, int32(1), backend.likeCalls.Load())
	body := rec.Body.String()
	assert.Contains(t, body, `name="liked" value="true"`)
	assert.Contains(t, body, `name="count" value="4"`)
	assert.NotContains(t, body, "실패")
}

func TestFeedLikeRollbackOnBackendError(t *testing.T) {
	backend := newFakeFeedBackend()
	backend.likeStatus = http.StatusInternalServerError
	h := newFeedHandler(t, backend)

	form := url.Values{
		"liked":  {"false"},
		"count":  {"3"},
		"author": {"엄마"},
		"viewer": {"아들"},
	}
	req := authedRequest(http.MethodPost, "/partials/feeds/7/like", form.Encode())
	req.SetPathValue("id", "7")

	rec := httptest.NewRecorder()
	h.FeedLike(rec, req)

	// Optimistic flip rolled back: state reads as it did before the tap.
	body := rec.Body.String()
	assert.Contains(t, body, `name="liked" value="false"`)
	assert.Contains(t, body, `name="count" value="3"`)
	assert.Contains(t, body, "좋아요 처리에 실패 했습니다")
}

func TestFeedLikeOwnContentRejected(t *testing.T) {
	backend := newFakeFeedBackend()
	h := newFeedHandler(t, backend)

	form := url.Values{
		"liked":  {"false"},
		"count":  {"3"},
		"author": {"아들"},
		"viewer": {"아들"},
	}
	req := authedRequest(http.MethodPost, "/partials/feeds/7/like", form.Encode())
	req.SetPathValue("id", "7")

	rec := httptest.NewRecorder()
	h.FeedLike(rec, req)

	assert.Zero(t, backend.likeCalls.Load(), "own-content like must not reach the backend")
	assert.Contains(t, rec.Body.String(), "자신의 글에는 좋아요를 누를 수 없습니다.")
}

func TestDetailRedirectsToSignInOnExpiredAuth(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	client := newBackend(t, mux)
	logger := testLogger()
	h := NewFeedHandler(client, ws.NewHub(logger), web.Templates(), logger)

	req := authedRequest(http.MethodGet, "/main/7", "")
	req.SetPathValue("id", "7")

	rec := httptest.NewRecorder()
	h.Detail(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/signin", rec.Header().Get("Location"))
}
