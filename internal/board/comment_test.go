package board

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countComments(t *testing.T, ts *testServer) int {
	t.Helper()
	var n int
	require.NoError(t, ts.db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM comments").Scan(&n))
	return n
}

func TestCreateComment(t *testing.T) {
	t.Run("投稿にコメントできる", func(t *testing.T) {
		ts := setupTestServer(t)
		_, owner := ts.signup(t, "a@x.com", "alice01", "pw1234")
		bobID, bob := ts.signup(t, "b@x.com", "bob01", "pw5678")
		post := ts.createPost(t, owner, "Hello", "world")

		cm := ts.createComment(t, bob, post.PostID, "nice post")
		assert.Equal(t, post.PostID, cm.PostID)
		assert.Equal(t, bobID, cm.UserID)
		assert.Equal(t, "bob01", cm.Nickname)
		assert.Equal(t, "nice post", cm.Comment)
	})

	t.Run("存在しない投稿には404で何も保存しない", func(t *testing.T) {
		ts := setupTestServer(t)
		_, token := ts.signup(t, "a@x.com", "alice01", "pw1234")

		w := ts.do(t, http.MethodPost, "/posts/000000000000000000000000/comments", map[string]string{"comment": "hi"}, token)
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, KindNotFound.String(), decodeError(t, w).Code)
		assert.Equal(t, 0, countComments(t, ts))
	})

	t.Run("コメントが空なら400を返す", func(t *testing.T) {
		ts := setupTestServer(t)
		_, token := ts.signup(t, "a@x.com", "alice01", "pw1234")
		post := ts.createPost(t, token, "Hello", "world")

		w := ts.do(t, http.MethodPost, "/posts/"+post.PostID+"/comments", map[string]string{"comment": " "}, token)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, 0, countComments(t, ts))
	})
}

func TestListComments(t *testing.T) {
	ts := setupTestServer(t)
	_, token := ts.signup(t, "a@x.com", "alice01", "pw1234")
	post := ts.createPost(t, token, "Hello", "world")
	empty := ts.createPost(t, token, "Empty", "no comments")
	ts.createComment(t, token, post.PostID, "first")
	ts.createComment(t, token, post.PostID, "second")

	t.Run("コメントを新しい順に返す", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/posts/"+post.PostID+"/comments", nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		var res struct {
			Data []commentResponse `json:"data"`
		}
		decodeResponse(t, w, &res)
		require.Len(t, res.Data, 2)
		assert.Equal(t, "second", res.Data[0].Comment)
		assert.Equal(t, "first", res.Data[1].Comment)
	})

	t.Run("コメントがなければ404を返す", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/posts/"+empty.PostID+"/comments", nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("投稿が存在しなければ404を返す", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/posts/000000000000000000000000/comments", nil, "")
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, msgPostNotFound, decodeError(t, w).Error)
	})
}

func TestUpdateComment(t *testing.T) {
	t.Run("所有者は更新できる", func(t *testing.T) {
		ts := setupTestServer(t)
		_, token := ts.signup(t, "a@x.com", "alice01", "pw1234")
		post := ts.createPost(t, token, "Hello", "world")
		cm := ts.createComment(t, token, post.PostID, "first")

		w := ts.do(t, http.MethodPatch, "/posts/"+post.PostID+"/comments/"+cm.CommentID, map[string]string{"comment": "edited"}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		stored, err := ts.queries.GetCommentByID(context.Background(), cm.CommentID)
		require.NoError(t, err)
		assert.Equal(t, "edited", stored.Comment)
	})

	t.Run("投稿の所有者でもコメントの所有者でなければ403を返す", func(t *testing.T) {
		ts := setupTestServer(t)
		_, owner := ts.signup(t, "a@x.com", "alice01", "pw1234")
		_, bob := ts.signup(t, "b@x.com", "bob01", "pw5678")
		post := ts.createPost(t, owner, "Hello", "world")
		cm := ts.createComment(t, bob, post.PostID, "bob says")

		w := ts.do(t, http.MethodPatch, "/posts/"+post.PostID+"/comments/"+cm.CommentID, map[string]string{"comment": "edited"}, owner)
		require.Equal(t, http.StatusForbidden, w.Code)

		stored, err := ts.queries.GetCommentByID(context.Background(), cm.CommentID)
		require.NoError(t, err)
		assert.Equal(t, "bob says", stored.Comment)
	})

	t.Run("別の投稿のコメントIDは404を返す", func(t *testing.T) {
		ts := setupTestServer(t)
		_, token := ts.signup(t, "a@x.com", "alice01", "pw1234")
		p1 := ts.createPost(t, token, "one", "1")
		p2 := ts.createPost(t, token, "two", "2")
		cm := ts.createComment(t, token, p1.PostID, "on one")

		w := ts.do(t, http.MethodPatch, "/posts/"+p2.PostID+"/comments/"+cm.CommentID, map[string]string{"comment": "moved"}, token)
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, msgCommentNotFound, decodeError(t, w).Error)
	})

	t.Run("存在しないコメントは404を返す", func(t *testing.T) {
		ts := setupTestServer(t)
		_, token := ts.signup(t, "a@x.com", "alice01", "pw1234")
		post := ts.createPost(t, token, "Hello", "world")

		w := ts.do(t, http.MethodPatch, "/posts/"+post.PostID+"/comments/missing", map[string]string{"comment": "x"}, token)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteComment(t *testing.T) {
	t.Run("所有者は削除できる", func(t *testing.T) {
		ts := setupTestServer(t)
		_, token := ts.signup(t, "a@x.com", "alice01", "pw1234")
		post := ts.createPost(t, token, "Hello", "world")
		cm := ts.createComment(t, token, post.PostID, "first")

		w := ts.do(t, http.MethodDelete, "/posts/"+post.PostID+"/comments/"+cm.CommentID, nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0, countComments(t, ts))

		w = ts.do(t, http.MethodDelete, "/posts/"+post.PostID+"/comments/"+cm.CommentID, nil, token)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("所有者以外は403でコメントは残る", func(t *testing.T) {
		ts := setupTestServer(t)
		_, owner := ts.signup(t, "a@x.com", "alice01", "pw1234")
		_, bob := ts.signup(t, "b@x.com", "bob01", "pw5678")
		post := ts.createPost(t, owner, "Hello", "world")
		cm := ts.createComment(t, owner, post.PostID, "mine")

		w := ts.do(t, http.MethodDelete, "/posts/"+post.PostID+"/comments/"+cm.CommentID, nil, bob)
		require.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, 1, countComments(t, ts))
	})
}
