package board

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nao1215/board/pkg/httpclient"
	"github.com/nao1215/board/pkg/middleware"
)

// TestHTTPClientRoundTrip は実際のHTTPサーバー越しに一連の操作を行う。
func TestHTTPClientRoundTrip(t *testing.T) {
	ts := setupTestServer(t)
	srv := httptest.NewServer(ts.Handler())
	t.Cleanup(srv.Close)

	client := httpclient.New(srv.URL)
	ctx := context.Background()

	require.NoError(t, client.PostJSON(ctx, "/users", map[string]string{
		"email":            "a@x.com",
		"nickname":         "alice01",
		"password":         "pw1234",
		"confirm_password": "pw1234",
	}, nil))

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, client.PostJSON(ctx, "/auth", map[string]string{"email": "a@x.com", "password": "pw1234"}, &login))
	authed := httpclient.WithCredential(ctx, middleware.BearerScheme+" "+login.Token)

	var created struct {
		Data postResponse `json:"data"`
	}
	require.NoError(t, client.PostJSON(authed, "/posts", map[string]string{"title": "Hello", "content": "world"}, &created))
	postID := created.Data.PostID

	require.NoError(t, client.PatchJSON(authed, "/posts/"+postID, map[string]string{"title": "Hello again", "content": "world"}, nil))

	var found struct {
		Data []postResponse `json:"data"`
	}
	require.NoError(t, client.GetJSON(ctx, "/posts/again", &found))
	require.Len(t, found.Data, 1)
	assert.Equal(t, postID, found.Data[0].PostID)

	// 認証情報なしの削除は拒否される
	err := client.Delete(ctx, "/posts/"+postID, nil)
	var se *httpclient.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)

	require.NoError(t, client.Delete(authed, "/posts/"+postID, nil))

	err = client.Delete(authed, "/posts/"+postID, nil)
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
}
