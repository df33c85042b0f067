package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/nao1215/board/pkg/migration"
)

// newTestQueries はマイグレーション適用済みの一時SQLiteファイルでQueriesを生成する。
func newTestQueries(t *testing.T) (*Queries, *sql.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)", filepath.Join(t.TempDir(), "board.db"))
	sqlDB, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	_, err = migration.Run(context.Background(), sqlDB, Migrations, MigrationsDir, nil)
	require.NoError(t, err)
	return New(sqlDB), sqlDB
}

func seedUser(t *testing.T, q *Queries, id, email, nickname string) {
	t.Helper()
	require.NoError(t, q.CreateUser(context.Background(), CreateUserParams{
		ID:           id,
		Email:        email,
		Nickname:     nickname,
		PasswordHash: []byte("hash"),
		CreatedAt:    time.Now(),
	}))
}

func seedPost(t *testing.T, q *Queries, id, userID, title string, createdAt time.Time) {
	t.Helper()
	require.NoError(t, q.CreatePost(context.Background(), CreatePostParams{
		ID:        id,
		UserID:    userID,
		Nickname:  "nick",
		Title:     title,
		Content:   "content of " + title,
		CreatedAt: createdAt,
	}))
}

func TestUsers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	q, _ := newTestQueries(t)
	seedUser(t, q, "u1", "a@x.com", "alice01")

	u, err := q.GetUserByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", u.Email)
	assert.Equal(t, "alice01", u.Nickname)
	assert.Equal(t, []byte("hash"), u.PasswordHash)
	assert.Equal(t, "u1", u.Identity().UserID)
	assert.Equal(t, "alice01", u.Identity().Nickname)

	byEmail, err := q.GetUserByEmail(ctx, "A@X.COM")
	require.NoError(t, err, "メールアドレスは大文字小文字を区別しない")
	assert.Equal(t, "u1", byEmail.ID)

	_, err = q.GetUserByID(ctx, "missing")
	assert.True(t, errors.Is(err, sql.ErrNoRows))

	count, err := q.CountUsersByEmailOrNickname(ctx, CountUsersByEmailOrNicknameParams{Email: "other@x.com", Nickname: "ALICE01"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	err = q.CreateUser(ctx, CreateUserParams{ID: "u2", Email: "a@x.com", Nickname: "bob01", PasswordHash: []byte("h"), CreatedAt: time.Now()})
	assert.Error(t, err, "重複したメールアドレスはUNIQUE制約で拒否される")
}

func TestPostsOwnerGuard(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	q, _ := newTestQueries(t)
	seedUser(t, q, "u1", "a@x.com", "alice01")
	seedUser(t, q, "u2", "b@x.com", "bob01")
	seedPost(t, q, "p1", "u1", "Hello", time.Now())

	n, err := q.UpdatePostByOwner(ctx, UpdatePostByOwnerParams{Title: "Hacked", Content: "x", UpdatedAt: time.Now(), ID: "p1", UserID: "u2"})
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = q.UpdatePostByOwner(ctx, UpdatePostByOwnerParams{Title: "Hello2", Content: "y", UpdatedAt: time.Now(), ID: "p1", UserID: "u1"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	p, err := q.GetPostByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Hello2", p.Title)
	assert.False(t, p.UpdatedAt.Before(p.CreatedAt))

	n, err = q.DeletePostByOwner(ctx, DeletePostByOwnerParams{ID: "p1", UserID: "u2"})
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = q.DeletePostByOwner(ctx, DeletePostByOwnerParams{ID: "p1", UserID: "u1"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = q.GetPostByID(ctx, "p1")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestListAndSearchPosts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	q, _ := newTestQueries(t)
	seedUser(t, q, "u1", "a@x.com", "alice01")

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seedPost(t, q, "p1", "u1", "Hello world", base)
	seedPost(t, q, "p2", "u1", "100% hello", base.Add(time.Second))
	seedPost(t, q, "p3", "u1", "Goodbye", base.Add(2*time.Second))

	posts, err := q.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, []string{"p3", "p2", "p1"}, []string{posts[0].ID, posts[1].ID, posts[2].ID})

	found, err := q.SearchPostsByTitle(ctx, "HELLO")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "p2", found[0].ID)

	found, err = q.SearchPostsByTitle(ctx, "%")
	require.NoError(t, err)
	require.Len(t, found, 1, "%はワイルドカードではなく文字として扱う")
	assert.Equal(t, "p2", found[0].ID)

	found, err = q.SearchPostsByTitle(ctx, "nothing")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestCommentsCascadeAndOwnerGuard(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	q, _ := newTestQueries(t)
	seedUser(t, q, "u1", "a@x.com", "alice01")
	seedUser(t, q, "u2", "b@x.com", "bob01")
	seedPost(t, q, "p1", "u1", "Hello", time.Now())

	require.NoError(t, q.CreateComment(ctx, CreateCommentParams{ID: "c1", PostID: "p1", UserID: "u2", Nickname: "bob01", Comment: "nice", CreatedAt: time.Now()}))
	require.NoError(t, q.CreateComment(ctx, CreateCommentParams{ID: "c2", PostID: "p1", UserID: "u1", Nickname: "alice01", Comment: "thanks", CreatedAt: time.Now().Add(time.Second)}))

	err := q.CreateComment(ctx, CreateCommentParams{ID: "c3", PostID: "missing", UserID: "u1", Nickname: "alice01", Comment: "x", CreatedAt: time.Now()})
	assert.Error(t, err, "存在しない投稿へのコメントは外部キー制約で拒否される")

	comments, err := q.ListCommentsByPostID(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "c2", comments[0].ID)

	n, err := q.UpdateCommentByOwner(ctx, UpdateCommentByOwnerParams{Comment: "edited", UpdatedAt: time.Now(), ID: "c1", UserID: "u1"})
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = q.UpdateCommentByOwner(ctx, UpdateCommentByOwnerParams{Comment: "edited", UpdatedAt: time.Now(), ID: "c1", UserID: "u2"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	c, err := q.GetCommentByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "edited", c.Comment)

	_, err = q.DeletePostByOwner(ctx, DeletePostByOwnerParams{ID: "p1", UserID: "u1"})
	require.NoError(t, err)

	comments, err = q.ListCommentsByPostID(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestActivitiesWithTx(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	q, sqlDB := newTestQueries(t)

	tx, err := sqlDB.BeginTx(ctx, nil)
	require.NoError(t, err)
	qtx := q.WithTx(tx)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range 3 {
		require.NoError(t, qtx.CreateActivity(ctx, CreateActivityParams{
			ID:            fmt.Sprintf("a%d", i),
			AggregateID:   "p1",
			AggregateType: "Post",
			EventType:     "PostUpdated",
			ActorID:       "u1",
			Data:          []byte(`{"title":"t"}`),
			CreatedAt:     base.Add(time.Duration(i) * time.Second),
		}))
	}
	require.NoError(t, tx.Rollback())

	items, err := q.ListActivitiesByActor(ctx, ListActivitiesByActorParams{ActorID: "u1", Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, items, "ロールバックした記録は残らない")

	require.NoError(t, q.CreateActivity(ctx, CreateActivityParams{ID: "a1", AggregateID: "p1", AggregateType: "Post", EventType: "PostCreated", ActorID: "u1", Data: []byte(`{}`), CreatedAt: base}))
	require.NoError(t, q.CreateActivity(ctx, CreateActivityParams{ID: "a2", AggregateID: "p1", AggregateType: "Post", EventType: "PostUpdated", ActorID: "u1", Data: []byte(`{"title":"t"}`), CreatedAt: base.Add(time.Second)}))

	items, err = q.ListActivitiesByActor(ctx, ListActivitiesByActorParams{ActorID: "u1", Limit: 1})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "a2", items[0].ID)
	assert.JSONEq(t, `{"title":"t"}`, string(items[0].Data))
	assert.True(t, items[0].CreatedAt.Equal(base.Add(time.Second)))
}
