package board

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	boarddb "github.com/nao1215/board/internal/board/db"
	"github.com/nao1215/board/pkg/migration"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// dsn はSQLiteの接続文字列を組み立てる。
// 外部キー制約はコメントのカスケード削除に必要なので常に有効にする。
func dsn(path string) string {
	return fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
}

// OpenDB はSQLiteデータベースを開き、未適用のマイグレーションを適用する。
func OpenDB(ctx context.Context, path string, logger *slog.Logger) (*sql.DB, error) {
	sqlDB, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}
	// SQLiteの書き込みは1接続に直列化する
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("データベース接続の確認に失敗: %w", err)
	}
	if _, err := migration.Run(ctx, sqlDB, boarddb.Migrations, boarddb.MigrationsDir, logger); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("スキーマ初期化に失敗: %w", err)
	}
	return sqlDB, nil
}

// isUniqueViolation はエラーがUNIQUE制約違反かどうかを返す。
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
