package commands

import (
	"context"
	"fmt"

	"github.com/nao1215/board/internal/board"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "データベースのマイグレーションを適用する",
	Long: `未適用のマイグレーションを適用して終了する。
適用済みのバージョンはスキップするため、何度実行してもよい。`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runMigrate(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(ctx context.Context) error {
	cfg := loadConfig()
	log := newLogger(cfg)

	db, err := board.OpenDB(ctx, cfg.DatabasePath, log)
	if err != nil {
		return err
	}
	if err := db.Close(); err != nil {
		return fmt.Errorf("データベースのクローズに失敗: %w", err)
	}
	log.Info("マイグレーションが完了しました", "path", cfg.DatabasePath)
	return nil
}
