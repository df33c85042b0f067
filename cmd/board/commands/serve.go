package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/nao1215/board/internal/board"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "APIサーバーを起動する",
	Long: `マイグレーションを適用してからAPIサーバーを起動する。
SIGINT または SIGTERM を受け取ると処理中のリクエストを待って停止する。`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "リッスンポート")
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := loadConfig()
	log := newLogger(cfg)

	server, err := board.NewServer(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("掲示板サーバーの初期化に失敗: %w", err)
	}
	defer func() {
		if err := server.Close(); err != nil {
			log.Error("リソースの解放に失敗しました", "error", err)
		}
	}()

	if err := server.Run(ctx); err != nil {
		return fmt.Errorf("掲示板サービスの起動に失敗: %w", err)
	}
	return nil
}
