// Package commands は board コマンドのサブコマンドを定義する。
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/nao1215/board/internal/board"
	"github.com/nao1215/board/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	// port は環境変数PORTを上書きするリッスンポート。
	port string
	// dbPath は環境変数DATABASE_PATHを上書きするデータベースファイルのパス。
	dbPath string
	// envFile は読み込む.envファイルのパス。
	envFile string
)

var rootCmd = &cobra.Command{
	Use:   "board",
	Short: "掲示板サービス",
	Long: `掲示板サービスのAPIサーバーと運用コマンド。

設定は環境変数から読み込む。--env-file を指定すると、まだ設定されていない
環境変数をそのファイルから補う。--port と --db はそれぞれ
PORT と DATABASE_PATH より優先される。`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if envFile == "" {
			return nil
		}
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("%s の読み込みに失敗: %w", envFile, err)
		}
		return nil
	},
}

// Execute はルートコマンドを実行する。
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLiteデータベースファイルのパス")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "読み込む.envファイル")
}

// loadConfig は環境変数の設定にフラグの値を反映する。
func loadConfig() board.Config {
	cfg := board.LoadConfig()
	if port != "" {
		cfg.Port = port
	}
	if dbPath != "" {
		cfg.DatabasePath = dbPath
	}
	return cfg
}

func newLogger(cfg board.Config) *slog.Logger {
	return logger.New("board", logger.ParseLevel(cfg.LogLevel))
}
