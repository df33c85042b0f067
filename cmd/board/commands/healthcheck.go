package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/nao1215/board/pkg/httpclient"
	"github.com/spf13/cobra"
)

var (
	// healthURL は確認するサーバーのベースURL。
	healthURL string
	// healthTimeout はヘルスチェックのタイムアウト。
	healthTimeout time.Duration
)

var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "起動中のサーバーの状態を確認する",
	Long: `GET /health を呼び出し、正常でなければ0以外の終了コードで終了する。
コンテナのヘルスチェックに使う。`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runHealthcheck(cmd.Context(), cmd)
	},
}

func init() {
	healthcheckCmd.Flags().StringVar(&healthURL, "url", "http://localhost:8080", "サーバーのベースURL")
	healthcheckCmd.Flags().DurationVar(&healthTimeout, "timeout", 5*time.Second, "タイムアウト")
	rootCmd.AddCommand(healthcheckCmd)
}

// healthResponse はヘルスチェックのレスポンス。
type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

func runHealthcheck(ctx context.Context, cmd *cobra.Command) error {
	client := httpclient.NewWithTimeout(healthURL, healthTimeout)

	var res healthResponse
	if err := client.GetJSON(ctx, "/health", &res); err != nil {
		return fmt.Errorf("ヘルスチェックに失敗: %w", err)
	}
	if res.Status != "ok" {
		return fmt.Errorf("サービスが正常ではありません: status=%s", res.Status)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", res.Service, res.Status)
	return nil
}
