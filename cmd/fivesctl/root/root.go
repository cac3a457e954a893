package root

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go_5s_keep/internal/client"
	"go_5s_keep/internal/config"
	"go_5s_keep/internal/model"
	"go_5s_keep/internal/session"
	"go_5s_keep/internal/ui"
)

const defaultServer = "http://localhost:8080"

var v = viper.New()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "fivesctl",
		Short:         "5S cho bản thân: sàng lọc, sắp xếp, sạch sẽ, tiêu chuẩn, tâm thế",
		Long:          "fivesctl is a terminal client for the 5S self-improvement tracker API.",
		Version:       config.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	cmd.PersistentFlags().String("server", defaultServer, "API server base URL (env FIVES_SERVER)")
	cmd.PersistentFlags().String("session-dir", "", "directory holding the session id (default: user config dir)")
	cmd.PersistentFlags().String("timezone", "", "IANA timezone used for \"today\" (default: local)")
	cmd.PersistentFlags().Bool("debug", false, "log API calls")

	v.SetEnvPrefix("FIVES")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		newSessionCmd(),
		newAreasCmd(),
		newOnboardCmd(),
		newStatusCmd(),
		newSwitchCmd(),
		newStepCmd(),
		newMarkCmd(),
		newReviewCmd(),
		newStageCmd(),
	)
	return cmd
}

func Execute() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}

func openSessions() (*session.Provider, error) {
	store, err := session.NewFileStore(v.GetString("session-dir"))
	if err != nil {
		return nil, err
	}
	return session.NewProvider(store, nil), nil
}

func openClient() (*client.Client, error) {
	sessions, err := openSessions()
	if err != nil {
		return nil, err
	}

	level := slog.LevelWarn
	if v.GetBool("debug") {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level, TimeFormat: time.Kitchen}))

	loc := time.Local
	if tz := v.GetString("timezone"); tz != "" {
		if loc, err = time.LoadLocation(tz); err != nil {
			return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
		}
	}

	server := v.GetString("server")
	if server == "" {
		server = defaultServer
	}
	return client.New(server, sessions, client.WithLocation(loc), client.WithLogger(logger)), nil
}

// writeFailed は書き込みの失敗を警告として表示し、処理は止めません。
// オンボーディングが必要な場合だけはエラーとして返します
func writeFailed(cmd *cobra.Command, what string, err error) error {
	if client.IsOnboardingRequired(err) {
		return errOnboarding
	}
	fmt.Fprintln(cmd.ErrOrStderr(), ui.Warning(fmt.Sprintf("%s: %v", what, err)))
	return nil
}

var errOnboarding = errors.New("chưa chọn lĩnh vực, hãy chạy: fivesctl onboard <lĩnh vực>")

// readFailed は読み込みの失敗を返します (オンボーディング誘導は専用メッセージ)
func readFailed(err error) error {
	if client.IsOnboardingRequired(err) {
		return errOnboarding
	}
	return err
}

// findArea は名前 (スラッグ) または ID で領域を探します
func findArea(areas []*model.LifeArea, key string) *model.LifeArea {
	key = strings.TrimSpace(key)
	for _, a := range areas {
		if a.Name == key || a.ID.String() == key {
			return a
		}
	}
	return nil
}

func resolveArea(cmd *cobra.Command, c *client.Client, key string) (*model.LifeArea, error) {
	areas, err := c.Areas(cmd.Context())
	if err != nil {
		return nil, readFailed(err)
	}
	a := findArea(areas, key)
	if a == nil {
		return nil, fmt.Errorf("không tìm thấy lĩnh vực %q", key)
	}
	return a, nil
}
