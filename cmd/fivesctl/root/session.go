package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"go_5s_keep/internal/ui"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Show the local session id (created on first use)",
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := openSessions()
			if err != nil {
				return err
			}
			id, err := sessions.GetSessionID()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Session", id))
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Forget the local session id (server data is kept)",
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := openSessions()
			if err != nil {
				return err
			}
			if err := sessions.ClearSession(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Đã xóa mã phiên. Lần chạy tiếp theo sẽ tạo phiên mới."))
			return nil
		},
	})
	return cmd
}
