package root

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"go_5s_keep/internal/model"
	"go_5s_keep/internal/ui"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Aliases: []string{"today", "daily", "dashboard"},
		Short:   "Show today's actions for the current area",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openClient()
			if err != nil {
				return err
			}
			view, err := c.Dashboard(cmd.Context())
			if err != nil {
				return readFailed(err)
			}
			renderDashboard(cmd, view)
			return nil
		},
	}
}

func renderDashboard(cmd *cobra.Command, view *model.DashboardView) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.Heading(ui.IconCalm, "Hôm nay "+view.Date))
	fmt.Fprintln(out, ui.LabelValue("Lĩnh vực", ui.AreaLabel(view.Area)))
	if view.Progress.CurrentStep != "" {
		fmt.Fprintln(out, ui.LabelValue("Bước", fmt.Sprintf("%s %s", view.Progress.CurrentStep, view.Progress.CurrentStep.Title())))
	}
	fmt.Fprintln(out, ui.LabelValue("Tiến độ", ui.Counter(view.Counter)))
	fmt.Fprintln(out, "")

	for i, a := range view.Actions {
		fmt.Fprintf(out, "%s %d. %s %s\n", ui.StatusIcon(a.Status), i+1, a.ActionText, ui.Muted.Render("("+string(a.Status)+")"))
	}
	if len(view.Steps) > 0 {
		fmt.Fprintln(out, "")
		fmt.Fprintln(out, ui.H2.Render("Các bước"))
		for _, s := range view.Steps {
			fmt.Fprintf(out, "  %s %s %s\n", ui.Key.Render(string(s.Step)), s.Title, ui.Muted.Render(s.Path))
		}
	}
}

func newMarkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mark <number|id> <done|skipped|pending>",
		Short: "Set the status of one of today's actions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status := model.ActionStatus(args[1])
			if !status.Valid() {
				return fmt.Errorf("trạng thái không hợp lệ %q (done, skipped, pending)", args[1])
			}
			c, err := openClient()
			if err != nil {
				return err
			}

			actionID := args[0]
			if n, err := strconv.Atoi(args[0]); err == nil {
				view, err := c.Dashboard(cmd.Context())
				if err != nil {
					return readFailed(err)
				}
				if n < 1 || n > len(view.Actions) {
					return fmt.Errorf("không có việc số %d", n)
				}
				actionID = view.Actions[n-1].ID.String()
			}

			action, err := c.SetActionStatus(cmd.Context(), actionID, status)
			if err != nil {
				return writeFailed(cmd, "cập nhật trạng thái", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.StatusIcon(action.Status), action.ActionText, ui.StatusText(action.Status))
			return nil
		},
	}
}

func newStepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "step",
		Short: "Advance to the next 5S step (stays at s5)",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openClient()
			if err != nil {
				return err
			}
			view, err := c.AdvanceStep(cmd.Context())
			if err != nil {
				return writeFailed(cmd, "chuyển bước", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Bước", fmt.Sprintf("%s %s", view.CurrentStep, view.CurrentStep.Title())))
			return nil
		},
	}
}
