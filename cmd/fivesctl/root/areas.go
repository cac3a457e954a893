package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"go_5s_keep/internal/model"
	"go_5s_keep/internal/navigation"
	"go_5s_keep/internal/ui"
)

func newAreasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "areas",
		Short: "List life areas and mark the current one",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openClient()
			if err != nil {
				return err
			}
			view, err := c.Onboarding(cmd.Context())
			if err != nil {
				return readFailed(err)
			}

			var current *model.LifeArea
			if view.Progress.CurrentAreaID != nil {
				current = model.FindArea(view.Areas, *view.Progress.CurrentAreaID)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading("", "Lĩnh vực"))
			for _, e := range navigation.AreaEntries(view.Areas, current) {
				line := fmt.Sprintf("  %-14s %s", e.Name, ui.AreaLabel(e.LifeArea))
				if e.Current {
					line = ui.Current.Render(ui.IconArrow + line[1:])
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

func newOnboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "onboard <area>",
		Short: "Choose a focus area and start at S1",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openClient()
			if err != nil {
				return err
			}
			area, err := resolveArea(cmd, c, args[0])
			if err != nil {
				return err
			}
			// 保存に失敗した場合はオンボーディングを完了させない
			view, err := c.CompleteOnboarding(cmd.Context(), area.ID.String())
			if err != nil {
				return fmt.Errorf("không thể lưu tiến trình: %w", err)
			}
			renderDashboard(cmd, view)
			return nil
		},
	}
}

func newSwitchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "switch <area>",
		Short: "Switch the focus area",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openClient()
			if err != nil {
				return err
			}
			area, err := resolveArea(cmd, c, args[0])
			if err != nil {
				return err
			}
			view, err := c.SwitchArea(cmd.Context(), area.ID.String())
			if err != nil {
				return writeFailed(cmd, "đổi lĩnh vực", err)
			}
			renderDashboard(cmd, view)
			return nil
		},
	}
}
