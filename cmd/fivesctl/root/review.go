package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"go_5s_keep/internal/model"
	"go_5s_keep/internal/ui"
)

func newReviewCmd() *cobra.Command {
	var req model.SaveWeeklyReviewRequest

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Show or save this week's review",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openClient()
			if err != nil {
				return err
			}
			save := cmd.Flags().Changed("clearer") || cmd.Flags().Changed("lighter") || cmd.Flags().Changed("adjust")

			var view *model.WeeklyReviewView
			if save {
				// 未指定の項目は現在の値を引き継ぐ
				current, err := c.Review(cmd.Context())
				if err != nil {
					return readFailed(err)
				}
				if current.Current != nil {
					if !cmd.Flags().Changed("clearer") {
						req.WhatClearer = current.Current.WhatClearer
					}
					if !cmd.Flags().Changed("lighter") {
						req.WhatLighter = current.Current.WhatLighter
					}
					if !cmd.Flags().Changed("adjust") {
						req.WhatAdjust = current.Current.WhatAdjust
					}
				}
				view, err = c.SaveReview(cmd.Context(), req)
				if err != nil {
					return writeFailed(cmd, "lưu nhìn lại tuần", err)
				}
			} else {
				view, err = c.Review(cmd.Context())
				if err != nil {
					return readFailed(err)
				}
			}
			renderReview(cmd, view)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.WhatClearer, "clearer", "", "Điều gì rõ ràng hơn?")
	cmd.Flags().StringVar(&req.WhatLighter, "lighter", "", "Điều gì nhẹ nhàng hơn?")
	cmd.Flags().StringVar(&req.WhatAdjust, "adjust", "", "Điều gì cần điều chỉnh?")
	return cmd
}

func renderReview(cmd *cobra.Command, view *model.WeeklyReviewView) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.Heading(ui.IconReview, "Nhìn lại tuần "+view.WeekStartDate))
	fmt.Fprintln(out, ui.LabelValue("Lĩnh vực", ui.AreaLabel(view.Area)))
	if view.Current != nil {
		fmt.Fprintln(out, ui.Panel.Render(fmt.Sprintf("%s\n%s\n%s",
			ui.LabelValue("Rõ ràng hơn", view.Current.WhatClearer),
			ui.LabelValue("Nhẹ nhàng hơn", view.Current.WhatLighter),
			ui.LabelValue("Điều chỉnh", view.Current.WhatAdjust),
		)))
	} else {
		fmt.Fprintln(out, ui.Muted.Render("Chưa có nhìn lại cho tuần này."))
	}
	if len(view.History) > 0 {
		fmt.Fprintln(out, ui.H2.Render("Gần đây"))
		for _, r := range view.History {
			fmt.Fprintf(out, "  %s %s\n", ui.Key.Render(r.WeekStartDate), r.WhatClearer)
		}
	}
}
