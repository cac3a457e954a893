package root

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"go_5s_keep/internal/client"
	"go_5s_keep/internal/model"
	"go_5s_keep/internal/ui"
)

func parseStep(raw string) (model.Step, error) {
	st := model.Step(strings.ToLower(strings.TrimSpace(raw)))
	if !st.Valid() {
		return "", fmt.Errorf("bước không hợp lệ %q (s1..s5)", raw)
	}
	return st, nil
}

func newStageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stage <area> <s1..s5>",
		Short: "List, add, update or delete the items of one 5S step",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			step, err := parseStep(args[1])
			if err != nil {
				return err
			}
			c, err := openClient()
			if err != nil {
				return err
			}
			if err := listStage(cmd.Context(), cmd.OutOrStdout(), c, args[0], step); err != nil {
				return readFailed(err)
			}
			return nil
		},
	}
	cmd.AddCommand(newStageAddCmd(), newStageSetCmd(), newStageRmCmd())
	return cmd
}

func listStage(ctx context.Context, out io.Writer, c *client.Client, area string, step model.Step) error {
	fmt.Fprintln(out, ui.Heading("", fmt.Sprintf("%s %s · %s", step, step.Title(), area)))
	switch step {
	case model.StepFilter:
		v, err := client.ListStage[model.FilterItem](ctx, c, area, step)
		if err != nil {
			return err
		}
		if v.Area == nil {
			fmt.Fprintln(out, ui.Muted.Render("(chưa rõ lĩnh vực)"))
		}
		for _, key := range []string{"keep", "remove"} {
			fmt.Fprintln(out, ui.H2.Render(map[string]string{"keep": "Giữ lại", "remove": "Loại bỏ"}[key]))
			for _, it := range v.Partitions[key] {
				fmt.Fprintf(out, "  %s %s\n", ui.Muted.Render(it.ID.String()), it.ItemText)
			}
		}
	case model.StepOrganize:
		v, err := client.ListStage[model.OrganizeItem](ctx, c, area, step)
		if err != nil {
			return err
		}
		for _, p := range []model.PriorityLevel{model.PriorityHigh, model.PriorityMedium, model.PriorityLow} {
			fmt.Fprintln(out, ui.PriorityText(p))
			for _, it := range v.Partitions[string(p)] {
				pos := ""
				if it.FixedPosition != "" {
					pos = ui.Muted.Render(" @ " + it.FixedPosition)
				}
				fmt.Fprintf(out, "  %s %s%s\n", ui.Muted.Render(it.ID.String()), it.ItemText, pos)
			}
		}
	case model.StepClean:
		v, err := client.ListStage[model.CleanReflection](ctx, c, area, step)
		if err != nil {
			return err
		}
		for _, it := range v.Items {
			fmt.Fprintf(out, "  %s %s %s\n", ui.Key.Render(it.ReflectionDate), it.ReflectionText, ui.Muted.Render(it.ID.String()))
			if it.ActionTaken != "" {
				fmt.Fprintf(out, "      %s %s\n", ui.IconArrow, it.ActionTaken)
			}
		}
	case model.StepStandardize:
		v, err := client.ListStage[model.Standard](ctx, c, area, step)
		if err != nil {
			return err
		}
		for _, it := range v.Items {
			fmt.Fprintf(out, "  Khi %s %s %s %s\n", it.Trigger, ui.IconArrow, it.Action, ui.Muted.Render(it.ID.String()))
		}
	case model.StepSustain:
		v, err := client.ListStage[model.SustainReminder](ctx, c, area, step)
		if err != nil {
			return err
		}
		for _, it := range v.Items {
			fmt.Fprintf(out, "  %s %s\n", it.WhyText, ui.Muted.Render(it.ID.String()))
		}
	}
	return nil
}

func newStageAddCmd() *cobra.Command {
	var text, trigger, action string
	cmd := &cobra.Command{
		Use:   "add <area> <s1..s5>",
		Short: "Add an item (blank text is ignored)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			step, err := parseStep(args[1])
			if err != nil {
				return err
			}
			c, err := openClient()
			if err != nil {
				return err
			}

			var body interface{}
			switch step {
			case model.StepFilter:
				body = model.CreateFilterItemRequest{ItemText: text}
			case model.StepOrganize:
				body = model.CreateOrganizeItemRequest{ItemText: text}
			case model.StepClean:
				body = model.CreateCleanReflectionRequest{ReflectionText: text}
			case model.StepStandardize:
				body = model.CreateStandardRequest{Trigger: trigger, Action: action}
			case model.StepSustain:
				body = model.CreateSustainReminderRequest{WhyText: text}
			}

			created, err := client.CreateStage[map[string]interface{}](cmd.Context(), c, args[0], step, body)
			if err != nil {
				return writeFailed(cmd, "thêm mục", err)
			}
			if created == nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Bỏ qua nội dung trống."))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %v\n", ui.Good.Render("Đã thêm"), (*created)["id"])
			return nil
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "item text (S1, S2, S3, S5)")
	cmd.Flags().StringVar(&trigger, "trigger", "", "trigger (S4)")
	cmd.Flags().StringVar(&action, "action", "", "action (S4)")
	return cmd
}

// parseFields は key=value を S1〜S3 の部分更新に変換します
func parseFields(step model.Step, pairs []string) (map[string]interface{}, error) {
	allowed := map[model.Step][]string{
		model.StepFilter:   {"should_keep"},
		model.StepOrganize: {"priority_level", "fixed_position"},
		model.StepClean:    {"action_taken"},
	}[step]
	if len(allowed) == 0 {
		return nil, fmt.Errorf("bước %s không hỗ trợ cập nhật", step)
	}

	fields := make(map[string]interface{}, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("cần dạng key=value: %q", pair)
		}
		found := false
		for _, a := range allowed {
			found = found || a == key
		}
		if !found {
			return nil, fmt.Errorf("không thể cập nhật %q (cho phép: %s)", key, strings.Join(allowed, ", "))
		}
		if key == "should_keep" {
			b, err := strconv.ParseBool(value)
			if err != nil {
				return nil, fmt.Errorf("should_keep phải là true/false: %w", err)
			}
			fields[key] = b
			continue
		}
		fields[key] = value
	}
	return fields, nil
}

func newStageSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <area> <s1|s2|s3> <id> key=value...",
		Short: "Update fields of an item",
		Args:  cobra.MinimumNArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			step, err := parseStep(args[1])
			if err != nil {
				return err
			}
			fields, err := parseFields(step, args[3:])
			if err != nil {
				return err
			}
			c, err := openClient()
			if err != nil {
				return err
			}
			if _, err := client.PatchStage[map[string]interface{}](cmd.Context(), c, args[0], step, args[2], fields); err != nil {
				return writeFailed(cmd, "cập nhật mục", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render("Đã cập nhật"))
			return nil
		},
	}
}

func newStageRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <area> <s1..s5> <id>",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			step, err := parseStep(args[1])
			if err != nil {
				return err
			}
			c, err := openClient()
			if err != nil {
				return err
			}
			if err := c.DeleteStageItem(cmd.Context(), args[0], step, args[2]); err != nil {
				return writeFailed(cmd, "xóa mục", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render("Đã xóa"))
			return nil
		},
	}
}
