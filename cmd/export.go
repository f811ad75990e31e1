package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnflow/internal/profile"
	"github.com/abhisek/learnflow/internal/progress"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export revision notes for the current learning path",
	Long: "Export the learning goal, completed videos, statistics, achievements " +
		"and every note as JSON or plain text. Use --output - to print to stdout.",
	RunE: func(cmd *cobra.Command, args []string) error {
		formatFlag, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		format, err := progress.ParseExportFormat(formatFlag)
		if err != nil {
			return err
		}

		e, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := ctxOf(cmd)
		out := cmd.OutOrStdout()

		p := profile.NewRepository(e.kv).Load(ctx)
		if p == nil {
			fmt.Fprintln(out, "No learner profile yet. Run `learnflow` to get started.")
			return nil
		}
		tracker := progress.NewTracker(e.kv, progress.WithLogger(e.log))
		rn, ok := tracker.RevisionNotes(ctx, p.LearningGoal)
		if !ok {
			fmt.Fprintln(out, "No learning path started.")
			return nil
		}

		if output == "-" {
			return rn.Write(out, format)
		}
		path, err := rn.WriteFile(output, format)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s (%d notes)\n", path, len(rn.Notes))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("format", "f", "json", "Output format: json or txt")
	exportCmd.Flags().StringP("output", "o", "", "Directory to write into (default current directory), or - for stdout")
}
