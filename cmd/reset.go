package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnflow/internal/session"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the current learning path",
	Long: "Discard the current learning path so the next run curates a new one.\n" +
		"With --all the learner profile and quiz history are removed as well.",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")

		e, err := openEnv(cmd, envOptions{exclusive: true})
		if err != nil {
			return err
		}
		defer e.Close()

		orch := session.New(session.Deps{KV: e.kv, Config: sessionConfig(e.cfg), Log: e.log})
		orch.StartOver(ctxOf(cmd), all)
		e.log.Info("reset", "all", all)

		if all {
			fmt.Fprintln(cmd.OutOrStdout(), "All learner data removed.")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Learning path discarded. Your profile and quiz history were kept.")
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("all", false, "Also remove the learner profile and quiz history")
}
