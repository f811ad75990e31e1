package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnflow/internal/quiz"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List submitted quizzes, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		videoID, _ := cmd.Flags().GetString("video")
		limit, _ := cmd.Flags().GetInt("limit")

		e, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := ctxOf(cmd)
		h := quiz.NewHistory(e.kv)
		var entries []quiz.HistoryEntry
		if videoID != "" {
			entries = h.ForVideo(ctx, videoID)
		} else {
			entries = h.List(ctx)
		}

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "No quizzes taken yet.")
			return nil
		}

		var rows [][]string
		var total int
		for i := len(entries) - 1; i >= 0; i-- {
			en := entries[i]
			total += en.Results.Score
			if limit > 0 && len(rows) >= limit {
				continue
			}
			rows = append(rows, []string{
				en.CompletedAt.Local().Format("2006-01-02 15:04"),
				truncate(en.VideoTitle, 44),
				fmt.Sprintf("%d/%d", en.Results.CorrectAnswers, en.Results.TotalQuestions),
				fmt.Sprintf("%d%%", en.Results.Score),
				string(en.Results.Performance),
			})
		}

		fmt.Fprintln(out, renderTable(
			[]string{"Completed", "Video", "Correct", "Score", "Performance"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft},
			"", "Attempts: "+strconv.Itoa(len(entries)), "",
			fmt.Sprintf("avg %d%%", total/len(entries)), "",
		))
		return nil
	},
}

func init() {
	historyCmd.Flags().String("video", "", "Only show attempts for this video ID")
	historyCmd.Flags().IntP("limit", "n", 0, "Number of attempts to show (0 = all)")
}
