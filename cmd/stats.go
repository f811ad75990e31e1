package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnflow/internal/profile"
	"github.com/abhisek/learnflow/internal/progress"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
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
		fmt.Fprintf(out, "%s · %s · %s\n", p.Name, p.SkillLevel, p.LearningGoal)

		tracker := progress.NewTracker(e.kv, progress.WithLogger(e.log))
		st, ok := tracker.Statistics(ctx)
		if !ok {
			fmt.Fprintln(out, "No learning path started.")
			return nil
		}

		fmt.Fprintln(out, renderTable(
			[]string{"Progress", "Videos", "Quizzes", "Avg score", "Time spent"},
			[][]string{{
				fmt.Sprintf("%d%%", st.OverallProgress),
				fmt.Sprintf("%d/%d", st.CompletedVideos, st.TotalVideos),
				strconv.Itoa(st.CompletedQuizzes),
				fmt.Sprintf("%d%%", st.AverageQuizScore),
				st.TimeSpent.Formatted,
			}},
			[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignRight},
		))

		sess := tracker.Current(ctx)
		rows := make([][]string, 0, len(sess.Videos))
		for i, v := range sess.Videos {
			rows = append(rows, videoRow(i+1, v))
		}
		fmt.Fprintln(out, renderTable(
			[]string{"#", "Video", "Status", "Watched", "Quiz", "Notes"},
			rows,
			[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignRight},
		))
		return nil
	},
}

func videoRow(n int, v progress.VideoProgress) []string {
	status, watched, score := "pending", "-", "-"
	if secs, ok := v.ViewTime(); ok {
		status = "completed"
		watched = fmt.Sprintf("%dm %02ds", secs/60, secs%60)
	}
	if s, ok := v.QuizScore(); ok {
		score = fmt.Sprintf("%d%%", s)
	}
	return []string{
		strconv.Itoa(n),
		truncate(v.Title, 48),
		status,
		watched,
		score,
		strconv.Itoa(len(v.Notes)),
	}
}
