package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mindflow/internal/profile"
	"github.com/abhisek/mindflow/internal/store"
)

const masteryBarWidth = 24

var statsCmd = &cobra.Command{
	Use:   "stats [student]",
	Short: "Show progress and exam predictions",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := context.Background()
		thresholds := profile.DefaultThresholds()

		if len(args) == 1 {
			p, err := s.ProfileRepo().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("load profile %q: %w", args[0], err)
			}
			printProfile(p, thresholds)
			return nil
		}

		profiles, err := s.ProfileRepo().List(ctx)
		if err != nil {
			return fmt.Errorf("list profiles: %w", err)
		}
		if len(profiles) == 0 {
			fmt.Println("No students yet. Run mindflow to start practicing.")
			return nil
		}
		for _, p := range profiles {
			fmt.Println(p.Summary(thresholds))
		}
		return nil
	},
}

func printProfile(p *profile.Profile, thresholds profile.Thresholds) {
	fmt.Println(p.Summary(thresholds))

	if len(p.Mastery) > 0 {
		fmt.Println()
		fmt.Println("Mastery by concept")
		fmt.Println(strings.Repeat("─", 64))

		concepts := make([]string, 0, len(p.Mastery))
		for c := range p.Mastery {
			concepts = append(concepts, c)
		}
		sort.Strings(concepts)

		for _, c := range concepts {
			fmt.Printf("%-32s %s %3d%%\n", truncate(c, 32), masteryBar(p.Mastery[c]), p.Mastery[c])
		}
	}

	if n := len(p.Sessions); n > 0 {
		fmt.Println()
		fmt.Printf("Recent sessions (%d total)\n", n)
		fmt.Println(strings.Repeat("─", 64))

		start := n - 10
		if start < 0 {
			start = 0
		}
		for _, sess := range p.Sessions[start:] {
			verdict := "✓"
			if sess.Score == 0 {
				verdict = "✗"
			}
			fmt.Printf("%s  %s  %-28s  mastery %d%%\n",
				sess.Timestamp.Local().Format("2006-01-02 15:04"),
				verdict,
				truncate(sess.Concept, 28),
				sess.Confidence,
			)
		}
	}
}

func masteryBar(pct int) string {
	filled := pct * masteryBarWidth / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", masteryBarWidth-filled)
}
