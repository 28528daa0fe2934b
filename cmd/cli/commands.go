package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mauv0809/matchday/internal/archive"
	"github.com/mauv0809/matchday/internal/commands"
	"github.com/mauv0809/matchday/internal/database"
	"github.com/mauv0809/matchday/internal/sheets"
	"github.com/mauv0809/matchday/internal/tournament"
	"github.com/spf13/cobra"
)

var (
	dbPath    string
	sheetPath string
	chatID    string
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(usageCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(alltimeCmd)

	alltimeCmd.Flags().StringVar(&dbPath, "db", "", "Path to the archive database")
	alltimeCmd.Flags().StringVar(&sheetPath, "sheet", "", "Path to the statistics workbook")
	alltimeCmd.Flags().StringVar(&chatID, "chat", "", "Namespaced chat id to read from the archive, e.g. tg:42")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Get persisted command usage counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/usage")
	},
}

var parseCmd = &cobra.Command{
	Use:   "parse <result>",
	Short: "Parse a result line and print the recognised match",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := tournament.ParseMatch(strings.Join(args, " "))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, commands.FormatMatch(m))
		for _, c := range m.Contributions() {
			if c.Assistant != "" {
				fmt.Fprintf(out, "⚽ %s (🎯 %s)\n", c.Scorer, c.Assistant)
			} else {
				fmt.Fprintf(out, "⚽ %s\n", c.Scorer)
			}
		}
		return nil
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings [result lines...]",
	Short: "Compute the table from result lines given as arguments or on stdin",
	RunE: func(cmd *cobra.Command, args []string) error {
		lines := args
		if len(lines) == 0 {
			var err error
			lines, err = readLines(cmd.InOrStdin())
			if err != nil {
				return err
			}
		}
		st := tournament.NewChatState()
		for i, line := range lines {
			m, err := tournament.ParseMatch(line)
			if err != nil {
				return fmt.Errorf("line %d: %w", i+1, err)
			}
			if err := st.AddMatch(m); err != nil {
				return err
			}
		}
		if len(st.Matches()) == 0 {
			return fmt.Errorf("no result lines given")
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, commands.FormatTable(tournament.Standings(st.Matches())))
		fmt.Fprintln(out)
		fmt.Fprintln(out, commands.FormatLeaderboard("⚽ Goals:", tournament.Leaderboard(st.Goals())))
		fmt.Fprintln(out)
		fmt.Fprintln(out, commands.FormatLeaderboard("🎯 Assists:", tournament.Leaderboard(st.Assists())))
		return nil
	},
}

var alltimeCmd = &cobra.Command{
	Use:   "alltime",
	Short: "Print the all-time scorers and playmakers from the workbook or the archive",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		var goals, assists *tournament.Tally
		switch {
		case sheetPath != "":
			var err error
			goals, assists, err = sheets.NewWorkbook(sheetPath).Totals(ctx)
			if err != nil {
				return err
			}
		case dbPath != "" && chatID != "":
			db, teardown, err := database.InitDB(dbPath, "", "")
			if err != nil {
				return err
			}
			defer teardown()
			goals, assists, err = archive.New(db).PlayerTotals(ctx, chatID)
			if err != nil {
				return err
			}
		default:
			return fmt.Errorf("either --sheet or both --db and --chat are required")
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, commands.FormatLeaderboard("⚽ All-time scorers:", tournament.Leaderboard(goals)))
		fmt.Fprintln(out)
		fmt.Fprintln(out, commands.FormatLeaderboard("🎯 All-time playmakers:", tournament.Leaderboard(assists)))
		return nil
	},
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
