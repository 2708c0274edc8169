package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(fixturesCmd)
	rootCmd.AddCommand(seasonCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(playersCmd)
}

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List the teams known to the backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		teams, err := newBackend().ListTeams(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderTeams(teams))
		return nil
	},
}

var fixturesCmd = &cobra.Command{
	Use:   "fixtures",
	Short: "List fixtures and results",
	RunE: func(cmd *cobra.Command, args []string) error {
		matches, err := newBackend().ListMatches(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderFixtures(matches))
		return nil
	},
}

var seasonCmd = &cobra.Command{
	Use:   "season",
	Short: "Show the predicted final standings",
	RunE: func(cmd *cobra.Command, args []string) error {
		season, err := newBackend().PredictSeason(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderSeason(season))
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats <team>",
	Short: "Show a team's season statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := newBackend().GetTeamStats(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderStats(args[0], &stats))
		return nil
	},
}

var playersCmd = &cobra.Command{
	Use:   "players <team>",
	Short: "List a team's squad",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		players, err := newBackend().ListRoster(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderPlayers(players))
		return nil
	},
}
