package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/mauv0809/pitchside/internal/config"
	"github.com/mauv0809/pitchside/internal/orchestrator"
	"github.com/mauv0809/pitchside/internal/selection"
	"github.com/mauv0809/pitchside/internal/tui"
	"github.com/spf13/cobra"
)

var revealDelay = config.DefaultRevealDelay

func init() {
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(pickCmd)

	predictCmd.Flags().DurationVar(&revealDelay, "reveal-delay", config.DefaultRevealDelay, "Delay between the outcome and the score reveal")
}

func newOrchestrator() *orchestrator.Orchestrator {
	return orchestrator.New(newBackend(), selection.NewStore(), orchestrator.Options{
		RevealDelay:    revealDelay,
		RequestTimeout: timeout,
	})
}

var predictCmd = &cobra.Command{
	Use:   "predict <home> <away>",
	Short: "Predict a single match",
	Long: `Runs one prediction attempt locally: validates the pair against the
team list, fetches both teams' stats and the prediction in parallel and waits
for the score reveal.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		o := newOrchestrator()
		defer o.Close()

		if _, err := o.LoadTeams(cmd.Context()); err != nil {
			// Names are then checked by the backend alone.
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", err)
		}

		sel := selection.Selection{Home: args[0], Away: args[1]}
		if !sel.Eligible() {
			return errors.New("please select two different teams")
		}
		o.Select(sel.Home, sel.Away)

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*timeout+config.DefaultDebounce+revealDelay)
		defer cancel()
		state, err := o.WaitFor(ctx, func(s orchestrator.State) bool {
			return s.Phase == orchestrator.PhaseSettled || s.Phase == orchestrator.PhaseFailed
		})
		if err != nil {
			return fmt.Errorf("prediction did not finish: %w", err)
		}
		if state.Phase == orchestrator.PhaseSettled {
			// Stats calls still outstanding get a last chance to land.
			state = settleStats(ctx, o, state)
		}

		fmt.Fprint(cmd.OutOrStdout(), renderState(state))
		if state.Phase == orchestrator.PhaseFailed {
			return errors.New(state.Err)
		}
		return nil
	},
}

// settleStats waits for stats calls still outstanding after the reveal.
// Calls that already failed are not waited for.
func settleStats(ctx context.Context, o statsWaiter, state orchestrator.State) orchestrator.State {
	if state.StatsPending == 0 {
		return state
	}
	latest, _ := o.WaitFor(ctx, func(s orchestrator.State) bool {
		return s.AttemptID != state.AttemptID || s.StatsPending == 0
	})
	if latest.AttemptID != state.AttemptID {
		return state
	}
	return latest
}

type statsWaiter interface {
	WaitFor(ctx context.Context, done func(orchestrator.State) bool) (orchestrator.State, error)
}

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Pick two teams interactively and watch the prediction",
	RunE: func(cmd *cobra.Command, args []string) error {
		o := newOrchestrator()
		defer o.Close()
		return tui.Run(o)
	},
}
