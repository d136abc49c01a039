package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fhsmendes/weather-widget/view"
	"github.com/fhsmendes/weather-widget/widget"
	"github.com/spf13/cobra"
)

const (
	clearCommand = ":clear"
	quitCommand  = ":quit"
)

func newInteractiveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Read city names from stdin, one per line",
		Long: `interactive reads one city per line and prints the widget after each step.
Type :clear to reset the widget and :quit (or send EOF) to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return InteractiveMode(cmd.Context(), a.controller, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// InteractiveMode handles continuous input/output. A blank line is an empty
// search and leaves the widget as it was.
func InteractiveMode(ctx context.Context, c *widget.Controller, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	fmt.Fprintf(out, "Weather - type a city, %s to reset, %s to leave\n", clearCommand, quitCommand)
	if err := view.Text(out, c.Snapshot()); err != nil {
		return err
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")

		var snapshot widget.Snapshot
		switch strings.TrimSpace(line) {
		case quitCommand:
			return nil
		case clearCommand:
			snapshot = c.Clear()
		default:
			snapshot = c.Search(ctx, line)
		}

		if err := view.Text(out, snapshot); err != nil {
			return err
		}
	}
	return scanner.Err()
}
