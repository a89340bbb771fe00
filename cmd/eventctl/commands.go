package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

// eventStatus is the subset of the status report the table shows
type eventStatus struct {
	Name         string        `json:"name"`
	Variant      string        `json:"variant"`
	State        string        `json:"state"`
	Enabled      bool          `json:"enabled"`
	Window       string        `json:"window"`
	Participants int           `json:"participants"`
	Remaining    time.Duration `json:"remaining"`
}

func printResult(cmd *cobra.Command, resp *response) error {
	if jsonOutput {
		var pretty bytes.Buffer
		if len(resp.Data) == 0 {
			resp.Data = json.RawMessage("null")
		}
		if err := json.Indent(&pretty, resp.Data, "", "  "); err != nil {
			return fmt.Errorf("formatting JSON: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), pretty.String())
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
	return nil
}

func parsePlayerID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid player id %q", s)
	}
	return id, nil
}

var listEventsCmd = &cobra.Command{
	Use:     "list-events",
	Aliases: []string{"ls"},
	Short:   "Show every registered event and its round state",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := api.do(cmd.Context(), "GET", "/api/v1/events", nil)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printResult(cmd, resp)
		}

		var events []eventStatus
		if err := json.Unmarshal(resp.Data, &events); err != nil {
			return fmt.Errorf("decoding events: %w", err)
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tVARIANT\tSTATE\tWINDOW\tPLAYERS\tREMAINING")
		for _, e := range events {
			state := e.State
			if !e.Enabled {
				state += " (disabled)"
			}
			remaining := "-"
			if e.Remaining > 0 {
				remaining = e.Remaining.Round(time.Second).String()
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n", e.Name, e.Variant, state, e.Window, e.Participants, remaining)
		}
		return tw.Flush()
	},
}

var pointsCmd = &cobra.Command{
	Use:   "points <player-id>",
	Short: "Show a player's balance and rank",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parsePlayerID(args[0])
		if err != nil {
			return err
		}
		resp, err := api.do(cmd.Context(), "GET", "/api/v1/points?player_id="+strconv.FormatInt(id, 10), nil)
		if err != nil {
			return err
		}
		return printResult(cmd, resp)
	},
}

var modifyPointsCmd = &cobra.Command{
	Use:   "modify-points <player-id> <delta>",
	Short: "Add (or with a negative delta, remove) points",
	Example: `  eventctl modify-points 42 100
  eventctl modify-points 42 -- -25`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parsePlayerID(args[0])
		if err != nil {
			return err
		}
		delta, err := strconv.ParseInt(strings.TrimSpace(args[1]), 10, 64)
		if err != nil || delta == 0 {
			return fmt.Errorf("invalid delta %q", args[1])
		}
		resp, err := api.do(cmd.Context(), "POST", "/api/v1/admin/points", map[string]int64{
			"player_id": id,
			"delta":     delta,
		})
		if err != nil {
			return err
		}
		return printResult(cmd, resp)
	},
}

var startCmd = &cobra.Command{
	Use:   "start <event>",
	Short: "Start a round now, outside the schedule window",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := api.do(cmd.Context(), "POST", eventPath(args[0], "start"), nil)
		if err != nil {
			return err
		}
		return printResult(cmd, resp)
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop <event>",
	Short: "End the running round",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := api.do(cmd.Context(), "POST", eventPath(args[0], "stop"), nil)
		if err != nil {
			return err
		}
		return printResult(cmd, resp)
	},
}

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Re-read the event and reward configuration files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := api.do(cmd.Context(), "POST", "/api/v1/admin/reload", nil)
		if err != nil {
			return err
		}
		return printResult(cmd, resp)
	},
}
