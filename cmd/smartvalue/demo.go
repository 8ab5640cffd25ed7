package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vango-dev/smartvalue/internal/demo"
)

func demoCmd(a *app) *cobra.Command {
	var (
		useRef  bool
		initial int
	)

	cmd := &cobra.Command{
		Use:   "demo [actions...]",
		Short: "Run the counter demo",
		Long: `Mount the counter component and apply actions in order, printing the
screen after each one.

Actions:
  inc, dec, double, reset, add:N, set:N

With --ref the counter uses silent storage: the value changes but the
component never re-renders, so the rendered view goes stale.

Examples:
  smartvalue demo inc inc reset
  smartvalue demo --ref set:5 reset
  smartvalue demo --initial 10 add:5 double`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("ref") {
				useRef = a.cfg.Demo.UseRef
			}
			if !cmd.Flags().Changed("initial") {
				initial = a.cfg.Demo.Initial
			}
			if len(args) == 0 {
				args = []string{"inc", "inc", "reset"}
			}
			return runDemo(cmd, args, initial, useRef)
		},
	}

	cmd.Flags().BoolVarP(&useRef, "ref", "r", false, "Use silent storage (no re-render on change)")
	cmd.Flags().IntVarP(&initial, "initial", "i", 0, "Initial counter value")

	return cmd
}

func runDemo(cmd *cobra.Command, args []string, initial int, useRef bool) error {
	actions, err := demo.ParseActions(args)
	if err != nil {
		return err
	}

	counter := demo.NewCounter(demo.Config{
		Name:    "counter",
		Initial: initial,
		UseRef:  useRef,
	})
	defer counter.Close()

	out := cmd.OutOrStdout()
	printSnapshot(out, "mount", counter.Snapshot())
	for _, action := range actions {
		printSnapshot(out, action.String(), counter.Apply(cmd.Context(), action))
	}

	success(out, "%d actions applied", len(actions))
	return nil
}

func printSnapshot(w io.Writer, label string, s demo.Snapshot) {
	prev := "-"
	if s.HasPrevious {
		prev = fmt.Sprint(s.Previous)
	}
	fmt.Fprintf(w, "%-8s current=%d initial=%d previous=%s renders=%d\n",
		label, s.Current, s.Initial, prev, s.Renders)
	info(w, "view: %s", s.View)
}
