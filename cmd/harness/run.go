package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/eventsqa/harness/internal/dispatch"
	"github.com/eventsqa/harness/internal/services"
	"github.com/eventsqa/harness/internal/ui"
	"github.com/eventsqa/harness/internal/util"
	"github.com/eventsqa/harness/pkg/scheduler"
)

var errTestFailed = errors.New("test failed")

func newRunCmd(a *app) *cobra.Command {
	var (
		payload string
		uiTest  bool
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "run <keyword>",
		Short: "Run one keyword locally and print its result",
		Example: `  harness run create_account --payload '{"expired_at":"20250819"}'
  harness run create_user --ui --payload '{"username":"jdoe","email":"jdoe@example.com"}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data := map[string]any{}
			if payload != "" {
				if err := json.Unmarshal([]byte(payload), &data); err != nil {
					return fmt.Errorf("invalid payload: %w", err)
				}
			}
			if cmd.Flags().Changed("ui") {
				data["ui_test"] = uiTest
			}

			sched := scheduler.NewScheduler(1)
			defer sched.Close()

			var opts []services.ControllerOption
			if a.cfg.Browser.Automation {
				opts = append(opts, services.WithUIRunner(ui.NewScenarioRunner(a.cfg.Browser)))
			}
			controller := services.NewController(a.cfg.Runner, sched, opts...)
			d := dispatch.New(controller)
			for _, t := range extraEntities {
				d.Register("create_"+string(t), dispatch.EntityHandler(controller, t))
			}

			result := d.Dispatch(cmd.Context(), args[0], data)
			if !printResult(cmd.OutOrStdout(), args[0], result, verbose) {
				return errTestFailed
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&payload, "payload", "p", "", "JSON object passed to the keyword")
	flags.BoolVar(&uiTest, "ui", false, "run the UI flavour of the test")
	flags.BoolVarP(&verbose, "verbose", "v", false, "print captured stdout and stderr")

	return cmd
}

// printResult writes a coloured summary and reports whether the run succeeded.
// Unknown keywords are echoed without a status and count as success.
func printResult(w io.Writer, keyword string, result map[string]any, verbose bool) bool {
	status := util.StringFrom(result, "status", "")
	bold := color.New(color.Bold)

	switch status {
	case "success":
		color.New(color.FgGreen, color.Bold).Fprintf(w, "PASS ")
	case "":
		color.New(color.FgYellow, color.Bold).Fprintf(w, "ECHO ")
	default:
		color.New(color.FgRed, color.Bold).Fprintf(w, "FAIL ")
	}
	bold.Fprintln(w, keyword)

	if msg := util.StringFrom(result, "message", ""); msg != "" {
		fmt.Fprintf(w, "  message:     %s\n", msg)
	}
	if e := util.StringFrom(result, "error", ""); e != "" {
		color.New(color.FgRed).Fprintf(w, "  error:       %s\n", e)
	}
	if code, ok := result["return_code"]; ok {
		fmt.Fprintf(w, "  return code: %v\n", code)
	}
	if status == "" {
		if received, err := json.Marshal(result["received"]); err == nil {
			fmt.Fprintf(w, "  received:    %s\n", received)
		}
	}

	if verbose {
		if out := util.StringFrom(result, "stdout", ""); out != "" {
			color.New(color.Faint).Fprintf(w, "--- stdout ---\n%s\n", out)
		}
		if errOut := util.StringFrom(result, "stderr", ""); errOut != "" {
			color.New(color.Faint).Fprintf(w, "--- stderr ---\n%s\n", errOut)
		}
	}

	return status == "" || status == "success"
}
