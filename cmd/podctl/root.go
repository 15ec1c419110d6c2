// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"podctl/internal/config"
	"podctl/internal/pod"
	"podctl/internal/process"
)

// Version, Commit, and BuildDate are set via -ldflags at release build
// time; "dev"/"unknown" are the values a source checkout gets.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

var (
	flagDebug   bool
	flagVerbose bool
	flagQuiet   bool
	flagFiles   []string
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "podctl [OPTIONS] [SPEC...]",
	Short: "Run a set of interdependent local processes",
	Long: titleStyle.Render("podctl") + ` orders a set of local child processes by
declared dependency, gates each one's availability on readiness checks,
and supervises the running fleet until it exits or is interrupted.

Processes are named on the command line as specifiers:

  [ label [ "+" deps ] ":" ] command [ "=" check ]

and/or loaded from one or more task-files with --file; task-file tasks
start before any inline specifiers.

Examples:
  podctl 'db: postgres' 'web +db: ./server=http://localhost:8080/health'
  podctl --file pod.yaml --verbose
`,
	Args:          cobra.ArbitraryArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runPod,
}

func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the root command. Signal-driven cancellation is wired by
// fang: it cancels the context passed to RunE on the first SIGINT, which
// is exactly the cancellation source §5 describes. A returned *exitError
// selects the process's exit code; any other error exits 1 after
// printing the "* * *" banner.
func Execute() {
	ctx := context.Background()

	err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	)
	if err == nil {
		return
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.Err != nil {
			fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("* * * %v", ee.Err)))
		}
		os.Exit(int(ee.Code))
	}

	fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("* * * %v", err)))
	os.Exit(1)
}

func init() {
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "enable debugging mode")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose logging (implies non-quiet)")
	rootCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress non-essential stderr")
	rootCmd.Flags().StringArrayVarP(&flagFiles, "file", "f", nil, "load tasks from a task-file (repeatable)")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "config file (default is $HOME/.config/podctl/config.toml)")

	rootCmd.AddCommand(newCompletionCommand())
}

// runPod is the root command's RunE: it loads config and task-files,
// parses the positional specifiers, and runs the resulting Pod to
// completion.
func runPod(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return &exitError{Code: 1, Err: err}
	}

	verbose := flagVerbose || cfg.UI.Verbose
	wantQuiet := flagQuiet
	if !cmd.Flags().Changed("quiet") {
		wantQuiet = cfg.UI.Quiet
	}
	quiet := wantQuiet && !verbose

	procs, err := loadProcesses(flagFiles, args)
	if err != nil {
		return &exitError{Code: 1, Err: err}
	}

	if cfg.DefaultWait > 0 {
		for _, p := range procs {
			if p.Wait == process.DefaultWait() {
				p.Wait = cfg.DefaultWait
			}
		}
	}

	if flagDebug {
		fmt.Fprintf(os.Stderr, "====> %s %s, at your service\n", "podctl", getVersionString())
	}

	p := pod.New(pod.Options{
		Debug:   flagDebug,
		Verbose: verbose,
		Quiet:   quiet,
	}, procs)

	code, runErr := p.Run(cmd.Context())
	if runErr != nil {
		return &exitError{Code: 1, Err: runErr}
	}
	if code != 0 {
		return &exitError{Code: code}
	}
	return nil
}

// loadProcesses concatenates the tasks from every task-file, in order,
// followed by the inline specifiers parsed from args, per §6: task-file
// tasks come before inline specs.
func loadProcesses(files []string, specs []string) ([]*process.Process, error) {
	var procs []*process.Process

	for _, f := range files {
		tasks, err := process.LoadTaskfile(f)
		if err != nil {
			return nil, err
		}
		procs = append(procs, tasks...)
	}

	for _, spec := range specs {
		p, err := process.Parse("", spec)
		if err != nil {
			return nil, err
		}
		procs = append(procs, p)
	}

	return procs, nil
}
