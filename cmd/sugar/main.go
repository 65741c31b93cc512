package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/modoterra/sugar/internal/buildinfo"
	"github.com/modoterra/sugar/pkg/app"
	"github.com/modoterra/sugar/pkg/backend"
	"github.com/modoterra/sugar/pkg/console"
	"github.com/modoterra/sugar/pkg/core"
)

var (
	configFile   string
	groupName    string
	serviceGroup string
	verbose      bool
	dryRun       bool

	// filled by the pre-pass over os.Args before cobra parses
	optionsArgs []string
	cmdArgs     []string
)

func main() {
	rest, options, trailing, err := extractTrailingArgs(os.Args[1:])
	if err != nil {
		console.Error(err.Error())
		os.Exit(1)
	}
	optionsArgs, cmdArgs = options, trailing

	rootCmd.SetArgs(rest)
	if err := rootCmd.Execute(); err != nil {
		console.Error(err.Error())
		var cerr *core.Error
		if errors.As(err, &cerr) {
			os.Exit(cerr.ExitCode())
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sugar",
	Short: "Simplify the containers orchestration workflow",
	Long: "Sugar wraps docker compose, podman-compose, and docker swarm behind\n" +
		"named service groups defined in a .sugar.yaml configuration file.",
	Version:       buildinfo.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config-file", ".sugar.yaml", "path to the sugar configuration file")
	pf.StringVar(&groupName, "group", "", "name of the service group")
	pf.StringVar(&serviceGroup, "service-group", "", "name of the service group")
	pf.BoolVar(&verbose, "verbose", false, "print the backend command line before running it")
	pf.BoolVar(&dryRun, "dry-run", false, "print the backend command line and skip execution")
	pf.MarkHidden("service-group")

	for _, action := range app.ComposeActionNames() {
		if action == "version" {
			// versionCmd owns this name and prints buildinfo
			continue
		}
		rootCmd.AddCommand(newComposeCmd(action))
	}
	rootCmd.AddCommand(extCmd)
	rootCmd.AddCommand(swarmCmd)
	rootCmd.AddCommand(versionCmd)

	for _, action := range []string{"start", "stop", "restart", "get-ip", "wait"} {
		extCmd.AddCommand(newExtCmd(action))
	}
	extCmd.AddCommand(newHealthCmd())

	for _, action := range []string{"init", "join", "leave", "ls", "deploy", "ps", "rm", "rollback"} {
		swarmCmd.AddCommand(newSwarmCmd(action))
	}
}

func loadApp() (*app.App, error) {
	group := groupName
	if group == "" {
		group = serviceGroup
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	runner := &backend.ExecRunner{
		Verbose: verbose,
		DryRun:  dryRun,
		Logger:  logger,
	}

	a := app.New(app.Options{
		ConfigFile: configFile,
		Group:      group,
	}, runner, logger)
	if err := a.Load(); err != nil {
		return nil, err
	}
	return a, nil
}

// serviceFlags registers the per-action service selection flags and returns
// a Request builder bound to them.
func serviceFlags(cmd *cobra.Command, action string) func() app.Request {
	var (
		all      bool
		services string
		service  string
	)
	cmd.Flags().BoolVar(&all, "all", false, "target all services of the group")
	cmd.Flags().StringVar(&services, "services", "", "comma-separated service names")
	cmd.Flags().StringVar(&service, "service", "", "single service name")

	return func() app.Request {
		return app.Request{
			Action:      action,
			All:         all,
			Services:    services,
			ServicesSet: cmd.Flags().Changed("services"),
			Service:     service,
			Options:     optionsArgs,
			Cmd:         cmdArgs,
		}
	}
}

func newComposeCmd(action string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   action,
		Short: app.ComposeActionHelp(action),
	}
	request := serviceFlags(cmd, action)
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		return a.RunCompose(cmd.Context(), request())
	}
	return cmd
}

// --- Ext ---

var extCmd = &cobra.Command{
	Use:   "ext",
	Short: "Extended compose commands",
}

var extHelp = map[string]string{
	"start":   "Start services (compose up)",
	"stop":    "Stop services",
	"restart": "Restart services (compose stop + up)",
	"get-ip":  "Print the IP address of a service container",
	"wait":    "Wait until a service container reaches a state",
}

func newExtCmd(action string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   action,
		Short: extHelp[action],
	}
	request := serviceFlags(cmd, action)
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		return a.RunExt(cmd.Context(), request())
	}
	return cmd
}

func newHealthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Show memory, CPU, and health of the group's containers",
	}
	request := serviceFlags(cmd, "health")
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		return a.Health(cmd.Context(), cmd.OutOrStdout(), request())
	}
	return cmd
}

// --- Swarm ---

var swarmCmd = &cobra.Command{
	Use:   "swarm",
	Short: "Docker swarm commands",
}

var swarmHelp = map[string]string{
	"init":     "Initialize a swarm",
	"join":     "Join a swarm as a node and/or manager",
	"leave":    "Leave the swarm",
	"ls":       "List stacks",
	"deploy":   "Deploy the group's compose files as a stack",
	"ps":       "List the tasks of the stack",
	"rm":       "Remove the stack",
	"rollback": "Revert changes to a service's configuration",
}

func newSwarmCmd(action string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   action,
		Short: swarmHelp[action],
	}
	request := serviceFlags(cmd, action)
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		return a.RunSwarm(cmd.Context(), request())
	}
	return cmd
}

// --- Version ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("sugar %s (%s) built %s\n", buildinfo.Version, buildinfo.Commit, buildinfo.Date)
	},
}
