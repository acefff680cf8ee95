package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	tcell "github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	utilexec "k8s.io/utils/exec"
)

// app is the state shared by every subcommand once flags are parsed.
type app struct {
	exec   utilexec.Interface
	cfg    *Config
	logger *log.Logger
}

// setup loads configuration and builds the logger for cmd.
func (a *app) setup(cmd *cobra.Command) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := loadConfig(configFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) drives(ctx context.Context) ([]Device, error) {
	drives, err := listDrives(ctx, a.exec, a.logger, a.cfg.listOptions())
	if err != nil {
		return nil, err
	}
	a.logger.Debug("drives listed", "count", len(drives))
	return drives, nil
}

func newRootCmd(exec utilexec.Interface) *cobra.Command {
	a := &app{exec: exec}

	root := &cobra.Command{
		Use:           appName,
		Short:         "List storage devices with their transport, classification and mountpoints",
		Version:       appversion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default $XDG_CONFIG_HOME/drivelist/config.yaml)")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("alias-dir", "", "directory of stable device alias links")
	pf.String("lsblk", "", "lsblk binary to run")
	pf.Bool("statfs", false, "fill missing mountpoint capacities with statfs")

	root.AddCommand(
		newListCmd(a),
		newShowCmd(a),
		newExportCmd(a),
		newTUICmd(a),
	)

	return root
}

func newListCmd(a *app) *cobra.Command {
	var removable, system bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"l", "ls"},
		Short:   "List drives",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if removable && system {
				return fmt.Errorf("--removable and --system are mutually exclusive")
			}

			drives, err := a.drives(cmd.Context())
			if err != nil {
				return err
			}

			selected := make([]Device, 0, len(drives))
			for _, d := range drives {
				if (removable && !d.IsRemovable) || (system && !d.IsSystem) {
					continue
				}
				selected = append(selected, d)
			}

			switch a.cfg.Format {
			case "json":
				return writeDriveJSON(cmd.OutOrStdout(), selected)
			case "table":
				return writeDriveTable(cmd.OutOrStdout(), selected)
			default:
				return fmt.Errorf("unsupported output format: %s", a.cfg.Format)
			}
		},
	}

	cmd.Flags().String("format", "", "output format: table or json")
	cmd.Flags().BoolVar(&removable, "removable", false, "only removable drives")
	cmd.Flags().BoolVar(&system, "system", false, "only system drives")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "show DEVICE",
		Aliases: []string{"s"},
		Short:   "Show one drive by path, kernel name or alias",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			drives, err := a.drives(cmd.Context())
			if err != nil {
				return err
			}

			d, err := findDrive(drives, args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			return writeDrive(cmd.OutOrStdout(), d)
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	methods := make(map[string]*bool, len(compressionMethods))

	cmd := &cobra.Command{
		Use:     "export OUTPUTFILE",
		Aliases: []string{"e"},
		Short:   "Write the drive list as a compressed JSON report",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var selected []string
			for _, method := range compressionMethods {
				if *methods[method] {
					selected = append(selected, method)
				}
			}
			if len(selected) > 1 {
				return fmt.Errorf("you can only use one compression method")
			}

			method := a.cfg.Compression
			if len(selected) == 1 {
				method = selected[0]
			}

			drives, err := a.drives(cmd.Context())
			if err != nil {
				return err
			}

			written, err := exportReport(drives, args[0], method, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			a.logger.Info("report written", "file", written, "devices", len(drives))
			return nil
		},
	}

	for _, method := range compressionMethods {
		methods[method] = cmd.Flags().Bool(method, false, "compress with "+method)
	}
	return cmd
}

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse drives interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			drives, err := a.drives(cmd.Context())
			if err != nil {
				return err
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("failed to create screen: %w", err)
			}
			return runTUI(screen, drives)
		},
	}
}

func main() {
	root := newRootCmd(utilexec.New())
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
