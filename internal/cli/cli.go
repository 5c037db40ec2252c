package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/baton/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// usageError builds the ExitError for invalid invocations.
func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// hostList collects -host values; each value may be a comma separated list.
type hostList []string

func (h *hostList) String() string {
	return strings.Join(*h, ",")
}

func (h *hostList) Set(value string) error {
	for _, name := range strings.Split(value, ",") {
		if name = strings.TrimSpace(name); name != "" {
			*h = append(*h, name)
		}
	}
	return nil
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("baton", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
baton - converge hosts to their declared roles.

Usage:
  baton [options] [INVENTORY_PATH]

Arguments:
  INVENTORY_PATH
    Path to an inventory file (.hcl, .toml, .yaml, .yml, .json) or a
    directory containing them. Inventories declare roles and hosts.

Options:
`)
		flagSet.PrintDefaults()
	}

	var hosts hostList
	inventoryFlag := flagSet.String("inventory", "", "Path to the inventory file or directory.")
	iFlag := flagSet.String("i", "", "Path to the inventory file or directory (shorthand).")
	flagSet.Var(&hosts, "host", "Host to converge; repeatable or comma separated. Default is every host.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	parallelFlag := flagSet.Int("parallel", 1, "Number of hosts converged at the same time.")
	metricsPortFlag := flagSet.Int("metrics-port", 0, "Port for the /metrics and /health HTTP server. 0 is disabled.")
	templatesFlag := flagSet.String("templates", "", "Root directory for relative template names.")
	listFlag := flagSet.Bool("list", false, "List hosts, roles, components and resource types, then exit.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, usageError("%s", err.Error())
	}
	slog.Debug("Arguments parsed successfully.")

	path := *inventoryFlag
	if path == "" {
		path = *iFlag
	}
	if path == "" && flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	if flagSet.NArg() > 1 {
		return nil, false, usageError("unexpected arguments: %s", strings.Join(flagSet.Args()[1:], " "))
	}

	if path == "" {
		slog.Debug("No inventory path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, usageError("invalid log-format: must be 'text' or 'json'")
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	if *parallelFlag < 1 {
		return nil, false, usageError("invalid parallel: must be at least 1")
	}

	config, err := app.NewConfig(app.Config{
		InventoryPath: path,
		Hosts:         hosts,
		TemplateRoot:  *templatesFlag,
		LogFormat:     logFormat,
		LogLevel:      logLevel,
		MetricsPort:   *metricsPortFlag,
		Parallel:      *parallelFlag,
		List:          *listFlag,
	})
	if err != nil {
		return nil, false, usageError("%s", err.Error())
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
