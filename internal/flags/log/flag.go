// Package log wires the logging flags of the CLI to a log/slog logger. It
// supports text and JSON output on stdout or stderr at the usual levels.
package log

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmartinm/inspire-dojson/internal/flags/enum"
)

const (
	FormatFlagName = "logformat"
	FormatText     = "text"
	FormatJSON     = "json"

	LevelFlagName = "loglevel"
	LevelWarn     = "warn"
	LevelDebug    = "debug"
	LevelInfo     = "info"
	LevelError    = "error"

	OutputFlagName = "logoutput"
	OutputStderr   = "stderr"
	OutputStdout   = "stdout"
)

// RegisterFlags adds the logging flags to the given flag set. They are meant
// to be registered as persistent flags on the root command.
func RegisterFlags(flagset *pflag.FlagSet) {
	enum.Var(flagset, FormatFlagName, []string{FormatText, FormatJSON},
		"log output format, text for the console or json for machine processing")
	enum.Var(flagset, LevelFlagName, []string{LevelWarn, LevelDebug, LevelInfo, LevelError},
		"minimum level a log entry must have to be printed")
	enum.Var(flagset, OutputFlagName, []string{OutputStderr, OutputStdout},
		"destination stream for log output")
}

// Logger builds a slog.Logger from the logging flags of cmd.
func Logger(cmd *cobra.Command) (*slog.Logger, error) {
	level, err := levelFromFlags(cmd)
	if err != nil {
		return nil, err
	}
	format, err := enum.Get(cmd.Flags(), FormatFlagName)
	if err != nil {
		return nil, fmt.Errorf("failed to get log format: %w", err)
	}
	output, err := enum.Get(cmd.Flags(), OutputFlagName)
	if err != nil {
		return nil, fmt.Errorf("failed to get log output: %w", err)
	}

	var w io.Writer
	switch output {
	case OutputStdout:
		w = cmd.OutOrStdout()
	case OutputStderr:
		w = cmd.ErrOrStderr()
	default:
		return nil, fmt.Errorf("invalid log output: %s", output)
	}

	var handler slog.Handler
	switch format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	case FormatText:
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	return slog.New(handler), nil
}

func levelFromFlags(cmd *cobra.Command) (slog.Level, error) {
	name, err := enum.Get(cmd.Flags(), LevelFlagName)
	if err != nil {
		return slog.LevelWarn, fmt.Errorf("failed to get log level: %w", err)
	}
	switch name {
	case LevelDebug:
		return slog.LevelDebug, nil
	case LevelInfo:
		return slog.LevelInfo, nil
	case LevelWarn:
		return slog.LevelWarn, nil
	case LevelError:
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("invalid log level: %s", name)
	}
}
