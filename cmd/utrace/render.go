package main

import (
	"fmt"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"pkt.systems/utrace"
	"pkt.systems/utrace/ansi"
)

func newRenderCmd() *cobra.Command {
	var (
		noNewline bool
		color     bool
		locale    string
		table     string
	)
	cmd := &cobra.Command{
		Use:   "render FORMAT [ARG...]",
		Short: "Render a format string",
		Long: `Render FORMAT with the given arguments and print the result.

Arguments may carry a type prefix: i: signed, u: unsigned, f: float,
s: string, b: bool, c: character, t: unix time, e: errno, p: pointer.
Unprefixed arguments are read as integers, then floats, then strings.
A %Q conversion in FORMAT sets the exit status of the command.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []utrace.Option{utrace.WithColor(color)}
			switch strings.ToLower(locale) {
			case "", "en", "english":
			case "it", "italian":
				opts = append(opts, utrace.WithLocale(utrace.LocaleItalian))
			default:
				return fmt.Errorf("unknown locale %q", locale)
			}
			if table != "" {
				tbl, ok := ansi.TableByName(table)
				if !ok {
					return fmt.Errorf("unknown colour table %q (available: %s)", table, strings.Join(ansi.AvailableTableNames(), ", "))
				}
				before := ansi.Snapshot()
				ansi.SetTable(tbl)
				defer ansi.SetTable(before)
			}
			d := utrace.New(opts...)
			defer d.Close()

			values := make([]utrace.Arg, 0, len(args)-1)
			for _, raw := range args[1:] {
				a, err := parseArg(raw)
				if err != nil {
					return err
				}
				values = append(values, a)
			}
			out, err := d.Append(nil, args[0], values...)
			if err != nil {
				return err
			}
			if !noNewline {
				out = append(out, '\n')
			}
			if _, err := cmd.OutOrStdout().Write(out); err != nil {
				return err
			}
			if code, ok := d.ExitCode(); ok && code != 0 {
				return exitError{code: code}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&noNewline, "no-newline", "n", false, "do not print a trailing newline")
	cmd.Flags().BoolVar(&color, "color", false, "render %W colour escapes")
	cmd.Flags().StringVar(&table, "table", "", "colour table for %W (default, xterm256, aixterm)")
	cmd.Flags().StringVar(&locale, "locale", "en", "month and day names for %D (en, it)")
	return cmd
}

func parseArg(raw string) (utrace.Arg, error) {
	kind, value, typed := strings.Cut(raw, ":")
	if !typed || len(kind) != 1 {
		return guessArg(raw), nil
	}
	switch kind {
	case "i":
		n, err := strconv.ParseInt(value, 0, 64)
		if err != nil {
			return utrace.Arg{}, fmt.Errorf("argument %q: %w", raw, err)
		}
		return utrace.Int(n), nil
	case "u", "p":
		n, err := strconv.ParseUint(value, 0, 64)
		if err != nil {
			return utrace.Arg{}, fmt.Errorf("argument %q: %w", raw, err)
		}
		if kind == "p" {
			return utrace.Pointer(uintptr(n)), nil
		}
		return utrace.Uint(n), nil
	case "f":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return utrace.Arg{}, fmt.Errorf("argument %q: %w", raw, err)
		}
		return utrace.Float(f), nil
	case "s":
		return utrace.Str(value), nil
	case "b":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return utrace.Arg{}, fmt.Errorf("argument %q: %w", raw, err)
		}
		return utrace.Bool(v), nil
	case "c":
		r := []rune(value)
		if len(r) != 1 {
			return utrace.Arg{}, fmt.Errorf("argument %q: want a single character", raw)
		}
		return utrace.Char(r[0]), nil
	case "t":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return utrace.Arg{}, fmt.Errorf("argument %q: %w", raw, err)
		}
		return utrace.Time(n), nil
	case "e":
		n, err := strconv.Atoi(value)
		if err != nil {
			return utrace.Arg{}, fmt.Errorf("argument %q: %w", raw, err)
		}
		return utrace.Errno(syscall.Errno(n)), nil
	default:
		return guessArg(raw), nil
	}
}

func guessArg(raw string) utrace.Arg {
	if n, err := strconv.ParseInt(raw, 0, 64); err == nil {
		return utrace.Int(n)
	}
	if n, err := strconv.ParseUint(raw, 0, 64); err == nil {
		return utrace.Uint(n)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return utrace.Float(f)
	}
	return utrace.Str(raw)
}
