package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
)

var colorError = color.New(color.FgRed)

var errMissingPath = errors.New("missing file path argument")

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		colorError.EnableColor()
	} else {
		colorError.DisableColor()
	}

	if err := realMain(
		ctx,
		os.Stdout,
		os.Stderr,
		os.Args,
	); err != nil {
		reportError(os.Stderr, colorError, err)
		cancel()
		os.Exit(1)
	}
}

func reportError(w io.Writer, c *color.Color, err error) {
	fmt.Fprintf(w, "%s %s\n", c.Sprint("Error:"), err)
}

func realMain(ctx context.Context, stdout io.Writer, stderr io.Writer, args []string) error {
	exec := args[0]

	fs := flag.NewFlagSet(exec, flag.ContinueOnError)
	fs.SetOutput(stderr)
	flagSafe := fs.String("safe", "", "extra ASCII characters to leave unencoded")
	flagUnreserved := fs.Bool("unreserved", false, "leave -._~ unencoded")
	flagRawNewlines := fs.Bool("raw-newlines", false, "do not translate CRLF and CR line endings to LF")
	flagVerbose := fs.Bool("v", false, "report sizes on stderr")
	flagForceColor := fs.Bool("fc", false, "force color output")

	rootCmd := &ffcli.Command{
		Name:       exec,
		ShortUsage: fmt.Sprintf("%v [flags] <file>", exec),
		ShortHelp:  "Percent-encode the contents of a UTF-8 text file",
		FlagSet:    fs,
		Options:    []ff.Option{ff.WithEnvVarPrefix("PCTENCODE")},
		Exec: func(ctx context.Context, args []string) error {
			if *flagForceColor {
				colorError.EnableColor()
			}

			switch len(args) {
			case 0:
				return errMissingPath
			case 1:
			default:
				return fmt.Errorf("expected exactly one file path argument, got %d", len(args))
			}
			path := args[0]

			text, err := readText(ctx, path, readOptions{rawNewlines: *flagRawNewlines})
			if err != nil {
				return err
			}
			if *flagVerbose {
				fmt.Fprintf(stderr, "read %s from %s\n", humanize.Bytes(uint64(len(text))), path)
			}

			var opts []escapeOption
			if *flagSafe != "" {
				opts = append(opts, withSafe(*flagSafe))
			}
			if *flagUnreserved {
				opts = append(opts, withUnreserved())
			}
			encoded := escape(text, opts...)

			if err := ctx.Err(); err != nil {
				return err
			}

			w := bufio.NewWriter(stdout)
			if _, err := io.WriteString(w, encoded); err != nil {
				return err
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if *flagVerbose {
				fmt.Fprintf(stderr, "wrote %s\n", humanize.Bytes(uint64(len(encoded))))
			}

			return nil
		},
	}

	err := rootCmd.ParseAndRun(ctx, args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}

	return err
}
