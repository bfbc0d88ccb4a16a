package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jorge-barreto/spk/internal/logging"
	"github.com/jorge-barreto/spk/internal/ux"
	cli "github.com/urfave/cli/v3"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%serror:%s %v\n", ux.Red, ux.Reset, err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	var restore func()
	return &cli.Command{
		Name:        "spk",
		Usage:       "Spoosh documentation and component scaffolds",
		Description: "Run 'spk docs' for an overview of Spoosh and 'spk templates' for component types.",
		Writer:      stdout,
		ErrWriter:   stderr,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Usage: "Print debug logs to stderr"},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			restore = logging.Setup(cmd.Bool("verbose"), stderr)
			return ctx, nil
		},
		After: func(ctx context.Context, cmd *cli.Command) error {
			if restore != nil {
				restore()
			}
			return nil
		},
		Commands: []*cli.Command{
			initCmd(stdout),
			docsCmd(stdout),
			templatesCmd(stdout),
			genCmd(stdout, stderr),
			historyCmd(stdout),
		},
	}
}
