package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ChizhovVadim/AttrSelect/internal/config"
	"github.com/spf13/cobra"
)

func main() {
	var err = run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCmd(os.Stdout).ExecuteContext(ctx)
}

type app struct {
	cfg config.Config
	out io.Writer
}

func newRootCmd(out io.Writer) *cobra.Command {
	var a = &app{out: out}
	var root = &cobra.Command{
		Use:   "attrsel",
		Short: "Attribute subset selection for classification datasets",
		Long: `
attrsel searches for the subset of dataset attributes on which a
cross-validated classifier scores best. Subsets are searched exhaustively
or greedily; every evaluation trains the classifier k times.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.NewViper(cmd.Flags())
			if err != nil {
				return err
			}
			a.cfg, err = config.Load(v)
			return err
		},
	}
	config.BindFlags(root.PersistentFlags())
	root.AddCommand(
		a.exhaustiveCmd(),
		a.greedyCmd(),
		a.selectCmd(),
		a.benchmarkCmd(),
	)
	return root
}
