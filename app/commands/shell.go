package commands

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"todo-cli/app/shell"
)

func newShellCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive task menu (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runShell(cmd)
		},
	}
}

func (a *app) runShell(cmd *cobra.Command) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	rt, err := a.newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.close(context.Background())

	in, out := cmd.InOrStdin(), cmd.OutOrStdout()
	sh := shell.New(rt.tasks, in, out, a.logger, shell.Options{
		Pause:         shell.ShouldPause(a.cfg.Shell.Pause, in, out),
		Confirm:       a.cfg.Shell.Confirm,
		ProgressWidth: a.cfg.Shell.ProgressWidth,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.runMirror(gctx, rt)
	})
	g.Go(func() error {
		defer cancel()
		return sh.Run(gctx)
	})
	return g.Wait()
}
