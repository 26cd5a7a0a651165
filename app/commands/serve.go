package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"todo-cli/app/controllers"
	"todo-cli/app/routes"
)

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose the task collection over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
	cmd.Flags().String("addr", ":8080", "listen address")
	return cmd
}

func (a *app) newRouter(rt *runtime) *mux.Router {
	router := mux.NewRouter()
	router.Use(routes.SessionMiddleware(rt.session))
	routes.RegisterRoutes(router, controllers.NewTaskController(rt.tasks, a.logger))
	return router
}

func (a *app) serve(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt, err := a.newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.close(context.Background())

	server := &http.Server{
		Addr:         a.cfg.HTTP.Addr,
		Handler:      a.newRouter(rt),
		ReadTimeout:  a.cfg.HTTP.ReadTimeout,
		WriteTimeout: a.cfg.HTTP.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("HTTP server listening", "addr", server.Addr, "session", rt.session)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server")
		return server.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return a.runMirror(gctx, rt)
	})
	return g.Wait()
}
