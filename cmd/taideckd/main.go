package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/reusee/dscope"

	"github.com/reusee/taideck/cmds"
	"github.com/reusee/taideck/deckconfigs"
	"github.com/reusee/taideck/logs"
	"github.com/reusee/taideck/metrics"
	"github.com/reusee/taideck/modes"
	"github.com/reusee/taideck/renders"
	"github.com/reusee/taideck/servers"
	"github.com/reusee/taideck/storages"
)

func main() {
	cmds.Execute(os.Args[1:])
	ctx := context.Background()

	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	)

	scope.Call(func(
		logger logs.Logger,
		runtime *renders.Runtime,
		server *servers.Server,
		m *metrics.Metrics,
		addr deckconfigs.ListenAddr,
		storePath deckconfigs.StorePath,
		budget deckconfigs.RenderBudget,
	) {

		runtime.Budget = time.Duration(budget)
		runtime.Hooks = m.Hooks()
		m.ObserveCache(runtime.Cache)
		server.Metrics = m

		if storePath != "" {
			store, err := storages.Open(ctx, string(storePath))
			if err != nil {
				fmt.Fprintln(os.Stderr, err.Error())
				os.Exit(1)
			}
			defer store.Close()
			server.Store = store
			warmCache(ctx, logger, runtime, store)
		}

		httpServer := &http.Server{
			Addr:    string(addr),
			Handler: server.Handler(),
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("listening", "addr", addr)
			serverErrors <- httpServer.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {

		case err := <-serverErrors:
			if !errors.Is(err, http.ErrServerClosed) {
				fmt.Fprintln(os.Stderr, err.Error())
				os.Exit(1)
			}

		case sig := <-shutdown:
			logger.Info("shutting down", "signal", sig.String())
			shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.Error("graceful shutdown", "error", err)
				httpServer.Close()
			}

		}

	})

}

// warmCache recompiles every last known-good source so a restarted daemon
// serves stale units instead of error panels while editors reconnect.
func warmCache(ctx context.Context, logger logs.Logger, runtime *renders.Runtime, store *storages.Store) {
	goods, err := store.LastGoods(ctx)
	if err != nil {
		logger.Error("load last good sources", "error", err)
		return
	}
	warmed := 0
	for id, source := range goods {
		if err := runtime.Warm(id, source); err != nil {
			logger.Warn("warm component", "component", id, "error", err)
			continue
		}
		warmed++
	}
	logger.Info("cache warmed", "components", warmed)
}
