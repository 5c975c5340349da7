package cmd

import (
	"context"
	"log"
	httpNet "net/http"
	"os"
	"os/signal"
	"syscall"

	"golang-quant/internal/delivery/http"

	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the API server and the scheduled simulations",
	Run:   Start,
}

func Start(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}

	services, err := appDep.NewServices()
	if err != nil {
		log.Fatalf("Failed to create services: %v", err)
	}

	httpHandler := http.NewHttpAPIHandler(ctx, appDep.echo, appDep.validator, services)

	apiServer := NewHTTPServer(ctx, appDep, httpHandler)
	go func() {
		if err := apiServer.Start(); err != nil && err != httpNet.ErrServerClosed {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	schedulerRunning := false
	if appDep.cfg.Scheduler.Enabled {
		if err := services.SchedulerService.Start(ctx); err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}
		schedulerRunning = true
	}

	<-ctx.Done()
	log.Println("Shutting down gracefully...")

	if schedulerRunning {
		services.SchedulerService.Stop()
	}

	if err := apiServer.Stop(); err != nil {
		log.Fatalf("Failed to stop HTTP server: %v", err)
	}

	if err := appDep.Close(); err != nil {
		log.Fatalf("Failed to close app dependency: %v", err)
	}
}
