package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/Gidy30B/project02-sub000/config"
	"github.com/Gidy30B/project02-sub000/cron"
	"github.com/Gidy30B/project02-sub000/handlers"
	"github.com/Gidy30B/project02-sub000/middleware"
	"github.com/Gidy30B/project02-sub000/models"
	"github.com/Gidy30B/project02-sub000/routes"
	"github.com/Gidy30B/project02-sub000/services/schedule"
	"github.com/Gidy30B/project02-sub000/services/tasks"
	"github.com/Gidy30B/project02-sub000/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "scheduler",
		Short: "Appointment slot scheduling server",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadConfig()
		},
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(workerCmd())
	rootCmd.AddCommand(indexesCmd())
	rootCmd.AddCommand(previewCmd())
	rootCmd.AddCommand(enqueueCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the scheduling HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(config.AppConfig)
		},
	}
}

func workerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Consume appointment booked/cancelled events",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.AppConfig
			logger := utils.GetLogger()

			deps, err := buildDeps(cfg, logger)
			if err != nil {
				return err
			}
			defer deps.Close()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			h := &tasks.AppointmentHandlers{
				Slots:  deps.Service,
				Logger: logger.Named("worker"),
			}
			return cron.RunAppointmentWorker(ctx, cfg, h, logger)
		},
	}
}

func indexesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "indexes",
		Short: "Create the MongoDB indexes used by the schedule store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.AppConfig
			cfg.StoreDriver = storeMongo
			deps, err := buildDeps(cfg, utils.GetLogger())
			if err != nil {
				return err
			}
			defer deps.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			if err := deps.Mongo.EnsureIndexes(ctx); err != nil {
				return fmt.Errorf("ensure indexes: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "indexes ensured")
			return nil
		},
	}
}

func previewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview <availability.json>",
		Short: "Print the slots a date-keyed shift file would generate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recurrence, _ := cmd.Flags().GetString("recurrence")
			horizon, _ := cmd.Flags().GetInt("horizon")

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var availability map[string][]models.Shift
			if err := json.Unmarshal(raw, &availability); err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			rule, err := schedule.ParseRecurrence(models.Recurrence(recurrence))
			if err != nil {
				return err
			}
			days, err := schedule.BuildAvailability(schedule.BuildRequest{
				Availability: availability,
				Recurrence:   rule,
				HorizonDays:  horizon,
			}, nil)
			if err != nil {
				return err
			}

			dates := make([]string, 0, len(days))
			for date := range days {
				dates = append(dates, date)
			}
			sort.Strings(dates)

			out := cmd.OutOrStdout()
			for _, date := range dates {
				fmt.Fprintln(out, date)
				for _, slot := range days[date] {
					fmt.Fprintf(out, "  %s - %s  %s\n", slot.StartTime, slot.EndTime, slot.ShiftName)
				}
			}
			return nil
		},
	}
	cmd.Flags().String("recurrence", "none", "none, daily, weekly or monthly")
	cmd.Flags().Int("horizon", schedule.DefaultHorizonDays, "recurrence horizon in days")
	return cmd
}

func enqueueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enqueue <booked|cancelled>",
		Short: "Publish an appointment event for the worker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slotID, _ := cmd.Flags().GetString("slot")
			appointmentID, _ := cmd.Flags().GetString("appointment")
			event := models.AppointmentEvent{SlotID: slotID, AppointmentID: appointmentID}

			var (
				task *asynq.Task
				err  error
			)
			switch args[0] {
			case "booked":
				task, err = tasks.NewAppointmentBookedTask(event)
			case "cancelled":
				task, err = tasks.NewAppointmentCancelledTask(event)
			default:
				return fmt.Errorf("unknown event %q", args[0])
			}
			if err != nil {
				return err
			}

			client := asynq.NewClient(cron.QueueRedisOpt(config.AppConfig))
			defer client.Close()
			info, err := client.EnqueueContext(cmd.Context(), task, asynq.MaxRetry(5))
			if err != nil {
				return fmt.Errorf("enqueue %s: %w", task.Type(), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "enqueued %s as %s\n", task.Type(), info.ID)
			return nil
		},
	}
	cmd.Flags().String("slot", "", "slot ID")
	cmd.Flags().String("appointment", "", "appointment ID (booked only)")
	return cmd
}

func runServer(cfg config.Config) error {
	logger := utils.GetLogger()

	deps, err := buildDeps(cfg, logger)
	if err != nil {
		return err
	}
	defer deps.Close()

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	utils.StartHealthMonitor(monitorCtx, 15*time.Second, deps.Redis, deps.MongoClient)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	scheduleHandler := handlers.NewScheduleHandler(deps.Service)
	routes.RegisterRoutes(router, handlers.NewHandlerBundle(scheduleHandler))

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server failed to start: %w", err)
	case <-quit:
	}
	logger.Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("main: server stopped gracefully", zap.String("addr", srv.Addr))
	return nil
}
