package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/config"
	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/service/seed"
	"github.com/tsireledzonetshilonwe/quick-health-hub/pkg/logger"
	"github.com/tsireledzonetshilonwe/quick-health-hub/pkg/validator"
)

func main() {
	root := &cobra.Command{
		Use:           "quickhealth",
		Short:         "QuickHealth patient portal API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd(), seedCmd())

	if err := root.ExecuteContext(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

func setup() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger.Init(&logger.Config{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Pretty: !cfg.IsProduction(),
	})
	validator.Register()

	return cfg, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			srv := &http.Server{
				Addr:         cfg.Addr(),
				Handler:      a.router.Engine(),
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info().
					Str("addr", srv.Addr).
					Str("env", cfg.Env).
					Str("storage", cfg.Database.Driver).
					Str("sessions", cfg.Session.Store).
					Msg("Starting server")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return err
				}
			case <-ctx.Done():
			}
			log.Info().Msg("Shutting down server...")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}

			log.Info().Msg("Server exited properly")
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the demo accounts and sample records",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			if cfg.Database.Driver == config.StorageDriverMemory {
				log.Warn().Msg("Seeding the memory driver only lasts for this process")
			}

			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.seed.Run(cmd.Context())
			if err != nil {
				return err
			}

			log.Info().
				Str("admin", res.Admin.Email).
				Str("patient", res.Patient.Email).
				Int64("appointment_id", res.Appointment.ID).
				Int64("prescription_id", res.Prescription.ID).
				Msg("Seed complete")
			log.Info().Msgf("Admin login: %s / %s", seed.AdminEmail, seed.AdminPassword)
			log.Info().Msgf("Patient login: %s / %s", seed.PatientEmail, seed.PatientPassword)
			return nil
		},
	}
}
