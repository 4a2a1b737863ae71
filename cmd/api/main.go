package main

import (
	"context"
	"fmt"
	"os"

	"estates-backend/internal/application/admins"
	"estates-backend/internal/config"
	"estates-backend/internal/database"
	"estates-backend/internal/interfaces/router"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "estates-backend",
		Short: "Real-estate admin API server",
	}
	rootCmd.AddCommand(serveCmd(), migrateCmd(), createAdminCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return cfg, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			app, db, rdb, err := router.CreateApp(cfg)
			if err != nil {
				return err
			}

			// Verify connections before accepting traffic
			if db != nil {
				sqlDB, err := db.DB()
				if err != nil {
					return fmt.Errorf("database: %w", err)
				}
				if err := sqlDB.Ping(); err != nil {
					return fmt.Errorf("database connection failed: %w", err)
				}
				log.Info().Msg("Postgres connected")
			}
			if rdb != nil {
				if err := rdb.Ping(context.Background()).Err(); err != nil {
					return fmt.Errorf("redis connection failed: %w", err)
				}
				log.Info().Msg("Redis connected")
			}

			log.Info().Str("port", cfg.Port).Msg("Server running")
			return app.Listen(":" + cfg.Port)
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := database.Open(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			if err := database.AutoMigrate(db); err != nil {
				return err
			}
			log.Info().Msg("Migrations applied")
			return nil
		},
	}
}

func createAdminCmd() *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account (bootstrap)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := database.Open(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			svc := &admins.Service{DB: db}
			admin, err := svc.Create(cmd.Context(), admins.CreateInput{
				Name:     name,
				Email:    email,
				Password: password,
			})
			if err != nil {
				return err
			}
			log.Info().Str("id", admin.ID.String()).Str("email", admin.Email).Msg("Admin created")
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "admin name")
	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
