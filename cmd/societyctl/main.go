package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"societyhub/internal/config"
	"societyhub/internal/database"
	"societyhub/internal/logging"
	"societyhub/internal/model"
	"societyhub/internal/repository"
	"societyhub/internal/seed"
	"societyhub/internal/service"
	"societyhub/internal/version"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.Log)

	rootCmd := &cobra.Command{
		Use:          "societyctl",
		Short:        "Society API maintenance tool",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(
		migrateCmd(cfg),
		seedCmd(cfg),
		createSuperadminCmd(cfg),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func withDB(cfg *config.Config, fn func(db *gorm.DB) error) error {
	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)
	return fn(db)
}

func migrateCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update all tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cfg, func(db *gorm.DB) error {
				if err := database.Migrate(db); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Migration complete")
				return nil
			})
		},
	}
}

func seedCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load a demo society with an admin, an owner and a tenant",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cfg, func(db *gorm.DB) error {
				if err := database.Migrate(db); err != nil {
					return err
				}
				res, err := seed.Run(cmd.Context(), db, time.Now())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Society %q (id %d)\n", res.Society.Name, res.Society.ID)
				for _, u := range []*model.User{res.Admin, res.Owner, res.Tenant} {
					fmt.Fprintf(out, "  %-8s %s / %s\n", u.Role, u.Phone, seed.DefaultPassword)
				}
				return nil
			})
		},
	}
}

func createSuperadminCmd(cfg *config.Config) *cobra.Command {
	var req model.CreateUserRequest
	var email string
	cmd := &cobra.Command{
		Use:   "create-superadmin",
		Short: "Create a superadmin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email != "" {
				req.Email = &email
			}
			return withDB(cfg, func(db *gorm.DB) error {
				users := repository.NewUserRepository(db)
				auth := service.NewAuthService(users, nil, cfg)
				audit := service.NewAuditService(repository.NewGormAuditLogRepository(db))
				admins := service.NewAdminService(db, users, repository.NewAdminSocietyRepository(db), auth, audit)

				ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
				defer cancel()
				user, err := admins.CreateSuperadmin(ctx, &req)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created superadmin %d (%s)\n", user.ID, user.Phone)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "display name")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "login phone number")
	cmd.Flags().StringVar(&email, "email", "", "login email (optional)")
	cmd.Flags().StringVar(&req.Password, "password", "", "login password")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("phone")
	cmd.MarkFlagRequired("password")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, args []string) {
			v := version.Get()
			fmt.Fprintf(cmd.OutOrStdout(), "societyctl %s %s %s\n", v.Version, v.Commit, v.BuildTime)
		},
	}
}
