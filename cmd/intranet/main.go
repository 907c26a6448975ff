package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"intranet/internal/app/server"
	"intranet/internal/domain/receipts"
	"intranet/internal/platform/config"
	"intranet/internal/platform/db"
	"intranet/internal/platform/jobs"
)

func main() {
	root := &cobra.Command{
		Use:           "intranet",
		Short:         "Company intranet server and tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd(), migrateCmd(), jobsCmd(), receiptsCmd(), resetPasswordCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server with the job scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.Run()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			pool, err := db.Connect(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer pool.Close()
			return db.Migrate(cmd.Context(), pool, "migrations")
		},
	}
}

func jobsCmd() *cobra.Command {
	jobsRoot := &cobra.Command{
		Use:   "jobs",
		Short: "Inspect and run scheduled jobs",
	}
	jobsRoot.AddCommand(&cobra.Command{
		Use:       "run <weekly-reminder|annual-reset>",
		Short:     "Run a scheduled job immediately",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"weekly-reminder", "annual-reset"},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			var id string
			switch args[0] {
			case "weekly-reminder":
				id = jobs.JobWeeklyReminder
			case "annual-reset":
				id = jobs.JobAnnualReset
			default:
				return fmt.Errorf("unknown job %q", args[0])
			}
			return app.Scheduler.RunNow(cmd.Context(), id)
		},
	})
	return jobsRoot
}

func receiptsCmd() *cobra.Command {
	receiptsRoot := &cobra.Command{
		Use:   "receipts",
		Short: "Payroll receipt tools",
	}
	receiptsRoot.AddCommand(&cobra.Command{
		Use:   "import <dir>",
		Short: "Bulk-import receipt PDFs named RE_*_*_<anio>_<quincena>_<numeroEmpleado>.pdf",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			entries, err := os.ReadDir(args[0])
			if err != nil {
				return err
			}
			var batch []receipts.ImportFile
			for _, entry := range entries {
				if entry.IsDir() {
					continue
				}
				content, err := os.ReadFile(filepath.Join(args[0], entry.Name()))
				if err != nil {
					return err
				}
				batch = append(batch, receipts.ImportFile{Name: entry.Name(), Content: content})
			}
			if len(batch) == 0 {
				return fmt.Errorf("no files found in %s", args[0])
			}

			summary, err := app.Importer.Run(cmd.Context(), batch, "")
			if err != nil {
				return err
			}
			for _, res := range summary.Results {
				if res.Status == receipts.StatusOK {
					fmt.Printf("ok    %s (%s)\n", res.FileName, res.EmployeeName)
				} else {
					fmt.Printf("fail  %s: %s\n", res.FileName, res.Detail)
				}
			}
			fmt.Printf("%d/%d imported\n", summary.Succeeded, summary.Total)
			return nil
		},
	})
	return receiptsRoot
}

func resetPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-password <email> <new-password>",
		Short: "Set an employee's password directly in the database",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			email, password := args[0], args[1]
			if len(password) < 8 {
				return fmt.Errorf("password must be at least 8 characters")
			}

			cfg := config.Load()
			pool, err := db.Connect(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			tag, err := pool.Exec(cmd.Context(),
				"UPDATE empleados SET password_hash = $1, updated_at = now() WHERE email = $2", string(hash), email)
			if err != nil {
				return err
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("no employee with email %s", email)
			}
			fmt.Println("password updated for", email)
			return nil
		},
	}
}

func newApp(ctx context.Context) (*server.App, error) {
	return server.NewApp(ctx, config.Load())
}
