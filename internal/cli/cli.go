// Package cli provides the cobra commands of the stockroom binary.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"stockroom/internal/app"
	"stockroom/internal/config"
	"stockroom/internal/dto"
	"stockroom/internal/parser"
	"stockroom/pkg/logger"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCommand builds the command tree. v receives the flag bindings; each
// call gets its own viper so commands can be built repeatedly in tests.
func NewRootCommand(v *viper.Viper) *cobra.Command {
	config.SetDefaults(v)

	var envFile string
	rootCmd := &cobra.Command{
		Use:           "stockroom",
		Short:         "Inventory backend: catalog CRUD, stock import and basket discounts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if envFile != "" {
				return config.LoadDotEnv(envFile)
			}
			return config.LoadDotEnv()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&envFile, "env-file", "", "dotenv file to load (default .env)")
	flags.String("db-driver", "", "store backend: postgres|sqlite|memory")
	flags.String("database-url", "", "database DSN")
	flags.String("log-level", "", "log level")
	flags.String("log-format", "", "log format: json|text")
	flags.Bool("seed", false, "seed default categories into an empty store")

	_ = v.BindPFlag("DB_DRIVER", flags.Lookup("db-driver"))
	_ = v.BindPFlag("DATABASE_URL", flags.Lookup("database-url"))
	_ = v.BindPFlag("LOG_LEVEL", flags.Lookup("log-level"))
	_ = v.BindPFlag("LOG_FORMAT", flags.Lookup("log-format"))
	_ = v.BindPFlag("SEED_DATA", flags.Lookup("seed"))

	rootCmd.AddCommand(newServeCommand(v), newImportCommand(v), newStockCommand(v))
	return rootCmd
}

// Execute runs the CLI with process arguments.
func Execute() error {
	return NewRootCommand(viper.New()).Execute()
}

// bootstrap loads configuration and wires the application for one command.
func bootstrap(v *viper.Viper, logOut io.Writer) (*app.App, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}
	log := logger.NewWithOutput(logOut, cfg.LogLevel, cfg.LogFormat)
	return app.New(cfg, log)
}

func newServeCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(v, os.Stdout)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.StartEventConsumer(); err != nil {
				a.Log.WithError(err).Warn("failed to start stock event consumer")
			}

			server := a.HTTP()
			errCh := make(chan error, 1)
			go func() {
				a.Log.WithField("port", a.Config.AppPort).Info("starting server")
				errCh <- server.Listen(a.Config.AppPort)
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return fmt.Errorf("server failed: %w", err)
			case <-quit:
				a.Log.Info("shutting down server")
			}

			if err := server.Shutdown(); err != nil {
				a.Log.WithError(err).Error("error during shutdown")
			}
			a.Log.Info("server gracefully stopped")
			return nil
		},
	}
	cmd.Flags().String("port", "", "listen address, e.g. :8080")
	_ = v.BindPFlag("APP_PORT", cmd.Flags().Lookup("port"))
	return cmd
}

func newImportCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json|file.xlsx>",
		Short: "Import stock records into the configured store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := readRecords(args[0])
			if err != nil {
				return err
			}
			if len(records) == 0 {
				return fmt.Errorf("%s contains no stock records", args[0])
			}

			a, err := bootstrap(v, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			products, err := a.Stock.ImportStock(records)
			if err != nil {
				return err
			}
			a.Log.WithFields(logrus.Fields{"file": args[0], "records": len(records)}).Info("import finished")
			return printJSON(cmd.OutOrStdout(), products)
		},
	}
}

func newStockCommand(v *viper.Viper) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "stock",
		Short: "Print the stock listing",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(v, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			stock, err := a.Stock.GetStock()
			if err != nil {
				return err
			}
			if output == "json" {
				return printJSON(cmd.OutOrStdout(), stock)
			}
			for _, s := range stock {
				fmt.Fprintf(cmd.OutOrStdout(), "%d | %s | %s | %d | %s\n",
					s.ProductID, s.CategoryName, s.ProductName, s.Quantity, s.Price.StringFixed(2))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&output, "output", "", "output format: json")
	return cmd
}

// readRecords loads import records from a JSON array or an .xlsx sheet.
func readRecords(path string) ([]dto.StockImportRecord, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return parser.ParseStockFile(path)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []dto.StockImportRecord
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return records, nil
}

func printJSON(w io.Writer, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
