package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"popdash/internal/api"
	"popdash/internal/config"
	"popdash/internal/engine"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "popdash",
		Short: "Global population dashboard backend",
		Long: `Popdash loads a per-country demographic CSV snapshot, validates it,
and serves chart, table, and metric specifications for four dashboard
views over a JSON API. Rendering is left entirely to the consumer.`,
		Version: version,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(configCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var cfgFile, dataFile, listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if dataFile != "" {
				cfg.DataFile = dataFile
			}
			if listen != "" {
				cfg.Listen = listen
			}

			e := echo.New()
			e.HideBanner = true
			e.Use(middleware.CORS())
			e.Use(middleware.Recover())
			e.Use(middleware.Logger())

			cache := engine.NewCache()
			h := api.NewHandler(cache, cfg.DataFile)
			h.RegisterRoutes(e)

			// Warm the cache in the background so the API is live
			// immediately; the first request blocks on the load only if it
			// beats the warm-up.
			go func() {
				t0 := time.Now()
				ds, err := cache.Load(cfg.DataFile)
				if err != nil {
					log.Printf("BACKGROUND: load failed: %v", err)
					return
				}
				log.Printf("BACKGROUND: snapshot %s ready, %d rows (%d dropped) in %v",
					ds.SnapshotID, ds.Len(), ds.Dropped, time.Since(t0))
			}()

			log.Printf("Server ready on %s (data loading in background...)", cfg.Listen)
			return e.Start(cfg.Listen)
		},
	}

	cmd.Flags().StringVar(&cfgFile, "config", "", "config file (default ./popdash.yaml)")
	cmd.Flags().StringVar(&dataFile, "data", "", "demographic CSV snapshot")
	cmd.Flags().StringVar(&listen, "listen", "", "listen address")
	return cmd
}

func validateCmd() *cobra.Command {
	var cfgFile, dataFile string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Run the load pipeline once and report the snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if dataFile != "" {
				cfg.DataFile = dataFile
			}

			ds, err := engine.Load(cfg.DataFile)
			if err != nil {
				return err
			}

			fmt.Printf("Snapshot:   %s\n", ds.SnapshotID)
			fmt.Printf("Source:     %s\n", ds.Source)
			fmt.Printf("Rows kept:  %d\n", ds.Len())
			fmt.Printf("Rows dropped: %d\n", ds.Dropped)
			fmt.Printf("Continents: %d\n", len(engine.Continents(ds)))
			fmt.Printf("Total population: %.0f million\n", engine.TotalPopulation(ds))
			return nil
		},
	}

	cmd.Flags().StringVar(&cfgFile, "config", "", "config file (default ./popdash.yaml)")
	cmd.Flags().StringVar(&dataFile, "data", "", "demographic CSV snapshot")
	return cmd
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}

	var out string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load("")
			if err != nil {
				return err
			}
			if err := config.Save(cfg, out); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", firstNonEmpty(out, "popdash.yaml"))
			return nil
		},
	}
	initCmd.Flags().StringVar(&out, "out", "", "output path (default ./popdash.yaml)")

	cmd.AddCommand(initCmd)
	return cmd
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
