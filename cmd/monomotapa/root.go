package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/monomotapa"
	"github.com/eringen/monomotapa/log"
)

const shutdownTimeout = 10 * time.Second

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.json")
	rootCmd.Flags().String("addr", "", "listen address, overrides the configuration")
	rootCmd.Flags().Bool("debug", false, "enable debug logging and pprof")
}

var rootCmd = &cobra.Command{
	Use:               "monomotapa",
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	Short:             "Monomotapa serves a personal site from markdown sources",
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := monomotapa.LoadConfig(configPath)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			cfg.Debug = true
		}

		defer func() {
			_ = log.L().Sync()
		}()

		app := monomotapa.New(cfg)
		defer app.Close()

		log := log.S()
		quit := make(chan os.Signal, 1)
		errs := make(chan error, 1)

		go func() {
			log.Info("starting server")
			errs <- app.Start()
			quit <- os.Interrupt
		}()

		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		select {
		case err := <-errs:
			return err
		default:
		}

		log.Info("stopping server")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return app.Shutdown(ctx)
	},
}
