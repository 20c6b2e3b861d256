package main

import (
	"github.com/amonks/lists/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides server.addr)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	logger := newLogger()
	store, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	srv, err := server.New(server.Options{Store: store, Logger: logger})
	if err != nil {
		return err
	}
	return srv.Serve(addr)
}
