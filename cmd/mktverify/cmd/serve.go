package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mktdata/mktverify/pkg/api"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the verification API server",
	Long: `Start the HTTP API server. It verifies server-local capture files on
demand, serves the archived run history, and exposes Prometheus metrics.

Examples:
  mktverify serve
  mktverify serve --port 9100 --data-dir /var/lib/mktverify`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if port, _ := cmd.Flags().GetInt("port"); port != 0 {
			cfg.Port = port
		}
		if bind, _ := cmd.Flags().GetString("bind"); bind != "" {
			cfg.Bind = bind
		}

		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		return api.StartServer(store, api.ServerConfig{Port: cfg.Port, Bind: cfg.Bind}, verifierConfig())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on (default from config)")
	serveCmd.Flags().String("bind", "", "Address to bind (default from config)")
}
