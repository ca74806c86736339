package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nmalahov/clarus/internal/server"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis and verification API over HTTP",
	Long: `Serve starts the HTTP API:

  GET  /health                  liveness check
  GET  /                        service metadata and endpoint map
  POST /analyze-legal-document  {"pdf_url": "..."}
  POST /verify-misinformation   {"query": "..."}

Example:
  clarus serve
  clarus serve --addr :9090
  CLARUS_LLM_PROVIDER=openai OPENAI_API_KEY=sk-... clarus serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger()

	provider, err := buildProvider(cfg)
	if err != nil {
		return err
	}

	analyzer := buildAnalyzer(cfg, provider, logger)
	verifier := buildVerifier(cfg, provider, logger)

	srv := server.New(cfg.Server, analyzer, verifier, logger)
	return srv.Run()
}
