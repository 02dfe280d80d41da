package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/callhint/callhint/hint"
	"github.com/callhint/callhint/internal/cli/config"
	"github.com/callhint/callhint/internal/inspect"
)

var serveVerbose bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the hint introspection API",
	Long: `Serve a read-only HTTP API over the process-wide hint registry:

  GET /healthz           health check
  GET /hints             all registered hints
  GET /hints/{function}  hints registered against one function`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		logger := zap.NewNop()
		if serveVerbose {
			logger, err = zap.NewDevelopment()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			defer logger.Sync()
		}

		addr := fmt.Sprintf("%s:%d", cfg.Serve.Host, cfg.Serve.Port)
		handler := inspect.Handler(hint.Default(), logger)

		logger.Info("serving hint introspection API", zap.String("addr", addr))
		fmt.Printf("callhint introspection API listening on http://%s\n", addr)

		if err := http.ListenAndServe(addr, handler); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "log requests")
}
