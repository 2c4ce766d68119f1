package cli

import (
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"modelguard/internal/httpapi"
	"modelguard/internal/llm"
	"modelguard/internal/modelpath"
	"modelguard/internal/preflight"
)

func newServeCmd(g *globals) *cobra.Command {
	var addr string
	var corsOrigins []string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve /preflight, /healthz and /metrics over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := g.setup(addr)
			defer env.close()
			if err != nil {
				env.log.Debug().Err(err).Msg("configuration invalid")
				return err
			}
			if err := modelpath.Validate(env.cfg.ModelPath); err != nil {
				// keep serving: /preflight reports the failure
				env.log.Warn().Err(err).Msg("model path check failed at startup")
			}
			httpapi.SetLogger(env.log)
			if len(corsOrigins) > 0 {
				httpapi.SetCORSOptions(true, corsOrigins, []string{"GET", "OPTIONS"}, []string{"Accept", "Content-Type"})
			}
			modelPath := env.cfg.ModelPath
			mux := httpapi.NewMux(preflight.Checker{
				Path:         func() string { return modelPath },
				RuntimeBuilt: llm.RuntimeBuilt,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return httpapi.Serve(ctx, env.cfg.Addr, mux, func(a net.Addr) {
				env.log.Info().Str("addr", a.String()).Str("model_path", modelPath).Msg("modelguard listening")
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (default :8089, or $MODELGUARD_ADDR)")
	cmd.Flags().StringSliceVar(&corsOrigins, "cors-origin", nil, "Allowed CORS origins (enables CORS when set)")
	return cmd
}
