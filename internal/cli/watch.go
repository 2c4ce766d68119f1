package cli

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"modelguard/internal/config"
	"modelguard/internal/modelpath"
	"modelguard/internal/watch"
)

func newWatchCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Re-check the model path whenever it or the config file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := g.setup("")
			defer env.close()
			if err != nil {
				env.log.Debug().Err(err).Msg("configuration invalid")
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfgFile := g.configPath()
			w := watch.New(watch.Options{
				ModelPath:  env.cfg.ModelPath,
				ConfigFile: cfgFile,
				Resolve: func() (string, error) {
					cfg, err := config.Resolve(cfgFile, config.Overrides{ModelPath: g.modelPath})
					return cfg.ModelPath, err
				},
				Debounce: time.Duration(env.cfg.WatchDebounceMS) * time.Millisecond,
				OnResult: func(r modelpath.Result) {
					if r.OK() {
						env.log.Info().Str("model_path", r.Path).Str("state", string(r.State)).Msg("model path ok")
						return
					}
					env.log.Warn().Err(r.Err).Str("model_path", r.Path).Str("state", string(r.State)).Msg("model path check failed")
				},
				Logger: env.log,
			})
			env.log.Info().Str("model_path", w.Path()).Str("config", cfgFile).Msg("watching")
			return w.Run(ctx)
		},
	}
}
