package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"modelguard/internal/llm"
	"modelguard/internal/modelpath"
)

func newLoadCmd(g *globals) *cobra.Command {
	var ctxSize, gpuLayers int
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Check the model path, then hand it to the llama runtime",
		Long:  "load validates the model path and passes it to go-llama.cpp. Binaries built without -tags=llama report the runtime as unavailable.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := g.setup("")
			defer env.close()
			if err != nil {
				env.log.Debug().Err(err).Msg("configuration invalid")
				return err
			}
			opts := llm.Options{ContextSize: env.cfg.LlamaCtx, GPULayers: env.cfg.LlamaGPULayers}
			if cmd.Flags().Changed("ctx-size") {
				opts.ContextSize = ctxSize
			}
			if cmd.Flags().Changed("gpu-layers") {
				opts.GPULayers = gpuLayers
			}
			loc := modelpath.Location{Path: env.cfg.ModelPath}
			m, err := llm.Gate(llm.NewLlamaAdapter(opts), loc)
			if err != nil {
				env.log.Debug().Err(err).Str("model_path", loc.Path).Bool("runtime_built", llm.RuntimeBuilt()).Msg("model load failed")
				return err
			}
			defer m.Close()
			env.log.Info().Str("model_path", loc.Path).Int("ctx_size", opts.ContextSize).Int("gpu_layers", opts.GPULayers).Msg("model loaded")
			fmt.Fprintf(cmd.OutOrStdout(), "loaded: %s\n", loc.Path)
			return nil
		},
	}
	cmd.Flags().IntVar(&ctxSize, "ctx-size", 0, "Context size passed to the runtime (0 = runtime default)")
	cmd.Flags().IntVar(&gpuLayers, "gpu-layers", 0, "Layers to offload to GPU (0 = none)")
	return cmd
}
