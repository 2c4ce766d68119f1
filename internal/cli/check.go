package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"modelguard/internal/modelpath"
)

func newCheckCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:     "check",
		Short:   "Check that the model path exists",
		Example: "  modelguard check --model-path ~/models/llm/codellama-13b-instruct.Q4_K_M.gguf",
		Args:    cobra.NoArgs,
		RunE:    func(cmd *cobra.Command, args []string) error { return runCheck(cmd, g) },
	}
}

func runCheck(cmd *cobra.Command, g *globals) error {
	env, err := g.setup("")
	defer env.close()
	if err != nil {
		env.log.Debug().Err(err).Msg("configuration invalid")
		return err
	}
	res := modelpath.Check(env.cfg.ModelPath)
	if !res.OK() {
		env.log.Debug().Err(res.Err).Str("model_path", res.Path).Msg("model path check failed")
		return res.Err
	}
	env.log.Info().Str("model_path", res.Path).Msg("model path ok")
	fmt.Fprintf(cmd.OutOrStdout(), "ok: %s\n", res.Path)
	return nil
}
