package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"parley/internal/ai"
	"parley/internal/config"
	"parley/internal/service"
)

var generateCmd = &cobra.Command{
	Use:   "generate [flags] <message>...",
	Short: "Generate text once from the command line",
	Long: `Join the given messages with newlines into a prompt, send it to the
configured inference backend and print the generated text.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	flags := generateCmd.Flags()
	flags.StringP("model", "m", "Llama2", "model name (see models in config)")
	flags.Int("max-length", 0, "maximum length of the reply (default: ai.max_length)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	modelName, _ := cmd.Flags().GetString("model")
	maxLength, _ := cmd.Flags().GetInt("max-length")

	ctx := cmd.Context()
	gen, err := ai.NewGeneratorFromConfig(ctx, &cfg.AI, nil)
	if err != nil {
		return err
	}

	return generate(ctx, cmd.OutOrStdout(), cfg, gen, modelName, maxLength, args)
}

// generate 解析模型名称，用 messages 拼出 prompt 并输出生成结果
// maxLength <= 0 时使用 ai.max_length
func generate(ctx context.Context, w io.Writer, cfg *config.Config, gen service.TextGenerator,
	modelName string, maxLength int, messages []string) error {
	modelPath, ok := cfg.ModelPaths()[modelName]
	if !ok {
		return fmt.Errorf("unknown model %q", modelName)
	}

	if maxLength <= 0 {
		maxLength = cfg.AI.MaxLength
	}

	text, err := gen.GenerateText(ctx, modelPath, ai.BuildPrompt(messages), ai.WithMaxLength(maxLength))
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, text)
	return err
}
