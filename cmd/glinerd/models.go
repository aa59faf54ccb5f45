package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"glinerd/internal/config"
	"glinerd/internal/registry"
)

func newModelsCmd() *cobra.Command {
	var modelsDir string
	models := &cobra.Command{
		Use:   "models",
		Short: "Manage installed models",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("models requires a subcommand: list|pull")
		},
	}
	models.PersistentFlags().StringVar(&modelsDir, "models-dir", modelsDirDefault(), "Models directory")

	list := &cobra.Command{
		Use:   "list",
		Short: "List models with both tokenizer.json and model.onnx",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			infos, err := registry.LoadDir(modelsDir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(infos) == 0 {
				fmt.Fprintf(out, "no models in %s\n", modelsDir)
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSIZE\tPATH")
			for _, m := range infos {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", m.ID, humanize.Bytes(uint64(m.SizeBytes)), m.ModelPath)
			}
			return tw.Flush()
		},
	}

	var hubURL, token, revision, logLevel string
	pull := &cobra.Command{
		Use:     "pull [model-id]",
		Short:   "Download tokenizer.json and model.onnx from the Hugging Face hub",
		Example: "  glinerd models pull onnx-community/gliner-multitask-large-v0.5",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := config.DefaultModel
			if v := os.Getenv(config.EnvModel); v != "" {
				id = v
			}
			if len(args) == 1 {
				id = args[0]
			}
			logger, err := newLogger(logLevel, "console", cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			d := registry.NewDownloader(logger)
			d.HubURL = hubURL
			d.Token = token
			d.Revision = revision
			res, err := d.Pull(cmd.Context(), id, modelsDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pulled %s (%s) into %s\n", id, humanize.Bytes(uint64(res.Bytes)), res.Files.Model)
			return nil
		},
	}
	pull.Flags().StringVar(&hubURL, "hub-url", registry.DefaultHubURL, "Hub base URL")
	pull.Flags().StringVar(&token, "token", os.Getenv("HF_TOKEN"), "Hub access token (env HF_TOKEN)")
	pull.Flags().StringVar(&revision, "revision", "main", "Repository revision")
	pull.Flags().StringVar(&logLevel, "log-level", "info", "Log level")

	models.AddCommand(list, pull)
	return models
}
