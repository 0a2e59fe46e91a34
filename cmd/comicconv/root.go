package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	opts := &convertOptions{}

	rootCmd := &cobra.Command{
		Use:   "comicconv [flags] FILES...",
		Short: "Convert images inside comic book archives",
		Long: "comicconv converts the images inside comic book archives (cbz, cbt, " +
			"cb7, cbr) to another image format, either locally or on a remote " +
			"conversion server.",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd.Context(), opts, args)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.format, "format", "f", "", "Target format: avif, webp, jpeg, png, jxl")
	flags.IntVarP(&opts.quality, "quality", "q", -1, "Quality, 0 (worst) to 100 (best)")
	flags.IntVarP(&opts.speed, "speed", "s", -1, "Speed, 0 (slowest) to 10 (fastest); png uses 0-2")
	flags.StringVarP(&opts.archiveKind, "archive", "a", "", "Force archive kind: zip, tar, 7z, rar (default: detect)")
	flags.IntVarP(&opts.threads, "threads", "t", 0, "Worker threads (default: one per CPU)")
	flags.StringVar(&opts.server, "server", "", "Conversion server address for remote offload")
	flags.BoolVar(&opts.quiet, "quiet", false, "Suppress progress output")
	flags.BoolVar(&opts.backup, "backup", false, "Keep a .bak copy of each original file")
	flags.StringVarP(&opts.configPath, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}
