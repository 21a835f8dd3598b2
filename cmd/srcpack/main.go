package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quantmind-br/srcpack-go/internal/config"
	"github.com/quantmind-br/srcpack-go/internal/domain"
	"github.com/quantmind-br/srcpack-go/internal/ignore"
	"github.com/quantmind-br/srcpack-go/internal/packager"
	"github.com/quantmind-br/srcpack-go/internal/utils"
	"github.com/quantmind-br/srcpack-go/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	patternFile string
	listPresets bool
	verbose     bool
	log         *utils.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "srcpack [source-dir] [output.zip]",
	Short: "Package a source tree into a zip archive",
	Long: `Srcpack packages a source tree into a compressed archive while
excluding build artifacts, dependency caches, and anything matched by
per-directory .gitignore files.

Exclusions come from a named preset or a custom pattern file, layered
with the .gitignore files discovered during traversal. Comments can
optionally be stripped from supported source files before archiving.`,
	Version: version.Short(),
	Args:    cobra.MaximumNArgs(2),
	RunE:    run,
}

func init() {
	rootCmd.PersistentFlags().StringP("preset", "p", config.DefaultPreset,
		"Exclusion preset (basic, git-friendly, complete, lightweight)")
	rootCmd.PersistentFlags().StringVarP(&patternFile, "config", "c", "",
		"Custom exclusion pattern file (replaces preset patterns)")
	rootCmd.PersistentFlags().BoolP("remove-comments", "r", false,
		"Strip comments from supported source files")
	rootCmd.PersistentFlags().String("compression", config.DefaultCompression,
		"Compression method (deflate, zstd, store)")
	rootCmd.PersistentFlags().Bool("no-progress", false, "Disable the progress spinner")
	rootCmd.PersistentFlags().BoolVarP(&listPresets, "list-presets", "l", false,
		"List available presets and exit")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("preset", rootCmd.PersistentFlags().Lookup("preset"))
	_ = viper.BindPFlag("compression", rootCmd.PersistentFlags().Lookup("compression"))
	_ = viper.BindPFlag("remove_comments", rootCmd.PersistentFlags().Lookup("remove-comments"))

	rootCmd.AddCommand(versionCmd)
}

func run(cmd *cobra.Command, args []string) error {
	logLevel := "info"
	if verbose {
		logLevel = "debug"
	}
	log = utils.NewLogger(utils.LoggerOptions{
		Level:   logLevel,
		Format:  "pretty",
		Verbose: verbose,
	})

	if listPresets {
		printPresets()
		return nil
	}

	if len(args) == 0 {
		return cmd.Help()
	}
	if len(args) != 2 {
		return fmt.Errorf("both a source directory and an output archive path are required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if patternFile != "" {
		cfg.PatternFile = patternFile
	}

	preset, err := config.GetPreset(cfg.Preset)
	if err != nil {
		return err
	}

	// Custom pattern file replaces the preset's default patterns; the
	// preset's .git policy still applies.
	var global *ignore.RuleSet
	if cfg.PatternFile != "" {
		global, err = ignore.LoadFile(utils.ExpandPath(cfg.PatternFile))
		if err != nil {
			return err
		}
	} else {
		global = ignore.FromLines("", preset.Patterns)
	}

	source, err := utils.ValidateSourceDir(args[0])
	if err != nil {
		return err
	}

	dest := args[1]
	if err := utils.EnsureParentDir(dest); err != nil {
		return domain.NewArchiveError(dest, err)
	}

	noProgress, _ := cmd.Flags().GetBool("no-progress")

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Info().Msg("Shutting down gracefully...")
		cancel()
	}()

	log.Info().
		Str("source", source).
		Str("dest", dest).
		Str("preset", preset.Name).
		Str("compression", cfg.Compression).
		Bool("remove_comments", cfg.RemoveComments).
		Msg("Packing")

	p := packager.New(packager.Options{
		Global:         global,
		KeepGitDir:     preset.KeepGitDir,
		ArchivePath:    dest,
		Compression:    cfg.Compression,
		RemoveComments: cfg.RemoveComments,
		Progress:       cfg.Output.Progress && !noProgress && !verbose,
		Logger:         log,
	})

	stats, err := p.Run(ctx, source)
	if err != nil {
		return err
	}

	printReport(stats, dest, cfg.RemoveComments)
	return nil
}

func printPresets() {
	fmt.Println("Available presets:")
	for _, p := range config.Presets() {
		git := "excluded"
		if p.KeepGitDir {
			git = "kept"
		}
		fmt.Printf("  %-13s %s (.git %s, %d patterns)\n",
			p.Name, p.Description, git, len(p.Patterns))
	}
}

func printReport(stats *domain.Statistics, dest string, removeComments bool) {
	log.Info().
		Int("total_files", stats.TotalFiles).
		Int("included", stats.IncludedFiles).
		Int("excluded_files", stats.ExcludedFiles).
		Int("excluded_dirs", stats.ExcludedDirs).
		Msg("Traversal finished")

	log.Info().
		Str("original", utils.FormatSize(stats.TotalSize)).
		Str("compressed", utils.FormatSize(stats.CompressedSize)).
		Str("ratio", fmt.Sprintf("%.1f%%", stats.CompressionRatio())).
		Msg("Archive size")

	if removeComments {
		log.Info().Int("files", stats.CommentsRemoved).Msg("Comments removed")
	}
	if stats.Warnings > 0 {
		log.Warn().Int("warnings", stats.Warnings).Msg("Some entries could not be read")
	}

	log.Info().
		Str("output", dest).
		Str("elapsed", stats.Elapsed.Round(time.Millisecond).String()).
		Msg("Packing completed")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Full())
	},
}
