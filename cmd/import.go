// Package cmd — import command.
// This is the main command that orchestrates the pipeline:
// fetch page → build document per post → write file, optionally paging on.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/wpimport/core"
	"github.com/gaurav-prasanna/wpimport/core/document"
	"github.com/gaurav-prasanna/wpimport/core/fetch"
	"github.com/gaurav-prasanna/wpimport/core/output"
	"github.com/gaurav-prasanna/wpimport/core/render"
	"github.com/gaurav-prasanna/wpimport/crawl"
	"github.com/gaurav-prasanna/wpimport/internal/config"
	"github.com/gaurav-prasanna/wpimport/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flag variables.
var (
	flagURL             string
	flagLoop            string
	flagSaveImages      string
	flagConfig          string
	flagOutputDir       string
	flagFormat          string
	flagExt             string
	flagLayout          string
	flagPermalinkPrefix string
	flagFeaturedImage   string
	flagLogLevel        string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import posts from a WordPress REST endpoint",
	Long: `Import fetches a page of posts (with embedded media and terms), rewrites
each post's markup, and writes <date>-<slug>.<ext> into the output directory.

The URL must carry numeric page and per_page query params.

Examples:
  wpimport import --url="https://www.domain.com/wp-json/wp/v2/posts?page=1&per_page=10"
  wpimport import --url="https://www.domain.com/wp-json/wp/v2/posts?page=1&per_page=100" --loop=true
  wpimport import --config wpimport.yaml --format markdown --output_dir ./content/posts`,
	Args: cobra.NoArgs,
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	// Flags are spelled with "_"; "--save-images" and other "-" spellings
	// resolve to the same flag.
	importCmd.Flags().SetNormalizeFunc(underscoreFlags)

	importCmd.Flags().StringVar(&flagURL, "url", "", "Posts endpoint URL with page and per_page query params (required)")
	importCmd.Flags().StringVar(&flagLoop, "loop", "", `Fetch every following page too ("true" to enable)`)
	importCmd.Flags().StringVar(&flagSaveImages, "save_images", "", `Reserved for image archival ("true" to enable, currently a no-op)`)
	importCmd.Flags().StringVar(&flagConfig, "config", "", "YAML config file")

	// Output flags.
	importCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: src/blog)")
	importCmd.Flags().StringVar(&flagFormat, "format", "", "Body format: html or markdown (default: html)")
	importCmd.Flags().StringVar(&flagExt, "ext", "", "Template extension for html output (default: .njk)")
	importCmd.Flags().StringVar(&flagLayout, "layout", "", "Front matter layout (default: post.njk)")
	importCmd.Flags().StringVar(&flagPermalinkPrefix, "permalink_prefix", "", "Permalink prefix (default: blog/)")
	importCmd.Flags().StringVar(&flagFeaturedImage, "featured_image", "", "Posts without a featured image: abort, skip or omit (default: abort)")

	importCmd.Flags().StringVar(&flagLogLevel, "log_level", "", "Log level: debug, info, warn, error (default: info)")
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	log := logger.NewLogger(cfg.Logging.Level)
	log.Debug("resolved configuration", "config", cfg.String())
	summary, err := importPosts(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}

	if summary.Failed > 0 {
		log.Warn("some files could not be written", "failed", summary.Failed, "written", summary.Written)
	}
	return nil
}

// resolveConfig layers the config file (if any) and the flags that were
// set, then validates the result.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if flagConfig != "" {
		loaded, err := config.LoadConfig(flagConfig)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	override := func(name string, dst *string, value string) {
		if flags.Changed(name) {
			*dst = value
		}
	}
	override("url", &cfg.URL, flagURL)
	override("output_dir", &cfg.Output.Dir, flagOutputDir)
	override("format", &cfg.Output.Format, flagFormat)
	override("ext", &cfg.Output.Extension, flagExt)
	override("layout", &cfg.Output.Layout, flagLayout)
	override("permalink_prefix", &cfg.Output.PermalinkPrefix, flagPermalinkPrefix)
	override("featured_image", &cfg.FeaturedImage, strings.ToLower(flagFeaturedImage))
	override("log_level", &cfg.Logging.Level, strings.ToLower(flagLogLevel))
	if flags.Changed("loop") {
		cfg.Loop = isTrue(flagLoop)
	}
	if flags.Changed("save_images") {
		cfg.SaveImages = isTrue(flagSaveImages)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func underscoreFlags(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "-", "_"))
}

// isTrue reports whether a flag value spells "true", ignoring case.
func isTrue(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), "true")
}

// Summary counts what an import did.
type Summary struct {
	crawl.Stats
	Skipped int
	Written int
	Failed  int
}

// importPosts runs the whole pipeline for cfg. Configuration problems are
// reported before any request is made. Fetch and transform errors abort
// the run; write errors are logged and counted.
func importPosts(ctx context.Context, cfg *config.Config, log *logger.Logger) (Summary, error) {
	var summary Summary
	if ctx == nil {
		ctx = context.Background()
	}

	start, err := crawl.ParsePageURL(cfg.URL)
	if err != nil {
		return summary, err
	}

	renderer, err := render.New(cfg.Output.Format, cfg.Output.Extension, start.Origin())
	if err != nil {
		return summary, err
	}

	policy, err := document.ParseFeaturedImagePolicy(cfg.FeaturedImage)
	if err != nil {
		return summary, err
	}

	writer, err := output.New(cfg.Output.Dir)
	if err != nil {
		return summary, fmt.Errorf("initializing output writer: %w", err)
	}

	builder := document.NewBuilder(renderer, document.Options{
		PermalinkPrefix: cfg.Output.PermalinkPrefix,
		Layout:          cfg.Output.Layout,
		FeaturedImage:   policy,
	})
	fetcher := fetch.New(fetch.WithTimeout(cfg.Timeout()), fetch.WithUserAgent(cfg.Fetch.UserAgent))

	sink := output.NewAsync(writer, cfg.Output.WriteConcurrency, func(r output.Result) {
		if r.Err != nil {
			log.Error("write failed", "file", r.Name, "error", r.Err)
			return
		}
		log.Info("saved", "path", r.Path)
	})

	if cfg.SaveImages {
		log.Info("image saving is not implemented yet; images are left on the source site")
	}
	log.Info("importing posts", "url", start.String(), "loop", cfg.Loop, "output_dir", writer.OutputDir)

	var skipped int
	visit := func(page *core.PostPage, post core.RawPost) error {
		postLog := log.With("page", page.Page, "post", post.Slug)
		postLog.Debug("processing", "date", document.DateOnly(post.Date))

		doc, err := builder.Build(post)
		if err != nil {
			var te *document.TransformError
			if errors.As(err, &te) && te.Skip {
				postLog.Warn("skipping post", "error", te.Err)
				skipped++
				return nil
			}
			return fmt.Errorf("transform: %w", err)
		}

		sink.Submit(doc)
		return nil
	}

	stats, walkErr := crawl.Walk(ctx, start, fetcher, cfg.Loop, visit)

	// Pending writes finish even when the walk failed.
	written, failed := sink.Wait()
	summary = Summary{Stats: stats, Skipped: skipped, Written: written, Failed: failed}

	if walkErr != nil {
		log.Error("import aborted", "error", walkErr, "pages", stats.Pages, "written", written)
		return summary, walkErr
	}

	log.Info("import finished",
		"pages", stats.Pages,
		"posts", stats.Posts,
		"duplicates", stats.Duplicates,
		"skipped", summary.Skipped,
		"written", written,
		"failed", failed,
	)
	return summary, nil
}
