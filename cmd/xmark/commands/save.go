package commands

import (
	"context"
	"fmt"
	"net/url"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/xmark/internal/browser"
	"github.com/jmylchreest/xmark/internal/extract"
	"github.com/jmylchreest/xmark/internal/logger"
	"github.com/jmylchreest/xmark/internal/naming"
	"github.com/jmylchreest/xmark/internal/output"
	"github.com/jmylchreest/xmark/internal/render"
)

var saveCmd = &cobra.Command{
	Use:   "save <url>",
	Short: "Extract a post or article and save it as markdown",
	Long: `Save loads the given X.com URL in a headless browser, extracts the
readable content and writes a markdown document into the output
directory. The directory must already exist.

Examples:
  xmark save "https://x.com/someone/status/2011738838767423983"
  xmark save -d ~/notes/clips "https://x.com/someone/status/123"`,
	Args: cobra.ExactArgs(1),
	RunE: runSave,
}

func init() {
	rootCmd.AddCommand(saveCmd)

	flags := saveCmd.Flags()
	flags.StringP("output-dir", "d", output.DefaultDir(), "directory to write the markdown file into")
	flags.Duration("timeout", 30*time.Second, "snapshot capture timeout")
	flags.String("profile", "", "path to a YAML extraction profile")
	flags.String("user-agent", "", "override the browser user agent")
	flags.Bool("show-browser", false, "run with a visible browser window")

	_ = viper.BindPFlag("output_dir", flags.Lookup("output-dir"))
	_ = viper.BindPFlag("user_agent", flags.Lookup("user-agent"))
}

func runSave(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	postURL := args[0]
	if err := validatePostURL(postURL); err != nil {
		logger.Error("invalid URL", "url", postURL, "error", err)
		return err
	}

	profilePath, _ := cmd.Flags().GetString("profile")
	profile := extract.DefaultProfile()
	if profilePath != "" {
		p, err := extract.ProfileFromFile(profilePath)
		if err != nil {
			logger.Error("failed to load profile", "path", profilePath, "error", err)
			return err
		}
		profile = p
		logger.Debug("profile loaded", "path", profilePath)
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	showBrowser, _ := cmd.Flags().GetBool("show-browser")

	fetcher, err := browser.NewFetcher(browser.Config{
		UserAgent:   viper.GetString("user_agent"),
		Timeout:     timeout,
		ShowBrowser: showBrowser,
	})
	if err != nil {
		logger.Error("failed to create snapshot fetcher", "error", err)
		return err
	}
	defer func() { _ = fetcher.Close() }()

	logger.Info("loading page", "url", postURL)
	snap, err := fetcher.Fetch(ctx, postURL)
	if err != nil {
		logger.Error("failed to capture page", "url", postURL, "error", err)
		return err
	}

	result := extract.Extract(snap, profile)
	document := render.Markdown(result, postURL)

	name := naming.Filename(result.Title, result.Handle, postURL)
	writer := output.NewWriter(viper.GetString("output_dir"))
	path, size, err := writer.Write(name, document)
	if err != nil {
		logger.Error("failed to write document", "dir", writer.Dir, "error", err)
		return err
	}

	logger.Info("saved",
		"path", path,
		"size", humanize.Bytes(uint64(size)),
		"items", len(result.Content))
	return nil
}

// validatePostURL checks the URL belongs to X.com (or its former domain).
func validatePostURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse URL: %w", err)
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if host != "x.com" && host != "twitter.com" {
		return fmt.Errorf("URL must be from x.com or twitter.com, got %q", u.Hostname())
	}
	return nil
}
