// Command resolve runs the metadata resolver against a single URL and prints
// the result as JSON. It uses the same configuration as the API server.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"Viralcraft/internal/core/resolver"
)

func main() {
	// Load stops at the first missing file, so each one is tried separately
	for _, file := range []string{".env.local", ".env"} {
		_ = godotenv.Load(file)
	}

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [URL]",
		Short: "Resolve a video page URL into metadata and a direct video link",
		Example: `  # Resolve a Facebook video page
  resolve "https://www.facebook.com/watch?v=123"

  # Skip the external unblocking service and show every attempt
  resolve "https://www.instagram.com/reel/abc/" --no-external --verbose

  # Give slow pages more time
  resolve "https://example.com/clip" --timeout 30s`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         runResolve,
	}

	cmd.Flags().Duration("timeout", 0, "Fetch and external service timeout (default from RESOLVER_* env)")
	cmd.Flags().BoolP("verbose", "v", false, "Log resolution events and print the attempt log to stderr")
	cmd.Flags().Bool("no-external", false, "Disable the external unblocking service")

	return cmd
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg := resolver.ConfigFromEnv()

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout > 0 {
		cfg.FetchTimeout = timeout
		cfg.ExternalTimeout = timeout
	}
	if noExternal, _ := cmd.Flags().GetBool("no-external"); noExternal {
		cfg.ExternalEnabled = false
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	var observer resolver.Observer = resolver.NopObserver{}
	if verbose {
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
		observer = resolver.NewSlogObserver(logger)
	}

	svc, err := resolver.NewServiceFromConfig(cfg, resolver.WithObserver(observer))
	if err != nil {
		return err
	}

	result, err := svc.Resolve(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if verbose {
		printAttempts(cmd.ErrOrStderr(), result)
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("error converting metadata to JSON: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	return err
}

func printAttempts(w io.Writer, result *resolver.MetadataResult) {
	if result.Degraded {
		_, _ = fmt.Fprintln(w, "page could not be fetched; returned fallback metadata")
		return
	}
	if len(result.Attempts) == 0 {
		_, _ = fmt.Fprintln(w, "no extraction strategies ran")
		return
	}

	for i, a := range result.Attempts {
		line := fmt.Sprintf("%2d. %-24s %s", i+1, a.Strategy, a.Outcome)
		switch {
		case a.Err != nil:
			line += "  " + a.Err.Error()
		case a.Value != "":
			line += "  " + a.Value
		}
		_, _ = fmt.Fprintln(w, line)
	}
}
