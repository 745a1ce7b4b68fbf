package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/samvad-hq/httpie/internal/app"
	"github.com/samvad-hq/httpie/internal/config"
	"github.com/samvad-hq/httpie/internal/domain"
	"github.com/samvad-hq/httpie/internal/logger"
	"github.com/samvad-hq/httpie/internal/validate"
	"github.com/spf13/cobra"
)

// flags are the persistent options shared by every subcommand.
type flags struct {
	code            int
	color           string
	timeout         time.Duration
	continueOnError bool
}

// StdStreams returns the process stdio.
func StdStreams() app.Streams {
	return app.Streams{Out: os.Stdout, Err: os.Stderr, In: os.Stdin}
}

// NewRootCommand builds the httpie command tree. cfg supplies defaults that
// flags may override for this invocation only.
func NewRootCommand(cfg *config.Config, log logger.Logger, streams app.Streams) *cobra.Command {
	f := &flags{}
	log = logger.Ensure(log)

	root := &cobra.Command{
		Use:           "httpie",
		Short:         "A CLI HTTP client",
		Version:       config.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(streams.Out)
	root.SetErr(streams.Err)
	root.SetIn(streams.In)

	pf := root.PersistentFlags()
	pf.IntVarP(&f.code, "code", "c", 0, "expected response status; exit 1 on mismatch (0 disables the check)")
	pf.StringVar(&f.color, "color", "", "colorize output: auto, always or never")
	pf.DurationVar(&f.timeout, "timeout", 0, "request timeout (0 means no timeout)")
	pf.BoolVar(&f.continueOnError, "continue-on-error", false, "keep going after a failed request in a batch")

	run := func(cmd *cobra.Command, c domain.Command) error {
		effective, err := resolve(cmd, cfg, f)
		if err != nil {
			return err
		}
		c.ExpectedStatus = f.code

		runner, err := app.Build(effective, streams, log)
		if err != nil {
			return fmt.Errorf("init runner: %w", err)
		}
		log.DebugObj("command parsed", "command", map[string]any{
			"verb":            c.Verb,
			"url":             c.URL,
			"source":          c.Source,
			"pairs":           len(c.Pairs),
			"expected_status": c.ExpectedStatus,
		})
		return runner.Run(cmd.Context(), c)
	}

	root.AddCommand(newGetCommand(run), newPostCommand(run))
	return root
}

func newGetCommand(run func(*cobra.Command, domain.Command) error) *cobra.Command {
	return &cobra.Command{
		Use:   "get <url> [file]",
		Short: "Send a GET request, or one GET per URL listed in file",
		Long: `Send a GET request to url and print the response.

When file is given, url is ignored and every line of file is requested in
order. Blank lines and lines starting with # are skipped. Use @- to read the
list from standard input; - (the default) means no file.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := validate.URL(args[0])
			if err != nil {
				return err
			}
			source := domain.SingleSource
			if len(args) == 2 {
				source = args[1]
			}
			source, err = validate.Source(source)
			if err != nil {
				return err
			}
			return run(cmd, domain.Command{Verb: domain.VerbGet, URL: url, Source: source})
		},
	}
}

func newPostCommand(run func(*cobra.Command, domain.Command) error) *cobra.Command {
	return &cobra.Command{
		Use:   "post <url> <key=value>...",
		Short: "Send a POST request with a JSON object built from key=value pairs",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := validate.URL(args[0])
			if err != nil {
				return err
			}
			pairs, err := validate.KeyValues(args[1:])
			if err != nil {
				return err
			}
			return run(cmd, domain.Command{Verb: domain.VerbPost, URL: url, Source: domain.SingleSource, Pairs: pairs})
		},
	}
}

// resolve applies explicitly set flags on top of a copy of cfg.
func resolve(cmd *cobra.Command, cfg *config.Config, f *flags) (*config.Config, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if f.code < 0 {
		return nil, fmt.Errorf("invalid --code %d (must not be negative)", f.code)
	}

	out := *cfg
	pf := cmd.Flags()
	if pf.Changed("color") {
		out.Color = strings.ToLower(strings.TrimSpace(f.color))
	}
	if pf.Changed("timeout") {
		out.Timeout = f.timeout
	}
	if pf.Changed("continue-on-error") {
		out.BatchPolicy = config.BatchAbort
		if f.continueOnError {
			out.BatchPolicy = config.BatchContinue
		}
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return &out, nil
}
