// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"mitabmerge/internal/appcore"
	"mitabmerge/internal/cliutil"
	"mitabmerge/internal/cmdutil"
	"mitabmerge/internal/config"
	"mitabmerge/internal/input"
	"mitabmerge/internal/merge"
	"mitabmerge/internal/version"
)

type flags struct {
	output        string
	namespaces    []string
	skipMalformed bool
	report        string
	configPath    string
	envFile       string
	quiet         bool
	verbose       bool
}

// NewCommand builds the mitab-merge root command. The exit code of a
// completed run is stored in *code; RunE only returns usage errors.
func NewCommand(stdin io.Reader, stdout, stderr io.Writer, code *int) *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "mitab-merge [flags] INPUT...",
		Short: "Merge MITAB files, dropping duplicate interactions",
		Long: `mitab-merge concatenates MITAB files into one, keeping only the first line
seen for each interaction. Two lines describe the same interaction when their
interactor identifiers (with namespace prefixes such as "uniprotkb:" removed,
in either order) and all remaining columns are equal.

Kept lines are written exactly as read. INPUT may be a file, a glob, '-' for
standard input, or s3://bucket/key. gzip, zstd and lz4 inputs are decoded.`,
		Example: `  mitab-merge intact.mitab biogrid.mitab
  mitab-merge -o all.mitab.gz 'data/*.mitab.gz'
  mitab-merge -n uniprotkb -n intact --report report.json a.mitab b.mitab
  zcat a.mitab.gz | mitab-merge -o - - b.mitab > merged.mitab`,
		Version:       version.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmdutil.Usagef("at least one input file is required")
			}
			inputs, err := cliutil.ExpandPositionals(args)
			if err != nil {
				return cmdutil.Usagef("%v", err)
			}
			cfg, err := resolveConfig(cmd, &f)
			if err != nil {
				return cmdutil.Usagef("%v", err)
			}
			log, err := cmdutil.NewLogger(stderr, cfg.LogLevel, f.quiet, f.verbose)
			if err != nil {
				return cmdutil.Usagef("%v", err)
			}
			defer func() { _ = log.Sync() }()

			policy := merge.Strict
			if cfg.SkipMalformed {
				policy = merge.SkipMalformed
			}
			*code = appcore.Run(cmd.Context(), stdout, stderr, log, appcore.Options{
				Inputs:     inputs,
				Stdin:      stdin,
				Output:     cfg.Output,
				Namespaces: cfg.Namespaces,
				Policy:     policy,
				Report:     cfg.Report,
				S3: input.S3Config{
					Endpoint:     cfg.S3.Endpoint,
					Region:       cfg.S3.Region,
					AccessKey:    cfg.S3.AccessKey,
					SecretKey:    cfg.S3.SecretKey,
					SessionToken: cfg.S3.SessionToken,
					Insecure:     cfg.S3.Insecure,
				},
			})
			return nil
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f.bind(cmd)
	return cmd
}

func (f *flags) bind(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.SortFlags = false
	fl.StringVarP(&f.output, "output", "o", "", "output file, '-' for stdout (.gz/.zst/.lz4 compress) [merged.mitab]")
	fl.StringSliceVarP(&f.namespaces, "namespace", "n", nil, "identifier namespace to strip (repeatable, '*' for any) [uniprotkb]")
	fl.BoolVar(&f.skipMalformed, "skip-malformed", false, "warn and skip lines with fewer than two columns instead of aborting")
	fl.StringVar(&f.report, "report", "", "write a JSON run report to this file ('-' for stderr)")
	fl.StringVar(&f.configPath, "config", "", "YAML config file [./"+config.DefaultPath+" if present]")
	fl.StringVar(&f.envFile, "env-file", "", "dotenv file with MITAB_MERGE_* and AWS_* settings")
	fl.BoolVarP(&f.quiet, "quiet", "q", false, "only log errors")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "log per-source progress")
}

// resolveConfig layers defaults, config file, environment and flags.
func resolveConfig(cmd *cobra.Command, f *flags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if f.configPath != "" {
		cfg, err = config.LoadFile(f.configPath)
	} else {
		cfg, err = config.Load(config.DefaultPath)
	}
	if err != nil {
		return nil, err
	}
	env, err := config.Environ(f.envFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(env); err != nil {
		return nil, err
	}

	fl := cmd.Flags()
	if fl.Changed("output") {
		cfg.Output = f.output
	}
	if fl.Changed("namespace") {
		cfg.Namespaces = f.namespaces
	}
	if fl.Changed("skip-malformed") {
		cfg.SkipMalformed = f.skipMalformed
	}
	if fl.Changed("report") {
		cfg.Report = f.report
	}
	return cfg, cfg.Validate()
}

// RunIO parses argv and runs the merge with explicit standard streams.
func RunIO(parent context.Context, argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	code := cmdutil.ExitOK
	cmd := NewCommand(stdin, stdout, stderr, &code)
	cmd.SetArgs(argv)
	if err := cmd.ExecuteContext(parent); err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		_, _ = fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", cmd.Name())
		return cmdutil.ExitUsage
	}
	return code
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	return RunIO(parent, argv, os.Stdin, stdout, stderr)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
