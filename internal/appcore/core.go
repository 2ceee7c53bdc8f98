// internal/appcore/core.go
package appcore

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"mitabmerge/internal/cmdutil"
	"mitabmerge/internal/input"
	"mitabmerge/internal/merge"
	"mitabmerge/internal/output"
)

type Options struct {
	Inputs []string
	Stdin  io.Reader

	Output     string
	Namespaces []string
	Policy     merge.Policy
	Report     string // "" = none, "-" = stderr

	S3 input.S3Config
}

// Run resolves the inputs, merges them into the output and returns the
// process exit code. Inputs are resolved before the output is created, so a
// missing local input leaves an existing output untouched.
func Run(parent context.Context, stdout, stderr io.Writer, log *zap.Logger, o Options) int {
	if log == nil {
		log = zap.NewNop()
	}
	if len(o.Inputs) == 0 {
		log.Error("at least one input file is required")
		return cmdutil.ExitUsage
	}
	if o.Output == "" {
		o.Output = output.DefaultName
	}

	runID := uuid.NewString()
	log = log.With(zap.String("run", runID))
	m := merge.New(merge.Config{
		Namespaces: o.Namespaces,
		Policy:     o.Policy,
		Logger:     log,
	})
	rep := newReport(runID, o, m.Namespaces())

	res := &input.Resolver{Stdin: o.Stdin, S3: o.S3}
	srcs, err := res.Resolve(o.Inputs)
	if err != nil {
		return finish(log, stderr, o, rep, merge.Stats{}, err)
	}

	sink, err := output.Create(o.Output, stdout)
	if err != nil {
		return finish(log, stderr, o, rep, merge.Stats{}, err)
	}
	rep.Output = sink.Name()

	log.Debug("starting merge",
		zap.Int("sources", len(srcs)),
		zap.String("output", sink.Name()),
		zap.Strings("namespaces", rep.Namespaces),
		zap.Stringer("policy", o.Policy),
	)

	st, err := m.Merge(parent, srcs, sink)

	// Close even on failure: lines already merged must reach the output.
	if cerr := sink.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("%s: %w", sink.Name(), cerr)
	}
	return finish(log, stderr, o, rep, st, err)
}

func finish(log *zap.Logger, stderr io.Writer, o Options, rep *report, st merge.Stats, err error) int {
	rep.fill(st, err)
	code := cmdutil.ExitCode(err)

	if o.Report != "" {
		if werr := rep.write(o.Report, stderr); werr != nil {
			log.Error("cannot write report", zap.String("report", o.Report), zap.Error(werr))
			if code == cmdutil.ExitOK {
				code = cmdutil.ExitFailure
			}
		}
	}

	switch {
	case code == cmdutil.ExitInterrupted:
		log.Warn("interrupted", zap.Int("written", st.Written))
	case err != nil && code != cmdutil.ExitOK:
		log.Error("merge failed", zap.Error(err), zap.Int("written", st.Written))
	default:
		log.Info(fmt.Sprintf("merged %s of %s lines into %s",
			humanize.Comma(int64(st.Written)), humanize.Comma(int64(st.Read)), rep.Output),
			zap.Int("sources", len(st.Sources)),
			zap.Int("duplicates", st.Duplicates),
			zap.Int("skipped", st.Skipped),
			zap.Int("pairs", st.Pairs),
		)
	}
	return code
}
