package merge

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"mitabmerge/internal/dedup"
	"mitabmerge/internal/mitab"
)

// Policy decides what happens to a line without both interactor columns.
type Policy int

const (
	// Strict aborts the run on the first malformed line.
	Strict Policy = iota
	// SkipMalformed logs a warning, counts the line as skipped and goes on.
	SkipMalformed
)

func (p Policy) String() string {
	switch p {
	case Strict:
		return "strict"
	case SkipMalformed:
		return "skip"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// Config holds merger settings. The zero value strips "uniprotkb:" prefixes,
// aborts on malformed lines and logs nothing.
type Config struct {
	Namespaces []string
	Policy     Policy
	Logger     *zap.Logger
}

// Merger deduplicates MITAB lines across sources.
type Merger struct {
	norm   *mitab.Normalizer
	policy Policy
	log    *zap.Logger
}

func New(cfg Config) *Merger {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Merger{
		norm:   mitab.NewNormalizer(cfg.Namespaces...),
		policy: cfg.Policy,
		log:    log,
	}
}

// Namespaces lists the identifier prefixes this merger strips.
func (m *Merger) Namespaces() []string { return m.norm.Namespaces() }

// Merge writes every first-seen line of sources to out, in order, and
// returns what it did. On error the lines written so far stay in out and
// the returned Stats cover the work done up to the failure.
func (m *Merger) Merge(ctx context.Context, sources []Source, out io.Writer) (Stats, error) {
	var st Stats
	idx := dedup.NewIndex()
	lw := &lineWriter{w: out}

	for _, src := range sources {
		ss, err := m.mergeSource(ctx, idx, src, lw)
		st.add(ss)
		if err != nil {
			st.Identifiers, st.Pairs = idx.Identifiers(), idx.Pairs()
			return st, err
		}
	}
	st.Identifiers, st.Pairs = idx.Identifiers(), idx.Pairs()
	return st, nil
}

func (m *Merger) mergeSource(ctx context.Context, idx *dedup.Index, src Source, lw *lineWriter) (SourceStats, error) {
	ss := SourceStats{Name: src.Name()}
	log := m.log.With(zap.String("source", ss.Name))
	log.Debug("opening source")

	rc, err := src.Open(ctx)
	if err != nil {
		return ss, fmt.Errorf("%s: %w", ss.Name, err)
	}
	defer func() { _ = rc.Close() }()

	br := bufio.NewReaderSize(rc, 64<<10)
	for {
		if err := ctx.Err(); err != nil {
			return ss, err
		}
		line, rerr := br.ReadString('\n')
		if len(line) > 0 {
			ss.Read++
			if err := m.mergeLine(idx, line, lw, &ss, log); err != nil {
				return ss, err
			}
		}
		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			return ss, fmt.Errorf("%s: read: %w", ss.Name, rerr)
		}
	}

	log.Debug("source done",
		zap.Int("read", ss.Read),
		zap.Int("written", ss.Written),
		zap.Int("duplicates", ss.Duplicates),
		zap.Int("skipped", ss.Skipped),
	)
	return ss, nil
}

func (m *Merger) mergeLine(idx *dedup.Index, line string, lw *lineWriter, ss *SourceStats, log *zap.Logger) error {
	rec, err := mitab.Parse(line)
	if err != nil {
		var me *mitab.MalformedRecordError
		if errors.As(err, &me) {
			me.Source, me.Line = ss.Name, ss.Read
		}
		if m.policy == SkipMalformed {
			log.Warn("skipping malformed record", zap.Int("line", ss.Read), zap.Error(err))
			ss.Skipped++
			return nil
		}
		return err
	}

	id1 := m.norm.Normalize(rec.Fields[0])
	id2 := m.norm.Normalize(rec.Fields[1])
	fp := dedup.Fingerprint(mitab.CanonicalKey(id1, id2, rec.Fields[2:]))

	idx.Ensure(id1, id2)
	if idx.Contains(id1, id2, fp) {
		ss.Duplicates++
		return nil
	}
	if err := lw.WriteLine(rec.Raw, rec.Terminated); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	idx.Insert(id1, id2, fp)
	ss.Written++
	return nil
}

// lineWriter writes lines verbatim. A line read without a terminator (the
// last line of a file) gets a "\n" only if another line follows it.
type lineWriter struct {
	w    io.Writer
	open bool
}

func (lw *lineWriter) WriteLine(raw string, terminated bool) error {
	if lw.open {
		if _, err := io.WriteString(lw.w, "\n"); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(lw.w, raw); err != nil {
		return err
	}
	lw.open = !terminated
	return nil
}
