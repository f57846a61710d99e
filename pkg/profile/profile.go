/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: profile.go
Description: Multi-column profiling. Reads delimited or line-oriented input, runs one
analyzer per column in its own goroutine and collects every column's result into a
Profile tagged with a run ID.
*/

package profile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/kleascm/columnscout/pkg/analyzer"
	"github.com/kleascm/columnscout/pkg/logging"
	"github.com/kleascm/columnscout/pkg/metrics"
	"github.com/kleascm/columnscout/pkg/plugins"
)

// batchSize is the number of cells handed to a column worker at once
const batchSize = 512

// ErrEmptyInput is returned when the input has no header or no records to profile
var ErrEmptyInput = errors.New("empty input")

// ErrUnknownColumn is returned when a requested column is not in the header
var ErrUnknownColumn = errors.New("unknown column")

// Options configures a profile run
type Options struct {
	Delimiter  rune
	Header     bool     // first record names the columns
	Lines      bool     // one value per line, a single column
	Columns    []string // profile only these columns; empty selects all
	NullValues []string // cells equal to one of these are trained as nulls

	Config   *analyzer.Config
	Registry *plugins.Registry
	Reporter metrics.Reporter
	Logger   logrus.FieldLogger
}

// DefaultOptions returns comma separated input with a header row
func DefaultOptions() Options {
	return Options{
		Delimiter: ',',
		Header:    true,
	}
}

func (o Options) withDefaults() Options {
	if o.Delimiter == 0 {
		o.Delimiter = ','
	}
	if o.Config == nil {
		o.Config = analyzer.DefaultConfig()
	}
	if o.Reporter == nil {
		o.Reporter = metrics.NopReporter{}
	}
	if o.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		o.Logger = l
	}
	return o
}

// Profile is the outcome of one run
type Profile struct {
	RunID    string             `json:"run_id"`
	Source   string             `json:"source"`
	Locale   string             `json:"locale"`
	Rows     int64              `json:"rows"`
	Started  time.Time          `json:"started"`
	Duration time.Duration      `json:"duration"`
	Columns  []*analyzer.Result `json:"columns"`
}

// Column returns the result for the named column
func (p *Profile) Column(name string) (*analyzer.Result, bool) {
	for _, r := range p.Columns {
		if r.Name == name {
			return r, true
		}
	}
	return nil, false
}

type cell struct {
	value string
	null  bool
}

// worker trains one column's analyzer from batches of cells
type worker struct {
	index    int
	analyzer *analyzer.Analyzer
	in       chan []cell
}

func (w *worker) run(ctx context.Context, reporter metrics.Reporter) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case batch, ok := <-w.in:
			if !ok {
				return nil
			}
			for _, c := range batch {
				if c.null {
					w.analyzer.TrainNull()
				} else {
					w.analyzer.Train(c.value)
				}
			}
			reporter.OnSamples(w.analyzer.Name(), int64(len(batch)))
		}
	}
}

// File profiles the file at path
func File(ctx context.Context, path string, opts Options) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()
	return Run(ctx, path, f, opts)
}

// Run profiles every selected column of r. source names the input in the result and
// in log entries.
func Run(ctx context.Context, source string, r io.Reader, opts Options) (*Profile, error) {
	opts = opts.withDefaults()
	started := time.Now()
	runID := uuid.NewString()
	logger := opts.Logger.WithField("run_id", runID)

	records := newRecordReader(r, opts)
	header, first, err := readHeader(records, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	selected, err := selectColumns(header, opts.Columns)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	workers := make([]*worker, len(selected))
	for i, idx := range selected {
		a, err := newAnalyzer(header[idx], opts, logger)
		if err != nil {
			return nil, err
		}
		workers[i] = &worker{index: idx, analyzer: a, in: make(chan []cell, 4)}
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, w := range workers {
		g.Go(func() error { return w.run(gctx, opts.Reporter) })
	}

	var rows int64
	g.Go(func() error {
		defer func() {
			for _, w := range workers {
				close(w.in)
			}
		}()
		p := &producer{ctx: gctx, workers: workers, nulls: opts.NullValues}
		if first != nil {
			if err := p.add(first); err != nil {
				return err
			}
		}
		for {
			record, err := records.Read()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", source, err)
			}
			if err := p.add(record); err != nil {
				return err
			}
		}
		rows = p.rows
		return p.flush()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	p := &Profile{
		RunID:    runID,
		Source:   source,
		Locale:   opts.Config.Locale,
		Rows:     rows,
		Started:  started,
		Duration: time.Since(started),
		Columns:  make([]*analyzer.Result, len(workers)),
	}
	for i, w := range workers {
		p.Columns[i] = w.analyzer.Result()
	}
	logging.LogProfile(logger, runID, source, len(p.Columns), rows, p.Duration)
	return p, nil
}

func newAnalyzer(name string, opts Options, logger logrus.FieldLogger) (*analyzer.Analyzer, error) {
	a, err := analyzer.New(name, opts.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to create analyzer for column %q: %w", name, err)
	}
	if opts.Registry != nil {
		if err := a.SetRegistry(opts.Registry); err != nil {
			return nil, err
		}
	}
	a.SetReporter(opts.Reporter)
	a.SetLogger(logger)
	return a, nil
}

// producer splits records into per-column batches
type producer struct {
	ctx     context.Context
	workers []*worker
	batches [][]cell
	nulls   []string
	rows    int64
}

func (p *producer) add(record []string) error {
	if err := p.ctx.Err(); err != nil {
		return err
	}
	if p.batches == nil {
		p.batches = make([][]cell, len(p.workers))
	}
	p.rows++
	for i, w := range p.workers {
		c := cell{null: true}
		if w.index < len(record) && !slices.Contains(p.nulls, record[w.index]) {
			c = cell{value: record[w.index]}
		}
		p.batches[i] = append(p.batches[i], c)
	}
	if len(p.workers) > 0 && len(p.batches[0]) >= batchSize {
		return p.flush()
	}
	return nil
}

func (p *producer) flush() error {
	if p.batches == nil {
		return nil
	}
	for i, w := range p.workers {
		if len(p.batches[i]) == 0 {
			continue
		}
		select {
		case <-p.ctx.Done():
			return p.ctx.Err()
		case w.in <- p.batches[i]:
		}
		p.batches[i] = make([]cell, 0, batchSize)
	}
	return nil
}

// selectColumns maps requested names to header indexes, in header order
func selectColumns(header, wanted []string) ([]int, error) {
	if len(wanted) == 0 {
		all := make([]int, len(header))
		for i := range header {
			all[i] = i
		}
		return all, nil
	}
	for _, name := range wanted {
		if !slices.Contains(header, name) {
			return nil, fmt.Errorf("%w %q", ErrUnknownColumn, name)
		}
	}
	var selected []int
	for i, name := range header {
		if slices.Contains(wanted, name) {
			selected = append(selected, i)
		}
	}
	return selected, nil
}
