//
// Package engine chains the cleaner, locator, identifier normaliser,
// assembler and scorer into the single pass that turns a raw sheet grid
// into an outcome report.
//
package engine

import (
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"

	"github.com/HammadMal/STRP-1/internal/grid"
	"github.com/HammadMal/STRP-1/internal/identity"
	"github.com/HammadMal/STRP-1/internal/locate"
	"github.com/HammadMal/STRP-1/internal/outcome"
	"github.com/HammadMal/STRP-1/internal/report"
)

//
// Logger is the subset of the gommon / echo logger the engine needs.
//
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// Config tunes one Engine.
type Config struct {
	Clean       grid.CleanOptions
	Locate      locate.Options
	EmailDomain string
	Logger      Logger
}

// DefaultConfig returns the settings the tool ships with.
func DefaultConfig() Config {
	return Config{
		Clean:       grid.DefaultCleanOptions(),
		Locate:      locate.DefaultOptions(),
		EmailDomain: identity.DefaultDomain,
	}
}

//
// Engine holds configuration only, so one Engine can process many
// sheets concurrently.
//
type Engine struct {
	cfg Config
	ids *identity.Normalizer
	log Logger
}

// New returns an Engine; a nil Logger gets a gommon logger.
func New(cfg Config) *Engine {
	lg := cfg.Logger
	if lg == nil {
		l := log.New("engine")
		l.SetLevel(log.INFO)
		lg = l
	}
	return &Engine{
		cfg: cfg,
		ids: identity.New(cfg.EmailDomain),
		log: lg,
	}
}

// Extraction is the assembled result of one sheet and where it was found.
type Extraction struct {
	Source string          `json:"source,omitempty"`
	Layout locate.Layout   `json:"layout"`
	Result *outcome.Result `json:"result"`
}

// Run is a fully scored sheet.
type Run struct {
	Source string        `json:"source,omitempty"`
	Layout locate.Layout `json:"layout"`
	*report.Report
}

//
// Extract cleans raw, locates its structure and normalises student ids.
// source names the sheet in errors and log lines. Failures keep their
// type: grid.ErrEmpty, locate.ErrAnchorNotFound,
// locate.ErrLayoutTruncated or *identity.ValidationError.
//
func (e *Engine) Extract(raw grid.Grid, source string) (*Extraction, error) {
	if raw.Rows() == 0 || raw.Cols() == 0 {
		return nil, errors.Wrapf(grid.ErrEmpty, "%s", source)
	}

	g := grid.Clean(raw, e.cfg.Clean)
	if g.Rows() == 0 {
		return nil, errors.Wrapf(grid.ErrEmpty, "%s: nothing left after cleaning", source)
	}

	x, err := locate.Locate(g, e.cfg.Locate)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", source)
	}
	for _, w := range x.Warnings {
		e.log.Warnf("%s: skipped %s", source, w)
	}

	students, err := e.ids.Normalize(x.Students)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", source)
	}

	e.log.Infof("%s: %d CLOs, %d assessments, %d students", source, len(x.CLOs), len(x.Assessments), len(students))
	return &Extraction{
		Source: source,
		Layout: x.Layout,
		Result: outcome.Assemble(x.CLOs, x.Assessments, students, x.Warnings),
	}, nil
}

// Process extracts raw and scores every student.
func (e *Engine) Process(raw grid.Grid, source string) (*Run, error) {
	x, err := e.Extract(raw, source)
	if err != nil {
		return nil, err
	}
	return &Run{
		Source: x.Source,
		Layout: x.Layout,
		Report: report.Build(x.Result),
	}, nil
}
