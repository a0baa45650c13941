// Package app wires the parser core, plugin registry, and adapters
// into the operations the CLI and HTTP API expose.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/artpar/authorkit/adapters/metrics"
	"github.com/artpar/authorkit/adapters/store"
	"github.com/artpar/authorkit/core/document"
	"github.com/artpar/authorkit/core/parser"
	"github.com/artpar/authorkit/core/plugin"
)

// Options configures a Service. Registry, Metrics, and Store are
// optional; a nil Registry gets a fresh empty one.
type Options struct {
	Logger   zerolog.Logger
	Registry *plugin.Registry
	Metrics  *metrics.Collector
	Store    *store.Store
}

// Service exposes parse, validate, render, and persistence operations
// over one shared plugin registry.
type Service struct {
	logger   zerolog.Logger
	registry *plugin.Registry
	pipeline *plugin.Pipeline
	engine   *parser.Engine
	metrics  *metrics.Collector
	docs     *store.Store
}

// New creates a service.
func New(opts Options) *Service {
	reg := opts.Registry
	if reg == nil {
		reg = plugin.NewRegistry(opts.Logger)
	}
	pipe := plugin.NewPipeline(reg)
	return &Service{
		logger:   opts.Logger,
		registry: reg,
		pipeline: pipe,
		engine:   parser.New(pipe, opts.Logger),
		metrics:  opts.Metrics,
		docs:     opts.Store,
	}
}

// Registry returns the shared plugin registry.
func (s *Service) Registry() *plugin.Registry {
	return s.registry
}

// Parse runs the full parse cycle over author-file text.
func (s *Service) Parse(text string) (document.Document, error) {
	start := time.Now()
	doc, err := s.engine.Parse(text)
	elapsed := time.Since(start)

	if s.metrics != nil {
		s.metrics.ParseDuration.Observe(elapsed.Seconds())
		status := "ok"
		if err != nil {
			status = "error"
			s.metrics.ObservePluginError(err)
		}
		s.metrics.ParsesTotal.WithLabelValues(status).Inc()
	}
	if err != nil {
		s.logger.Debug().Err(err).Msg("parse failed")
		return nil, err
	}
	s.logger.Debug().Dur("elapsed", elapsed).Int("keys", len(doc)).Msg("parsed")
	return doc, nil
}

// ParseFile parses the author file at path.
func (s *Service) ParseFile(path string) (document.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return s.Parse(string(data))
}

// Validate runs every registered validator over the document and
// returns the accumulated warnings.
func (s *Service) Validate(doc document.Document) ([]string, error) {
	warnings, err := s.pipeline.Validate(doc)
	if err != nil {
		if s.metrics != nil {
			s.metrics.ObservePluginError(err)
		}
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ValidationWarnings.Add(float64(len(warnings)))
	}
	return warnings, nil
}

// Render formats the document with the formatter registered for the
// requested format tag.
func (s *Service) Render(doc document.Document, format string, opts any) (string, error) {
	out, err := s.pipeline.Format(doc, format, opts)
	if s.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
			s.metrics.ObservePluginError(err)
		}
		s.metrics.RendersTotal.WithLabelValues(format, status).Inc()
	}
	return out, err
}

// Formats returns the registered output format tags.
func (s *Service) Formats() []string {
	return s.registry.Formats()
}

// ParseAndStore parses source and persists the result under name.
// It requires a configured store.
func (s *Service) ParseAndStore(ctx context.Context, name, source string) (*store.Record, error) {
	if s.docs == nil {
		return nil, fmt.Errorf("no document store configured")
	}
	doc, err := s.Parse(source)
	if err != nil {
		return nil, err
	}
	rec, err := s.docs.Save(ctx, name, source, doc)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.DocumentsStored.Inc()
	}
	s.logger.Info().Str("id", rec.ID).Str("name", name).Msg("document stored")
	return rec, nil
}

// Store returns the configured document store, or nil.
func (s *Service) Store() *store.Store {
	return s.docs
}
