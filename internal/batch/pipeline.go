// Package batch runs documents through analysis, categorization, and
// indexing concurrently. A worker pool bounds parallelism and a rate
// limiter throttles document intake.
package batch

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/docmind/internal/core/domain"
	"github.com/custodia-labs/docmind/internal/core/ports/driving"
	"github.com/custodia-labs/docmind/internal/logger"
	"github.com/custodia-labs/docmind/internal/normalise"
)

// Document is one unit of batch work.
type Document struct {
	// ID is the external document identity.
	ID string

	// Title is the display title used for indexing.
	Title string

	// Filename is the original file name, used as a classification hint.
	Filename string

	// MimeType is the declared content type.
	MimeType string

	// Content is the raw document text.
	Content []byte

	// Metadata is passed through to the index entry.
	Metadata map[string]any
}

// Result is the outcome for one document.
type Result struct {
	// DocumentID identifies the document.
	DocumentID string

	// Analysis is the analysis result, nil when Err is set.
	Analysis *domain.AnalysisResult

	// Suggestion is the category suggestion, nil when Err is set.
	Suggestion *domain.CategorySuggestion

	// Err is the first error encountered for this document.
	Err error
}

// Report summarises a completed batch.
type Report struct {
	// Results holds one entry per input document, input order preserved.
	Results []Result

	// Processed counts documents that completed without error.
	Processed int

	// Failed counts documents that errored.
	Failed int
}

// Pipeline processes document batches.
type Pipeline struct {
	analyzer    driving.Analyzer
	categorizer driving.Categorizer
	search      driving.SearchService
	pool        *ants.Pool
	limiter     *rate.Limiter
	registry    *normalise.Registry
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithRateLimit throttles document intake to the given documents per
// second. Zero or negative disables throttling.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(p *Pipeline) error {
		if perSecond <= 0 {
			p.limiter = nil
			return nil
		}
		if burst < 1 {
			burst = 1
		}
		p.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
		return nil
	}
}

// WithNormalisers converts document content to plain text before
// analysis using the given registry. Documents with no matching
// normaliser pass through unchanged.
func WithNormalisers(r *normalise.Registry) Option {
	return func(p *Pipeline) error {
		p.registry = r
		return nil
	}
}

// NewPipeline creates a batch pipeline. The search service is optional;
// when nil, documents are analyzed and categorized but not indexed.
func NewPipeline(analyzer driving.Analyzer, categorizer driving.Categorizer, search driving.SearchService, opts ...Option) (*Pipeline, error) {
	if analyzer == nil {
		return nil, fmt.Errorf("new pipeline: analyzer: %w", domain.ErrInvalidInput)
	}
	if categorizer == nil {
		return nil, fmt.Errorf("new pipeline: categorizer: %w", domain.ErrInvalidInput)
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, fmt.Errorf("new pipeline: %w", err)
	}

	p := &Pipeline{
		analyzer:    analyzer,
		categorizer: categorizer,
		search:      search,
		pool:        pool,
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Release frees the worker pool.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

// Process runs every document through the pipeline and waits for the
// batch to finish. One document's failure never aborts the others;
// cancellation stops intake and fails the remaining documents.
func (p *Pipeline) Process(ctx context.Context, docs []Document) (*Report, error) {
	logger.Section("Batch Processing")
	logger.Info("Processing %d documents", len(docs))

	report := &Report{Results: make([]Result, len(docs))}

	var wg sync.WaitGroup
	for i := range docs {
		if p.limiter != nil {
			if err := p.limiter.Wait(ctx); err != nil {
				report.Results[i] = Result{DocumentID: docs[i].ID, Err: fmt.Errorf("batch: %w", err)}
				continue
			}
		} else if err := ctx.Err(); err != nil {
			report.Results[i] = Result{DocumentID: docs[i].ID, Err: fmt.Errorf("batch: %w", err)}
			continue
		}

		i := i
		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			report.Results[i] = p.processOne(ctx, &docs[i])
		})
		if submitErr != nil {
			wg.Done()
			report.Results[i] = Result{DocumentID: docs[i].ID, Err: fmt.Errorf("batch: submit: %w", submitErr)}
		}
	}
	wg.Wait()

	for i := range report.Results {
		if report.Results[i].Err != nil {
			report.Failed++
		} else {
			report.Processed++
		}
	}

	logger.Info("Batch done: %d processed, %d failed", report.Processed, report.Failed)
	return report, nil
}

// processOne analyzes, categorizes, and optionally indexes a document.
func (p *Pipeline) processOne(ctx context.Context, doc *Document) Result {
	result := Result{DocumentID: doc.ID}

	if p.registry != nil {
		if n, err := p.registry.ForFile(doc.Filename, doc.MimeType); err != nil {
			logger.Debug("no normaliser for %s, using raw content", doc.Filename)
		} else {
			normalised, err := n.Normalise(doc.Filename, doc.Content)
			if err != nil {
				result.Err = fmt.Errorf("normalise %s: %w", doc.ID, err)
				return result
			}
			doc.Content = []byte(normalised.Content)
			if doc.Title == "" {
				doc.Title = normalised.Title
			}
		}
	}

	analysis, err := p.analyzer.Analyze(ctx, doc.Content, doc.Filename, doc.MimeType)
	if err != nil {
		result.Err = fmt.Errorf("analyze %s: %w", doc.ID, err)
		return result
	}
	result.Analysis = analysis

	suggestion, err := p.categorizer.Categorize(ctx, string(doc.Content), doc.Filename, analysis)
	if err != nil {
		result.Err = fmt.Errorf("categorize %s: %w", doc.ID, err)
		return result
	}
	result.Suggestion = suggestion

	if p.search != nil {
		if err := p.search.IndexDocument(ctx, doc.ID, doc.Title, string(doc.Content), analysis, doc.Metadata); err != nil {
			result.Err = fmt.Errorf("index %s: %w", doc.ID, err)
			return result
		}
	}

	return result
}
