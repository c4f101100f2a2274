package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/joseph-ayodele/docsplit/constants"
	"github.com/joseph-ayodele/docsplit/internal/common"
	"github.com/joseph-ayodele/docsplit/internal/core/boundary"
	"github.com/joseph-ayodele/docsplit/internal/core/classify"
	"github.com/joseph-ayodele/docsplit/internal/core/fields"
	"github.com/joseph-ayodele/docsplit/internal/core/segment"
	"github.com/joseph-ayodele/docsplit/internal/core/split"
	"github.com/joseph-ayodele/docsplit/internal/entity"
	"github.com/joseph-ayodele/docsplit/internal/extract"
	"github.com/joseph-ayodele/docsplit/internal/registry"
)

// ResultSink receives finished package results. Storage is optional.
type ResultSink interface {
	SavePackage(ctx context.Context, res *entity.PackageResult) error
}

// Processor coordinates text extraction, boundary detection, splitting,
// classification and field extraction for one loan package at a time. It holds
// no per-package state and is safe for concurrent use.
type Processor struct {
	logger         *slog.Logger
	text           extract.TextExtractor
	copier         split.PageCopier
	reg            *registry.Registry
	classifier     *classify.Classifier
	splitter       *split.Splitter
	fields         *fields.Extractor
	sink           ResultSink
	extractTimeout time.Duration
	now            func() time.Time
}

type Option func(*Processor)

// WithSink stores every processed package in s.
func WithSink(s ResultSink) Option {
	return func(p *Processor) { p.sink = s }
}

// WithFieldPatterns replaces the default field extraction patterns.
func WithFieldPatterns(fp fields.Patterns) Option {
	return func(p *Processor) {
		if fp != nil {
			p.fields = fields.New(fp, p.logger)
		}
	}
}

// WithExtractTimeout bounds each text extraction. Zero means no limit.
func WithExtractTimeout(d time.Duration) Option {
	return func(p *Processor) { p.extractTimeout = d }
}

func NewProcessor(
	logger *slog.Logger,
	text extract.TextExtractor,
	copier split.PageCopier,
	reg *registry.Registry,
	opts ...Option,
) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if reg == nil {
		reg = registry.Default()
	}
	p := &Processor{
		logger:         logger,
		text:           text,
		copier:         copier,
		reg:            reg,
		classifier:     classify.New(reg),
		splitter:       split.New(copier, logger),
		fields:         fields.New(nil, logger),
		extractTimeout: 45 * time.Second,
		now:            time.Now,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Registry returns the document type registry the processor was built with.
func (p *Processor) Registry() *registry.Registry { return p.reg }

// Analysis is the boundary-detection view of a package.
type Analysis struct {
	PageCount     int
	TextAvailable bool
	TextMethod    string
	ExactPages    bool // windows come from real per-page text, not proportional slicing
	Windows       []entity.PageWindow
	Boundaries    []entity.Boundary
	Warnings      []string
}

// Analyze counts pages, extracts text and detects boundaries. When text cannot
// be extracted the whole package becomes one general_document boundary; only
// an unreadable PDF is an error.
func (p *Processor) Analyze(ctx context.Context, src []byte) (*Analysis, error) {
	log := common.LoggerFromContext(ctx, p.logger)

	pageCount, err := p.copier.PageCount(ctx, src)
	if err != nil {
		return nil, err
	}
	if pageCount <= 0 {
		return nil, fmt.Errorf("%w: document has no pages", common.ErrMalformedPDF)
	}

	a := &Analysis{PageCount: pageCount}
	res, err := p.extractText(ctx, src)
	if err != nil {
		log.Warn("pipeline.analyze.degraded", "pages", pageCount, "error", err)
		a.Warnings = append(a.Warnings, err.Error())
		a.Boundaries = []entity.Boundary{boundary.Whole(pageCount)}
		return a, nil
	}

	a.TextAvailable = true
	a.TextMethod = res.Method
	a.Warnings = append(a.Warnings, res.Warnings...)
	a.Windows, a.ExactPages = segment.Windows(res.Text, res.Pages, pageCount)
	a.Boundaries = boundary.Detect(a.Windows, p.reg)

	log.Info("pipeline.analyze.ok",
		"pages", pageCount,
		"method", res.Method,
		"exact_pages", a.ExactPages,
		"boundaries", len(a.Boundaries),
	)
	return a, nil
}

// BoundaryText joins the window text of every page b covers.
func (a *Analysis) BoundaryText(b entity.Boundary) string {
	if !a.TextAvailable {
		return ""
	}
	var sb strings.Builder
	for _, i := range b.Pages() {
		if i < 0 || i >= len(a.Windows) {
			continue
		}
		sb.WriteString(a.Windows[i].Text)
	}
	return sb.String()
}

// Text returns the extracted text of src, bounded by the extract timeout.
func (p *Processor) Text(ctx context.Context, src []byte) (string, error) {
	res, err := p.extractText(ctx, src)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// RankText scores every registered type against text, best first.
func (p *Processor) RankText(text string) []entity.Classification {
	return p.classifier.Rank(text)
}

// ClassifyText classifies an already extracted text body.
func (p *Processor) ClassifyText(text string) entity.Classification {
	return p.classifier.Classify(text)
}

// ClassifyDocument classifies a whole PDF. Unavailable text yields the
// generic fallback, not an error.
func (p *Processor) ClassifyDocument(ctx context.Context, src []byte) entity.Classification {
	res, err := p.extractText(ctx, src)
	if err != nil {
		common.LoggerFromContext(ctx, p.logger).Warn("pipeline.classify.fallback", "error", err)
		return classify.Fallback()
	}
	c := p.classifier.Classify(res.Text)
	if c.IsFallback() {
		common.LoggerFromContext(ctx, p.logger).Debug("pipeline.classify.fallback", "error", common.ErrNoConfidentMatch)
	}
	return c
}

// ExtractFields pulls the named fields out of a PDF. Unavailable text yields
// an empty map.
func (p *Processor) ExtractFields(ctx context.Context, src []byte, names []string) entity.FieldMap {
	return p.fields.ExtractFrom(ctx, func(ctx context.Context) (string, error) {
		return p.Text(ctx, src)
	}, names)
}

// ExtractFieldsFromContent accepts a base64 PDF data URL. Content that is not
// a data URL is treated as plain text. Undecodable content yields an empty map.
func (p *Processor) ExtractFieldsFromContent(ctx context.Context, content string, names []string) entity.FieldMap {
	if !strings.HasPrefix(content, "data:") {
		return p.fields.Extract(content, names)
	}
	src, err := split.DataURLToBytes(content)
	if err != nil {
		common.LoggerFromContext(ctx, p.logger).Warn("pipeline.fields.decode_failed", "error", err)
		return entity.FieldMap{}
	}
	return p.ExtractFields(ctx, src, names)
}

// FieldsFor returns the extraction field names registered for id.
func (p *Processor) FieldsFor(id constants.DocType) []string {
	d, ok := p.reg.Lookup(id)
	if !ok {
		return nil
	}
	return d.ExtractionFields
}

// Split copies each boundary out of src.
func (p *Processor) Split(ctx context.Context, src []byte, sourceName string, bs []entity.Boundary) ([]entity.SplitDocument, error) {
	return p.splitter.Split(ctx, src, sourceName, bs)
}

// ProcessPackage runs the full pipeline on one package. A split failure
// returns an error and no documents. A failure to store the result is
// returned alongside the completed result.
func (p *Processor) ProcessPackage(ctx context.Context, src []byte, sourceName string) (*entity.PackageResult, error) {
	id := uuid.New()
	ctx = common.WithPackageID(ctx, id.String())
	log := common.LoggerFromContext(ctx, p.logger)
	start := time.Now()

	a, err := p.Analyze(ctx, src)
	if err != nil {
		log.Error("pipeline.process.failed", "source", sourceName, "stage", "analyze", "error", err)
		return nil, err
	}

	docs, err := p.splitter.Split(ctx, src, sourceName, a.Boundaries)
	if err != nil {
		log.Error("pipeline.process.failed", "source", sourceName, "stage", "split", "error", err)
		return nil, err
	}

	for i := range docs {
		p.enrich(ctx, a, &docs[i])
	}

	res := &entity.PackageResult{
		ID:             id,
		SourceName:     sourceName,
		PageCount:      a.PageCount,
		TextMethod:     a.TextMethod,
		Boundaries:     a.Boundaries,
		SplitDocuments: docs,
		Status:         constants.PackageStatusSplitOK,
		Message:        fmt.Sprintf("Successfully split document into %d parts", len(docs)),
		ProcessedAt:    p.now().UTC(),
	}
	if !a.TextAvailable {
		res.Status = constants.PackageStatusDegraded
		res.Message += "; text unavailable, document types not detected"
	}

	log.Info("pipeline.process.ok",
		"source", sourceName,
		"pages", res.PageCount,
		"documents", len(docs),
		"status", res.Status,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if p.sink != nil {
		if err := p.sink.SavePackage(ctx, res); err != nil {
			log.Error("pipeline.store.failed", "error", err)
			return res, fmt.Errorf("store package: %w", err)
		}
	}
	return res, nil
}

// enrich classifies a split document from its own pages and extracts its fields.
func (p *Processor) enrich(ctx context.Context, a *Analysis, doc *entity.SplitDocument) {
	if !a.TextAvailable {
		c := classify.Fallback()
		doc.Classification = &c
		doc.Fields = entity.FieldMap{}
		return
	}
	text := a.BoundaryText(doc.Boundary)
	c := p.classifier.Classify(text)
	doc.Classification = &c

	names := c.ExtractionFields
	if c.IsFallback() {
		names = p.FieldsFor(doc.Boundary.TypeID)
	}
	doc.Fields = p.fields.Extract(text, names)

	common.LoggerFromContext(ctx, p.logger).Debug("pipeline.document",
		"filename", doc.Filename,
		"boundary_type", doc.Boundary.TypeID,
		"classified_as", c.TypeID,
		"confidence", c.Confidence,
		"fields", len(doc.Fields),
	)
}

// Input is one package of a batch.
type Input struct {
	Name string
	Read func() ([]byte, error)
}

// FileInput reads the package at path.
func FileInput(path string) Input {
	return Input{
		Name: filepath.Base(path),
		Read: func() ([]byte, error) { return os.ReadFile(path) },
	}
}

// BatchItem is the outcome for one Input; exactly one of Result and Err is set.
type BatchItem struct {
	Name   string
	Result *entity.PackageResult
	Err    error
}

// ProcessBatch processes inputs with at most limit packages in flight. A
// failing package does not stop the others; results keep input order.
// The returned error is non-nil only if ctx ends first.
func (p *Processor) ProcessBatch(ctx context.Context, inputs []Input, limit int) ([]BatchItem, error) {
	if limit <= 0 {
		limit = 1
	}
	out := make([]BatchItem, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, in := range inputs {
		out[i].Name = in.Name
		if err := gctx.Err(); err != nil {
			out[i].Err = err
			continue
		}
		i, in := i, in
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				out[i].Err = err
				return nil
			}
			src, err := in.Read()
			if err != nil {
				out[i].Err = fmt.Errorf("read %s: %w", in.Name, err)
				return nil
			}
			res, err := p.ProcessPackage(gctx, src, in.Name)
			out[i].Result, out[i].Err = res, err
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, it := range out {
		if it.Err != nil {
			failed++
		}
	}
	p.logger.Info("pipeline.batch.done", "packages", len(inputs), "failed", failed)
	if err := ctx.Err(); err != nil {
		return out, err
	}
	return out, nil
}

func (p *Processor) extractText(ctx context.Context, src []byte) (extract.TextExtractionResult, error) {
	if p.text == nil {
		return extract.TextExtractionResult{}, fmt.Errorf("%w: no text extractor configured", common.ErrExtractionUnavailable)
	}
	ctx, cancel := common.WithTimeout(ctx, p.extractTimeout)
	defer cancel()

	res, err := p.text.Extract(ctx, src)
	if err != nil {
		if !errors.Is(err, common.ErrExtractionUnavailable) {
			err = fmt.Errorf("%w: %w", common.ErrExtractionUnavailable, err)
		}
		return extract.TextExtractionResult{}, err
	}
	if strings.TrimSpace(res.Text) == "" {
		return extract.TextExtractionResult{}, fmt.Errorf("%w: no text in document", common.ErrExtractionUnavailable)
	}
	return res, nil
}
