package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/joseph-ayodele/docsplit/constants"
	"github.com/joseph-ayodele/docsplit/internal/common"
	"github.com/joseph-ayodele/docsplit/internal/core"
	"github.com/joseph-ayodele/docsplit/internal/core/split"
	"github.com/joseph-ayodele/docsplit/internal/entity"
	"github.com/joseph-ayodele/docsplit/internal/export"
	"github.com/joseph-ayodele/docsplit/internal/repository"
)

// PackageServer implements PackageService on top of core.Processor.
type PackageServer struct {
	proc     *core.Processor
	store    repository.ResultStore // nil disables Export
	exporter *export.Service
	logger   *slog.Logger
}

var _ PackageServiceServer = (*PackageServer)(nil)

func NewPackageServer(proc *core.Processor, store repository.ResultStore, exporter *export.Service, logger *slog.Logger) *PackageServer {
	if logger == nil {
		logger = slog.Default()
	}
	if exporter == nil {
		exporter = export.NewService(logger)
	}
	return &PackageServer{proc: proc, store: store, exporter: exporter, logger: logger}
}

// Classify takes {"content": <pdf data url or plain text>}.
func (s *PackageServer) Classify(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	content := stringField(req, "content")
	if content == "" {
		return nil, common.InvalidArgumentError("content is required")
	}

	var c entity.Classification
	if isDataURL(content) {
		src, err := split.DataURLToBytes(content)
		if err != nil {
			return nil, common.InvalidArgumentErrorf("content: %v", err)
		}
		c = s.proc.ClassifyDocument(ctx, src)
	} else {
		c = s.proc.ClassifyText(content)
	}
	s.logger.Info("classify.ok", "type", c.TypeID, "confidence", c.Confidence)
	return toStruct(c)
}

// Analyze takes {"content": <pdf data url>} and returns the detected boundaries.
func (s *PackageServer) Analyze(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	src, err := pdfContent(req)
	if err != nil {
		return nil, err
	}
	a, err := s.proc.Analyze(ctx, src)
	if err != nil {
		s.logger.Error("analyze.failed", "error", err)
		return nil, common.ToStatus(err)
	}
	return toStruct(map[string]any{
		"page_count":     a.PageCount,
		"text_available": a.TextAvailable,
		"text_method":    a.TextMethod,
		"exact_pages":    a.ExactPages,
		"boundaries":     a.Boundaries,
		"warnings":       a.Warnings,
	})
}

// Process takes {"content": <pdf data url>, "name": <source filename>,
// "include_content": <bool>} and runs the full pipeline. With include_content
// every split document carries its PDF as a data URL.
func (s *PackageServer) Process(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	src, err := pdfContent(req)
	if err != nil {
		return nil, err
	}
	name := stringField(req, "name")
	if name == "" {
		name = "package.pdf"
	}

	log := common.LoggerFromContext(ctx, s.logger)
	res, err := s.proc.ProcessPackage(ctx, src, name)
	if err != nil && res == nil {
		log.Error("process.failed", "source", name, "error", err)
		return nil, common.ToStatus(err)
	}
	if err != nil {
		// Stored copy failed; the caller still gets the result.
		log.Warn("process.store_failed", "source", name, "error", err)
	}

	out, convErr := toMap(res)
	if convErr != nil {
		return nil, common.InternalError(convErr.Error())
	}
	out["success"] = true
	if boolField(req, "include_content") {
		docs, _ := out["split_documents"].([]any)
		for i, d := range docs {
			if m, ok := d.(map[string]any); ok && i < len(res.SplitDocuments) {
				m["content"] = split.BytesToDataURL(res.SplitDocuments[i].Bytes)
			}
		}
	}
	return newStruct(out)
}

// ExtractFields takes {"content": <pdf data url or text>, "doc_type": <type id>}
// or an explicit {"fields": [names...]} list.
func (s *PackageServer) ExtractFields(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	content := stringField(req, "content")
	if content == "" {
		return nil, common.InvalidArgumentError("content is required")
	}

	var names []string
	if lv := req.GetFields()["fields"].GetListValue(); lv != nil {
		for _, v := range lv.GetValues() {
			if n := strings.TrimSpace(v.GetStringValue()); n != "" {
				names = append(names, n)
			}
		}
	}
	if len(names) == 0 {
		dt, ok := constants.ParseDocType(stringField(req, "doc_type"))
		if !ok {
			return nil, common.InvalidArgumentError("doc_type or fields is required")
		}
		names = s.proc.FieldsFor(dt)
	}

	fm := s.proc.ExtractFieldsFromContent(ctx, content, names)
	return toStruct(map[string]any{"fields": fm})
}

// Export takes {"package_ids": [...]} and returns an XLSX report of the stored documents.
func (s *PackageServer) Export(ctx context.Context, req *structpb.Struct) (*wrapperspb.BytesValue, error) {
	if s.store == nil {
		return nil, status.Error(codes.FailedPrecondition, "no result store configured")
	}
	lv := req.GetFields()["package_ids"].GetListValue()
	if lv == nil || len(lv.GetValues()) == 0 {
		return nil, common.InvalidArgumentError("package_ids is required")
	}

	results := make([]*entity.PackageResult, 0, len(lv.GetValues()))
	for _, v := range lv.GetValues() {
		id, err := uuid.Parse(strings.TrimSpace(v.GetStringValue()))
		if err != nil {
			return nil, common.InvalidArgumentErrorf("package id %q must be a UUID", v.GetStringValue())
		}
		docs, err := s.store.ListDocuments(ctx, id)
		if err != nil {
			s.logger.Error("export.list.failed", "package_id", id, "error", err)
			return nil, common.InternalError("list documents failed")
		}
		if len(docs) == 0 {
			return nil, common.NotFoundError(fmt.Sprintf("package %s not found", id))
		}
		results = append(results, &entity.PackageResult{ID: id, SplitDocuments: docs})
	}

	xlsx, err := s.exporter.ResultsXLSX(results)
	if err != nil {
		s.logger.Error("export.xlsx.failed", "error", err)
		return nil, common.InternalError(err.Error())
	}
	return wrapperspb.Bytes(xlsx), nil
}

func isDataURL(s string) bool { return strings.HasPrefix(s, "data:") }

func pdfContent(req *structpb.Struct) ([]byte, error) {
	content := stringField(req, "content")
	if err := common.ValidateAndReturnError(common.NewValidator().Field("content", content, common.Required)); err != nil {
		return nil, err
	}
	src, err := split.DataURLToBytes(content)
	if err != nil {
		if errors.Is(err, split.ErrNotDataURL) {
			return nil, common.InvalidArgumentError("content must be a base64 pdf data url")
		}
		return nil, common.InvalidArgumentErrorf("content: %v", err)
	}
	return src, nil
}

func stringField(req *structpb.Struct, key string) string {
	return strings.TrimSpace(req.GetFields()[key].GetStringValue())
}

func boolField(req *structpb.Struct, key string) bool {
	return req.GetFields()[key].GetBoolValue()
}

// toMap round-trips v through JSON so struct tags decide the wire names.
func toMap(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func toStruct(v any) (*structpb.Struct, error) {
	m, err := toMap(v)
	if err != nil {
		return nil, common.InternalError(err.Error())
	}
	return newStruct(m)
}

func newStruct(m map[string]any) (*structpb.Struct, error) {
	st, err := structpb.NewStruct(m)
	if err != nil {
		return nil, common.InternalError(err.Error())
	}
	return st, nil
}
