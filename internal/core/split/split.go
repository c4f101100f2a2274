// Package split turns a package and its boundaries into one PDF per boundary.
// Page manipulation itself is delegated to a PageCopier.
package split

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/docsplit/constants"
	"github.com/joseph-ayodele/docsplit/internal/common"
	"github.com/joseph-ayodele/docsplit/internal/core/boundary"
	"github.com/joseph-ayodele/docsplit/internal/entity"
)

// PageCopier is the PDF capability the splitter depends on.
type PageCopier interface {
	PageCount(ctx context.Context, src []byte) (int, error)
	CopyPages(ctx context.Context, src []byte, pages []int) ([]byte, error)
}

// Splitter produces split documents. It is stateless apart from its collaborators.
type Splitter struct {
	copier PageCopier
	logger *slog.Logger
	now    func() time.Time
}

func New(copier PageCopier, logger *slog.Logger) *Splitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Splitter{copier: copier, logger: logger, now: time.Now}
}

// Split copies each boundary's pages of src into a new document. Boundaries
// must partition src's pages. The first copy failure aborts the whole split
// and no documents are returned.
func (s *Splitter) Split(ctx context.Context, src []byte, sourceName string, bs []entity.Boundary) ([]entity.SplitDocument, error) {
	pageCount, err := s.copier.PageCount(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrSplitFailed, err)
	}
	if err := boundary.Validate(bs, pageCount); err != nil {
		return nil, err
	}

	notes := ""
	if sourceName != "" {
		notes = "Split from " + filepath.Base(sourceName)
	}
	now := s.now().UTC()

	docs := make([]entity.SplitDocument, 0, len(bs))
	for i, b := range bs {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: boundary %d: %w", common.ErrSplitFailed, i, err)
		}
		out, err := s.copier.CopyPages(ctx, src, b.Pages())
		if err != nil {
			s.logger.Error("split.boundary.failed",
				"index", i, "type", b.TypeID, "start", b.StartPage, "end", b.EndPage, "error", err)
			return nil, fmt.Errorf("%w: boundary %d (%s pages %d-%d): %w",
				common.ErrSplitFailed, i, b.TypeID, b.StartPage, b.EndPage, err)
		}
		docs = append(docs, entity.SplitDocument{
			ID:        uuid.New(),
			Filename:  Filename(b, i),
			FileType:  constants.PDFMimeType,
			FileSize:  len(out),
			Bytes:     out,
			Boundary:  b,
			Status:    constants.DocumentStatusPending,
			Notes:     notes,
			CreatedAt: now,
		})
	}

	s.logger.Info("split.ok", "source", sourceName, "pages", pageCount, "documents", len(docs))
	return docs, nil
}

var reUnsafe = regexp.MustCompile(`[^A-Za-z0-9 _\-]+`)

// Filename names the split output for boundary b at position index:
// "<Title>_<index+1>.pdf".
func Filename(b entity.Boundary, index int) string {
	title := strings.TrimSpace(reUnsafe.ReplaceAllString(b.Title, ""))
	if title == "" {
		title = "Document"
	}
	return fmt.Sprintf("%s_%d.pdf", title, index+1)
}

const dataURLPrefix = "data:application/pdf;base64,"

// BytesToDataURL encodes a PDF as a data URL.
func BytesToDataURL(b []byte) string {
	return dataURLPrefix + base64.StdEncoding.EncodeToString(b)
}

// ErrNotDataURL is returned by DataURLToBytes for content that is not base64 PDF.
var ErrNotDataURL = errors.New("not a base64 pdf data url")

// DataURLToBytes decodes content produced by BytesToDataURL. Content with any
// other "data:...;base64," prefix is decoded as well.
func DataURLToBytes(content string) ([]byte, error) {
	payload, ok := strings.CutPrefix(content, dataURLPrefix)
	if !ok {
		head, rest, found := strings.Cut(content, ",")
		if !found || !strings.HasPrefix(head, "data:") || !strings.HasSuffix(head, ";base64") {
			return nil, ErrNotDataURL
		}
		payload = rest
	}
	b, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode data url: %w", err)
	}
	return b, nil
}
