package split

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/docsplit/constants"
	"github.com/joseph-ayodele/docsplit/internal/common"
	"github.com/joseph-ayodele/docsplit/internal/entity"
	"github.com/joseph-ayodele/docsplit/internal/pdf"
	"github.com/joseph-ayodele/docsplit/internal/testutil"
)

type fakeCopier struct {
	pages   int
	failAt  int // call number that fails, 0 = never
	calls   [][]int
	pageErr error
}

func (f *fakeCopier) PageCount(context.Context, []byte) (int, error) {
	return f.pages, f.pageErr
}

func (f *fakeCopier) CopyPages(_ context.Context, _ []byte, pages []int) ([]byte, error) {
	f.calls = append(f.calls, pages)
	if f.failAt == len(f.calls) {
		return nil, errors.New("boom")
	}
	return []byte(fmt.Sprint(pages)), nil
}

var twoDocs = []entity.Boundary{
	{StartPage: 0, EndPage: 1, TypeID: constants.PromissoryNote, Category: constants.CategoryLoan, Title: "Promissory Note"},
	{StartPage: 2, EndPage: 4, TypeID: constants.DeedOfTrust, Category: constants.CategoryLegal, Title: "Deed of Trust"},
}

func TestSplit(t *testing.T) {
	fc := &fakeCopier{pages: 5}
	s := New(fc, nil)
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	docs, err := s.Split(context.Background(), []byte("pdf"), "/inbox/package.pdf", twoDocs)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, [][]int{{0, 1}, {2, 3, 4}}, fc.calls)

	assert.Equal(t, "Promissory Note_1.pdf", docs[0].Filename)
	assert.Equal(t, "Deed of Trust_2.pdf", docs[1].Filename)
	for i, d := range docs {
		assert.Equal(t, twoDocs[i], d.Boundary)
		assert.Equal(t, constants.PDFMimeType, d.FileType)
		assert.Equal(t, len(d.Bytes), d.FileSize)
		assert.Equal(t, constants.DocumentStatusPending, d.Status)
		assert.Equal(t, "Split from package.pdf", d.Notes)
		assert.Equal(t, fixed, d.CreatedAt)
		assert.NotEqual(t, docs[0].ID, docs[1].ID)
	}
}

func TestSplit_AbortsOnFirstFailure(t *testing.T) {
	fc := &fakeCopier{pages: 5, failAt: 2}
	docs, err := New(fc, nil).Split(context.Background(), nil, "x.pdf", twoDocs)
	assert.Nil(t, docs)
	assert.ErrorIs(t, err, common.ErrSplitFailed)
	assert.Contains(t, err.Error(), "boom")
}

func TestSplit_RejectsBadBoundaries(t *testing.T) {
	fc := &fakeCopier{pages: 6}
	_, err := New(fc, nil).Split(context.Background(), nil, "", twoDocs)
	assert.ErrorIs(t, err, common.ErrInvalidBoundaries)
	assert.Empty(t, fc.calls)
}

func TestSplit_PageCountFailure(t *testing.T) {
	fc := &fakeCopier{pageErr: common.ErrMalformedPDF}
	_, err := New(fc, nil).Split(context.Background(), nil, "", twoDocs)
	assert.ErrorIs(t, err, common.ErrSplitFailed)
	assert.ErrorIs(t, err, common.ErrMalformedPDF)
}

func TestSplit_WithEngine(t *testing.T) {
	ctx := context.Background()
	eng := pdf.NewEngine(nil)
	src := testutil.MinimalPDF("one", "two", "three", "four", "five")

	docs, err := New(eng, nil).Split(ctx, src, "pkg.pdf", twoDocs)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	total := 0
	for _, d := range docs {
		n, err := eng.PageCount(ctx, d.Bytes)
		require.NoError(t, err)
		assert.Equal(t, d.Boundary.PageCount(), n)
		total += n
	}
	assert.Equal(t, 5, total)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "Closing Disclosure_3.pdf", Filename(entity.Boundary{Title: "Closing Disclosure"}, 2))
	assert.Equal(t, "W-2 Form_1.pdf", Filename(entity.Boundary{Title: "W-2 Form/.."}, 0))
	assert.Equal(t, "Document_1.pdf", Filename(entity.Boundary{Title: "///"}, 0))
}

func TestDataURL(t *testing.T) {
	raw := []byte("%PDF-1.4 body")
	url := BytesToDataURL(raw)
	assert.True(t, len(url) > len(dataURLPrefix))

	got, err := DataURLToBytes(url)
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	got, err = DataURLToBytes("data:application/octet-stream;base64,aGk=")
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), got)

	_, err = DataURLToBytes("plain text")
	assert.ErrorIs(t, err, ErrNotDataURL)

	_, err = DataURLToBytes(dataURLPrefix + "!!!")
	assert.Error(t, err)
}
