package textextract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/docsplit/internal/common"
	"github.com/joseph-ayodele/docsplit/internal/testutil"
)

type stubRunner struct {
	stdout []byte
	stderr []byte
	err    error

	name string
	args []string
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.name, s.args = name, args
	return s.stdout, s.stderr, s.err
}

func TestExtract_Pdftotext(t *testing.T) {
	r := &stubRunner{stdout: []byte("PROMISSORY  NOTE\r\n\tpage one\f\n\nDEED OF TRUST\f")}
	e := NewExtractor(Config{Method: MethodPdftotext, Pdftotext: "/usr/bin/pdftotext"}, nil).WithRunner(r)

	res, err := e.Extract(context.Background(), []byte("%PDF"))
	require.NoError(t, err)

	assert.Equal(t, MethodPdftotext, res.Method)
	assert.Equal(t, []string{"PROMISSORY NOTE\n page one", "DEED OF TRUST"}, res.Pages)
	assert.Equal(t, "PROMISSORY NOTE\n page one\nDEED OF TRUST", res.Text)

	assert.Equal(t, "/usr/bin/pdftotext", r.name)
	require.Len(t, r.args, 7)
	assert.Equal(t, []string{"-layout", "-enc", "UTF-8", "-eol", "unix"}, r.args[:5])
	assert.Equal(t, "-", r.args[6])
}

func TestExtract_PdftotextFailure(t *testing.T) {
	r := &stubRunner{err: errors.New("exit status 1"), stderr: []byte("Syntax Error")}
	e := NewExtractor(Config{Method: MethodPdftotext}, nil).WithRunner(r)

	_, err := e.Extract(context.Background(), []byte("%PDF"))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrExtractionUnavailable)
	assert.Contains(t, err.Error(), "Syntax Error")
}

func TestExtract_AutoFallsBackToNative(t *testing.T) {
	r := &stubRunner{err: errors.New(`exec: "pdftotext": executable file not found in $PATH`)}
	e := NewExtractor(Config{}, nil).WithRunner(r)

	res, err := e.Extract(context.Background(), testutil.MinimalPDF("PROMISSORY NOTE", "DEED OF TRUST"))
	require.NoError(t, err)

	assert.Equal(t, MethodNative, res.Method)
	require.Len(t, res.Pages, 2)
	assert.Contains(t, res.Pages[0], "PROMISSORY")
	assert.Contains(t, res.Pages[1], "DEED")
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[0], "pdftotext")
}

func TestExtract_AutoBlankOutputFallsBack(t *testing.T) {
	r := &stubRunner{stdout: []byte("\f\f")}
	e := NewExtractor(Config{Method: MethodAuto}, nil).WithRunner(r)

	res, err := e.Extract(context.Background(), testutil.MinimalPDF("credit report"))
	require.NoError(t, err)
	assert.Equal(t, MethodNative, res.Method)
	assert.Contains(t, res.Warnings, "pdftotext: no text")
}

func TestExtract_NativeMalformed(t *testing.T) {
	e := NewExtractor(Config{Method: MethodNative}, nil)
	_, err := e.Extract(context.Background(), []byte("not a pdf at all"))
	assert.ErrorIs(t, err, common.ErrExtractionUnavailable)
}

func TestExtract_NativeMaxPages(t *testing.T) {
	e := NewExtractor(Config{Method: MethodNative, MaxPages: 1}, nil)
	res, err := e.Extract(context.Background(), testutil.MinimalPDF("first", "second", "third"))
	require.NoError(t, err)
	assert.Nil(t, res.Pages)
	assert.Contains(t, res.Text, "first")
	assert.NotContains(t, res.Text, "second")
	assert.NotEmpty(t, res.Warnings)
}

func TestExtract_UnknownMethod(t *testing.T) {
	e := NewExtractor(Config{Method: "ocr"}, nil)
	_, err := e.Extract(context.Background(), nil)
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"  a  b\t\tc  ", "a b c"},
		{"line one   \r\nline two", "line one\nline two"},
		{"a\n\n\n\n\nb", "a\n\nb"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "input %q", tt.in)
	}
}

func TestSplitPages(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitPages("a\fb\f"))
	assert.Equal(t, []string{"a", "", "c"}, splitPages("a\f\fc\f"))
	assert.Equal(t, []string{"only"}, splitPages("only"))
}
