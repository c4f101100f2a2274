package server

import (
	"context"
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/joseph-ayodele/docsplit/internal/core"
	"github.com/joseph-ayodele/docsplit/internal/core/split"
	"github.com/joseph-ayodele/docsplit/internal/extract"
	"github.com/joseph-ayodele/docsplit/internal/pdf"
	"github.com/joseph-ayodele/docsplit/internal/registry"
	"github.com/joseph-ayodele/docsplit/internal/repository"
	"github.com/joseph-ayodele/docsplit/internal/testutil"
)

var packagePages = []string{
	"PROMISSORY NOTE\nInterest Rate: 6.25%",
	"DEED OF TRUST\nsecurity instrument\npower of sale",
}

// pageText returns the fixed page text for any input. Inputs that are not
// PDFs are rejected the way a real extractor would.
func pageText(_ context.Context, src []byte) (extract.TextExtractionResult, error) {
	if !strings.HasPrefix(string(src), "%PDF") {
		return extract.TextExtractionResult{}, assert.AnError
	}
	return extract.TextExtractionResult{
		Text:   strings.Join(packagePages, "\n"),
		Pages:  packagePages,
		Method: "stub",
	}, nil
}

func newTestClient(t *testing.T, store repository.ResultStore, serverOpts ...grpc.ServerOption) *PackageServiceClient {
	t.Helper()

	var opts []core.Option
	if store != nil {
		opts = append(opts, core.WithSink(store))
	}
	proc := core.NewProcessor(nil, extract.Func(pageText), pdf.NewEngine(nil), registry.Default(), opts...)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(serverOpts...)
	RegisterPackageServiceServer(srv, NewPackageServer(proc, store, nil, nil))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewPackageServiceClient(conn)
}

func mustStruct(t *testing.T, m map[string]any) *structpb.Struct {
	t.Helper()
	st, err := structpb.NewStruct(m)
	require.NoError(t, err)
	return st
}

func packageURL() string {
	return split.BytesToDataURL(testutil.MinimalPDF(packagePages...))
}

func TestClassify(t *testing.T) {
	client := newTestClient(t, nil)
	ctx := context.Background()

	out, err := client.Classify(ctx, mustStruct(t, map[string]any{"content": "This Promissory Note evidences a loan"}))
	require.NoError(t, err)
	assert.Equal(t, "promissory_note", out.GetFields()["type_id"].GetStringValue())
	assert.Greater(t, out.GetFields()["confidence"].GetNumberValue(), 0.3)

	out, err = client.Classify(ctx, mustStruct(t, map[string]any{"content": packageURL()}))
	require.NoError(t, err)
	assert.NotEmpty(t, out.GetFields()["type_id"].GetStringValue())

	_, err = client.Classify(ctx, mustStruct(t, map[string]any{}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestAnalyze(t *testing.T) {
	client := newTestClient(t, nil)
	ctx := context.Background()

	out, err := client.Analyze(ctx, mustStruct(t, map[string]any{"content": packageURL()}))
	require.NoError(t, err)
	assert.Equal(t, 2.0, out.GetFields()["page_count"].GetNumberValue())
	assert.True(t, out.GetFields()["exact_pages"].GetBoolValue())
	bs := out.GetFields()["boundaries"].GetListValue().GetValues()
	require.Len(t, bs, 2)
	assert.Equal(t, "deed_of_trust", bs[1].GetStructValue().GetFields()["type_id"].GetStringValue())

	_, err = client.Analyze(ctx, mustStruct(t, map[string]any{"content": "plain text"}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = client.Analyze(ctx, mustStruct(t, map[string]any{"content": split.BytesToDataURL([]byte("%PDF broken"))}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestProcessAndExport(t *testing.T) {
	ctx := context.Background()
	store, err := repository.Open(ctx, repository.Config{DSN: ":memory:"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	client := newTestClient(t, store)

	out, err := client.Process(ctx, mustStruct(t, map[string]any{
		"content":         packageURL(),
		"name":            "loan.pdf",
		"include_content": true,
	}))
	require.NoError(t, err)

	f := out.GetFields()
	assert.True(t, f["success"].GetBoolValue())
	assert.Equal(t, "SPLIT_OK", f["status"].GetStringValue())
	assert.Equal(t, "Successfully split document into 2 parts", f["message"].GetStringValue())

	docs := f["split_documents"].GetListValue().GetValues()
	require.Len(t, docs, 2)
	first := docs[0].GetStructValue().GetFields()
	assert.Equal(t, "Promissory Note_1.pdf", first["filename"].GetStringValue())
	assert.Equal(t, 6.25, first["fields"].GetStructValue().GetFields()["interest_rate"].GetNumberValue())
	assert.True(t, strings.HasPrefix(first["content"].GetStringValue(), "data:application/pdf;base64,"))

	second := docs[1].GetStructValue().GetFields()
	assert.Equal(t, "deed_of_trust", second["classification"].GetStructValue().GetFields()["type_id"].GetStringValue())

	pkgID := f["id"].GetStringValue()
	xlsx, err := client.Export(ctx, mustStruct(t, map[string]any{"package_ids": []any{pkgID}}))
	require.NoError(t, err)
	assert.True(t, len(xlsx.GetValue()) > 0)

	_, err = client.Export(ctx, mustStruct(t, map[string]any{"package_ids": []any{"9b2f4a52-3c39-4f0f-9d5a-2a1c0f0e7d11"}}))
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = client.Export(ctx, mustStruct(t, map[string]any{"package_ids": []any{"nope"}}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestExportWithoutStore(t *testing.T) {
	client := newTestClient(t, nil)
	_, err := client.Export(context.Background(), mustStruct(t, map[string]any{"package_ids": []any{"x"}}))
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
}

func TestExtractFields(t *testing.T) {
	client := newTestClient(t, nil)
	ctx := context.Background()

	out, err := client.ExtractFields(ctx, mustStruct(t, map[string]any{
		"content":  "Loan Amount: $320,000.00 and Interest Rate: 7%",
		"doc_type": "closing_disclosure",
	}))
	require.NoError(t, err)
	fields := out.GetFields()["fields"].GetStructValue().GetFields()
	assert.Equal(t, 320000.0, fields["loan_amount"].GetNumberValue())
	assert.Equal(t, 7.0, fields["interest_rate"].GetNumberValue())

	out, err = client.ExtractFields(ctx, mustStruct(t, map[string]any{
		"content": packageURL(),
		"fields":  []any{"interest_rate"},
	}))
	require.NoError(t, err)
	fields = out.GetFields()["fields"].GetStructValue().GetFields()
	assert.Equal(t, 6.25, fields["interest_rate"].GetNumberValue())

	_, err = client.ExtractFields(ctx, mustStruct(t, map[string]any{"content": "x", "doc_type": "bogus"}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestAccessLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	client := newTestClient(t, nil, grpc.ChainUnaryInterceptor(AccessLog(zap.New(core))))

	ctx := metadata.AppendToOutgoingContext(context.Background(), RequestIDHeader, "req-42")
	_, err := client.Classify(ctx, mustStruct(t, map[string]any{"content": "deed of trust"}))
	require.NoError(t, err)
	_, err = client.Classify(context.Background(), mustStruct(t, map[string]any{}))
	require.Error(t, err)

	entries := logs.All()
	require.Len(t, entries, 2)

	ok := entries[0].ContextMap()
	assert.Equal(t, PackageService_Classify_FullMethodName, ok["method"])
	assert.Equal(t, "req-42", ok["request_id"])
	assert.Equal(t, "OK", ok["code"])

	failed := entries[1]
	assert.Equal(t, zap.WarnLevel, failed.Level)
	assert.Equal(t, "InvalidArgument", failed.ContextMap()["code"])
	assert.NotEmpty(t, failed.ContextMap()["request_id"])
}
