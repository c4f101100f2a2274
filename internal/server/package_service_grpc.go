package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// PackageService is served with well-known message types so no generated
// stubs are needed. Requests are structs; see each method for its keys.
const PackageServiceName = "docsplit.v1.PackageService"

const (
	PackageService_Classify_FullMethodName      = "/docsplit.v1.PackageService/Classify"
	PackageService_Analyze_FullMethodName       = "/docsplit.v1.PackageService/Analyze"
	PackageService_Process_FullMethodName       = "/docsplit.v1.PackageService/Process"
	PackageService_ExtractFields_FullMethodName = "/docsplit.v1.PackageService/ExtractFields"
	PackageService_Export_FullMethodName        = "/docsplit.v1.PackageService/Export"
)

type PackageServiceServer interface {
	Classify(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Analyze(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Process(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ExtractFields(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Export(context.Context, *structpb.Struct) (*wrapperspb.BytesValue, error)
}

func RegisterPackageServiceServer(s grpc.ServiceRegistrar, srv PackageServiceServer) {
	s.RegisterService(&PackageService_ServiceDesc, srv)
}

func unaryHandler[Resp any](fullMethod string, call func(PackageServiceServer, context.Context, *structpb.Struct) (Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(PackageServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(PackageServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var PackageService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: PackageServiceName,
	HandlerType: (*PackageServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Classify", Handler: unaryHandler(PackageService_Classify_FullMethodName, PackageServiceServer.Classify)},
		{MethodName: "Analyze", Handler: unaryHandler(PackageService_Analyze_FullMethodName, PackageServiceServer.Analyze)},
		{MethodName: "Process", Handler: unaryHandler(PackageService_Process_FullMethodName, PackageServiceServer.Process)},
		{MethodName: "ExtractFields", Handler: unaryHandler(PackageService_ExtractFields_FullMethodName, PackageServiceServer.ExtractFields)},
		{MethodName: "Export", Handler: unaryHandler(PackageService_Export_FullMethodName, PackageServiceServer.Export)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "docsplit/v1/package.proto",
}

// PackageServiceClient is the client side of PackageService.
type PackageServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewPackageServiceClient(cc grpc.ClientConnInterface) *PackageServiceClient {
	return &PackageServiceClient{cc: cc}
}

func (c *PackageServiceClient) Classify(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, PackageService_Classify_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *PackageServiceClient) Analyze(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, PackageService_Analyze_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *PackageServiceClient) Process(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, PackageService_Process_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *PackageServiceClient) ExtractFields(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, PackageService_ExtractFields_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *PackageServiceClient) Export(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, PackageService_Export_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
