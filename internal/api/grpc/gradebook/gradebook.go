// Package gradebook describes the gradebook.v1.Gradebook gRPC service: its
// messages, server interface, service descriptor and client.
package gradebook

import (
	"context"

	"google.golang.org/grpc"

	"github.com/dtroode/gradebook-server/internal/api/grpc/codec"
	"github.com/dtroode/gradebook-server/internal/model"
)

const ServiceName = "gradebook.v1.Gradebook"

const (
	RegisterFullMethodName      = "/" + ServiceName + "/Register"
	LoginFullMethodName         = "/" + ServiceName + "/Login"
	ListStudentsFullMethodName  = "/" + ServiceName + "/ListStudents"
	AddStudentFullMethodName    = "/" + ServiceName + "/AddStudent"
	UpdateScoresFullMethodName  = "/" + ServiceName + "/UpdateScores"
	DeleteStudentFullMethodName = "/" + ServiceName + "/DeleteStudent"
)

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type LoginResponse struct {
	Message  string `json:"message"`
	Token    string `json:"token"`
	Username string `json:"username"`
}

type ListStudentsRequest struct{}

type ListStudentsResponse struct {
	Students []model.Student `json:"students"`
}

type AddStudentRequest struct {
	Name string `json:"name"`
}

type StudentResponse struct {
	Student model.Student `json:"student"`
}

type UpdateScoresRequest struct {
	ID     int64             `json:"id"`
	Scores model.ScoresPatch `json:"scores"`
}

type DeleteStudentRequest struct {
	ID int64 `json:"id"`
}

// GradebookServer is implemented by the service handler.
type GradebookServer interface {
	Register(context.Context, *CredentialsRequest) (*MessageResponse, error)
	Login(context.Context, *CredentialsRequest) (*LoginResponse, error)
	ListStudents(context.Context, *ListStudentsRequest) (*ListStudentsResponse, error)
	AddStudent(context.Context, *AddStudentRequest) (*StudentResponse, error)
	UpdateScores(context.Context, *UpdateScoresRequest) (*StudentResponse, error)
	DeleteStudent(context.Context, *DeleteStudentRequest) (*MessageResponse, error)
}

// ServiceDesc is the grpc.ServiceDesc for the Gradebook service.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*GradebookServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unary(RegisterFullMethodName, GradebookServer.Register)},
		{MethodName: "Login", Handler: unary(LoginFullMethodName, GradebookServer.Login)},
		{MethodName: "ListStudents", Handler: unary(ListStudentsFullMethodName, GradebookServer.ListStudents)},
		{MethodName: "AddStudent", Handler: unary(AddStudentFullMethodName, GradebookServer.AddStudent)},
		{MethodName: "UpdateScores", Handler: unary(UpdateScoresFullMethodName, GradebookServer.UpdateScores)},
		{MethodName: "DeleteStudent", Handler: unary(DeleteStudentFullMethodName, GradebookServer.DeleteStudent)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gradebook/v1",
}

// RegisterGradebookServer attaches srv to s.
func RegisterGradebookServer(s grpc.ServiceRegistrar, srv GradebookServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func unary[Req, Resp any](
	fullMethod string,
	call func(GradebookServer, context.Context, *Req) (*Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(GradebookServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(GradebookServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Client calls the Gradebook service over the JSON codec.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) Register(ctx context.Context, in *CredentialsRequest, opts ...grpc.CallOption) (*MessageResponse, error) {
	return invoke[MessageResponse](ctx, c.cc, RegisterFullMethodName, in, opts)
}

func (c *Client) Login(ctx context.Context, in *CredentialsRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, LoginFullMethodName, in, opts)
}

func (c *Client) ListStudents(ctx context.Context, in *ListStudentsRequest, opts ...grpc.CallOption) (*ListStudentsResponse, error) {
	return invoke[ListStudentsResponse](ctx, c.cc, ListStudentsFullMethodName, in, opts)
}

func (c *Client) AddStudent(ctx context.Context, in *AddStudentRequest, opts ...grpc.CallOption) (*StudentResponse, error) {
	return invoke[StudentResponse](ctx, c.cc, AddStudentFullMethodName, in, opts)
}

func (c *Client) UpdateScores(ctx context.Context, in *UpdateScoresRequest, opts ...grpc.CallOption) (*StudentResponse, error) {
	return invoke[StudentResponse](ctx, c.cc, UpdateScoresFullMethodName, in, opts)
}

func (c *Client) DeleteStudent(ctx context.Context, in *DeleteStudentRequest, opts ...grpc.CallOption) (*MessageResponse, error) {
	return invoke[MessageResponse](ctx, c.cc, DeleteStudentFullMethodName, in, opts)
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codec.Name)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
