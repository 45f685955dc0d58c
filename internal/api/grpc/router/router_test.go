package router

import (
	"context"
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	grpcctx "github.com/dtroode/gradebook-server/internal/api/grpc/context"
	"github.com/dtroode/gradebook-server/internal/api/grpc/gradebook"
	"github.com/dtroode/gradebook-server/internal/model"
	"github.com/dtroode/gradebook-server/internal/password"
	"github.com/dtroode/gradebook-server/internal/repository"
	"github.com/dtroode/gradebook-server/internal/repository/memory"
	"github.com/dtroode/gradebook-server/internal/service"
	"github.com/dtroode/gradebook-server/internal/testutil"
	"github.com/dtroode/gradebook-server/internal/token"
)

func startServer(t *testing.T) *grpc.ClientConn {
	t.Helper()

	lg := testutil.MakeNoopLogger()
	store := repository.NewStore(memory.NewStore(), lg)
	authService := service.NewAuth(store, password.NewBcrypt(bcrypt.MinCost), token.NewJWT("grpc-secret"), lg)
	studentService := service.NewStudent(store, lg)

	s := New(authService, studentService, authService, grpcctx.NewManager(), lg).Register()

	lis := bufconn.Listen(1 << 20)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func withToken(ctx context.Context, tok string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+tok)
}

func TestRouter_Register(t *testing.T) {
	t.Parallel()

	r := New(nil, nil, nil, grpcctx.NewManager(), testutil.MakeNoopLogger())
	s := r.Register()
	if s == nil {
		t.Fatalf("expected non-nil grpc server")
	}
	assert.Contains(t, s.GetServiceInfo(), gradebook.ServiceName)
	assert.NotNil(t, r.Health())
}

func TestRouter_EndToEnd(t *testing.T) {
	t.Parallel()

	client := gradebook.NewClient(startServer(t))
	ctx := context.Background()
	creds := &gradebook.CredentialsRequest{Username: "alice", Password: "s3cret"}

	_, err := client.Register(ctx, creds)
	require.NoError(t, err)

	_, err = client.Register(ctx, creds)
	assert.Equal(t, codes.AlreadyExists, status.Code(err))

	login, err := client.Login(ctx, creds)
	require.NoError(t, err)
	assert.Equal(t, "alice", login.Username)
	authed := withToken(ctx, login.Token)

	list, err := client.ListStudents(authed, &gradebook.ListStudentsRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Students)

	added, err := client.AddStudent(authed, &gradebook.AddStudentRequest{Name: "An"})
	require.NoError(t, err)
	assert.Nil(t, added.Student.Scores.GK)

	seven := 7.0
	_, err = client.UpdateScores(authed, &gradebook.UpdateScoresRequest{
		ID:     added.Student.ID,
		Scores: model.ScoresPatch{model.ScoreGK: &seven, model.ScoreCK: &seven},
	})
	require.NoError(t, err)

	updated, err := client.UpdateScores(authed, &gradebook.UpdateScoresRequest{
		ID:     added.Student.ID,
		Scores: model.ScoresPatch{model.ScoreCK: nil},
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Student.Scores.GK)
	assert.Equal(t, 7.0, *updated.Student.Scores.GK)
	assert.Nil(t, updated.Student.Scores.CK)

	_, err = client.DeleteStudent(authed, &gradebook.DeleteStudentRequest{ID: added.Student.ID})
	require.NoError(t, err)

	_, err = client.DeleteStudent(authed, &gradebook.DeleteStudentRequest{ID: added.Student.ID})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestRouter_AuthCodes(t *testing.T) {
	t.Parallel()

	client := gradebook.NewClient(startServer(t))
	ctx := context.Background()

	_, err := client.ListStudents(ctx, &gradebook.ListStudentsRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = client.ListStudents(withToken(ctx, "garbage"), &gradebook.ListStudentsRequest{})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	forged, err := token.NewJWT("other-secret").GenerateAccessToken("alice")
	require.NoError(t, err)
	_, err = client.ListStudents(withToken(ctx, forged), &gradebook.ListStudentsRequest{})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	_, err = client.Login(ctx, &gradebook.CredentialsRequest{Username: "nobody", Password: "x"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestRouter_RegisterPasswordTooLong(t *testing.T) {
	t.Parallel()

	client := gradebook.NewClient(startServer(t))

	_, err := client.Register(context.Background(), &gradebook.CredentialsRequest{
		Username: "alice",
		Password: strings.Repeat("p", password.MaxPasswordBytes+1),
	})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()

	hc := healthpb.NewHealthClient(startServer(t))

	resp, err := hc.Check(context.Background(), &healthpb.HealthCheckRequest{Service: gradebook.ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)
}
