package grpcapi

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/switch-game/internal/switchgame"
)

// Server implements MoveResolverServer on top of a switchgame.Resolver.
type Server struct {
	Resolver      *switchgame.Resolver
	Log           zerolog.Logger
	DefaultTrials int
	MaxTrials     int
}

var _ MoveResolverServer = (*Server)(nil)

// NewGRPCServer builds a grpc.Server with the resolver, health service and
// request logging registered. Health reports SERVING immediately.
func NewGRPCServer(srv *Server, opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(logInterceptor(srv.Log)))
	gs := grpc.NewServer(opts...)
	RegisterMoveResolverServer(gs, srv)

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(gs, hs)
	return gs
}

func logInterceptor(log zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		log.Info().
			Str("method", info.FullMethod).
			Str("code", status.Code(err).String()).
			Dur("duration", time.Since(start)).
			Msg("rpc")
		return resp, err
	}
}

func (s *Server) resolver() *switchgame.Resolver {
	if s.Resolver == nil {
		return switchgame.NewResolver(nil)
	}
	return s.Resolver
}

func movesFrom(req *structpb.Struct) (m1, m2 switchgame.Move, err error) {
	fields := req.GetFields()
	s1, s2 := fields["p1"].GetStringValue(), fields["p2"].GetStringValue()
	if s1 == "" || s2 == "" {
		return 0, 0, status.Error(codes.InvalidArgument, "missing field p1/p2")
	}
	if m1, err = switchgame.ParseMove(s1); err != nil {
		return 0, 0, status.Error(codes.InvalidArgument, "p1: "+err.Error())
	}
	if m2, err = switchgame.ParseMove(s2); err != nil {
		return 0, 0, status.Error(codes.InvalidArgument, "p2: "+err.Error())
	}
	return m1, m2, nil
}

func (s *Server) Resolve(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	m1, m2, err := movesFrom(req)
	if err != nil {
		return nil, err
	}
	round := switchgame.NewRound()
	if err := round.Submit(switchgame.Player1, m1); err != nil {
		return nil, toStatus(err)
	}
	if err := round.Submit(switchgame.Player2, m2); err != nil {
		return nil, toStatus(err)
	}
	out, err := round.Resolve(s.resolver())
	if err != nil {
		return nil, toStatus(err)
	}

	obligations := make([]any, 0, 2)
	for _, ob := range out.Obligations() {
		obligations = append(obligations, map[string]any{
			"debtor":   string(ob.Debtor),
			"creditor": string(ob.Creditor),
		})
	}
	outcome := map[string]any{
		"kind":       string(out.Kind),
		"losers":     playersToList(out.Losers),
		"next_state": string(out.NextState),
	}
	if out.HasWinner() {
		outcome["winner"] = string(out.Winner)
	}
	return structpb.NewStruct(map[string]any{
		"round_id":    round.ID,
		"p1":          m1.String(),
		"p2":          m2.String(),
		"outcome":     outcome,
		"obligations": obligations,
	})
}

func (s *Server) Simulate(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	m1, m2, err := movesFrom(req)
	if err != nil {
		return nil, err
	}
	trials := s.DefaultTrials
	if v, ok := req.GetFields()["trials"]; ok {
		f := v.GetNumberValue()
		if f != math.Trunc(f) {
			return nil, status.Error(codes.InvalidArgument, "trials must be an integer")
		}
		trials = int(f)
	}
	if trials <= 0 || (s.MaxTrials > 0 && trials > s.MaxTrials) {
		return nil, status.Errorf(codes.InvalidArgument, "trials must be in 1..%d", s.MaxTrials)
	}

	stats, err := switchgame.Simulate(m1, m2, trials, s.resolver().RNG)
	if err != nil {
		return nil, toStatus(err)
	}
	kinds := make(map[string]any, len(stats.Kinds))
	for k, n := range stats.Kinds {
		kinds[string(k)] = n
	}
	return structpb.NewStruct(map[string]any{
		"p1":             m1.String(),
		"p2":             m2.String(),
		"trials":         stats.Trials,
		"kinds":          kinds,
		"player1_wins":   stats.Player1Wins,
		"player2_wins":   stats.Player2Wins,
		"decided_rounds": stats.DecidedRounds,
		"player1_share":  stats.Player1Share,
		"z_score":        stats.ZScore,
		"fair":           stats.Fair(switchgame.Z99),
	})
}

func playersToList(ps []switchgame.Player) []any {
	out := make([]any, len(ps))
	for i, p := range ps {
		out[i] = string(p)
	}
	return out
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, switchgame.ErrInvalidMove),
		errors.Is(err, switchgame.ErrInvalidTrials),
		errors.Is(err, switchgame.ErrUnknownPlayer),
		errors.Is(err, switchgame.ErrAlreadySubmitted):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, switchgame.ErrRoundNotReady),
		errors.Is(err, switchgame.ErrRoundAlreadyFinal):
		return status.Error(codes.FailedPrecondition, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}
