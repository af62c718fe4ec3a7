package grpc_control

import (
	"context"
	"encoding/json"

	"k-stock-insight/src/interfaces"
	"k-stock-insight/src/logger"
	"k-stock-insight/src/models"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ControlService implements the ControlServer interface
type ControlService struct {
	Source interfaces.IStateSource
	Logger *logger.Logger
}

// NewControlService creates a new instance of ControlService
func NewControlService(source interfaces.IStateSource, log *logger.Logger) *ControlService {
	return &ControlService{
		Source: source,
		Logger: log,
	}
}

// -----------------------------------------------------------------------------

func (s *ControlService) Refresh(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	ok := s.Source.RefreshAll(ctx)
	s.Logger.Info("gRPC: Refresh finished (success=%v)", ok)

	return structpb.NewStruct(map[string]interface{}{"success": ok})
}

// -----------------------------------------------------------------------------

func (s *ControlService) GetState(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	st, err := stateStruct(s.Source.Snapshot())
	if err != nil {
		s.Logger.Error("gRPC: Failed to encode state: %v", err)
		return nil, status.Errorf(codes.Internal, "encode state: %v", err)
	}
	return st, nil
}

// -----------------------------------------------------------------------------

func (s *ControlService) ClearError(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	name := req.GetFields()["category"].GetStringValue()
	if name == "" {
		s.Source.ClearError()
		s.Logger.Info("gRPC: Cleared all error slots")
		return &emptypb.Empty{}, nil
	}

	cat := models.MCategory(name)
	if !cat.IsValid() {
		return nil, status.Errorf(codes.InvalidArgument, "unknown category %q", name)
	}

	s.Source.ClearError(cat)
	s.Logger.Info("gRPC: Cleared %s error slot", cat)
	return &emptypb.Empty{}, nil
}

// -----------------------------------------------------------------------------

// stateStruct converts the state through its JSON form, so field names match
// the relay's /api/state body.
func stateStruct(state models.MStoreState) (*structpb.Struct, error) {
	b, err := json.Marshal(state)
	if err != nil {
		return nil, err
	}
	st := &structpb.Struct{}
	if err := protojson.Unmarshal(b, st); err != nil {
		return nil, err
	}
	return st, nil
}
