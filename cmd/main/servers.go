package main

import (
	"fmt"
	"net"

	"k-stock-insight/src/config"
	pb "k-stock-insight/src/grpc_control"
	"k-stock-insight/src/interfaces"
	"k-stock-insight/src/logger"
	"k-stock-insight/src/server"
	"k-stock-insight/src/store"

	"google.golang.org/grpc"
)

// -----------------------------------------------------------------------------

// startServers orchestrates the startup of all server components
func startServers(
	apiStore *store.Store,
	db interfaces.IDatabase,
	config *config.Config,
	appLogger *logger.Logger,
) (interfaces.IDataExchanger, *grpc.Server) {

	// 1. Relay server, fed by store events
	srv := server.NewRelayServer(config.MConfig, apiStore, db, logger.NewLogger(config.MConfig, "RelayServer"))
	apiStore.AddListener(srv.Publish)

	go func() {
		if err := srv.Start(); err != nil {
			appLogger.Error("Relay server failed: %v", err)
		}
	}()

	// 2. gRPC Control Server
	grpcServer := grpc.NewServer()
	controlService := pb.NewControlService(apiStore, logger.NewLogger(config.MConfig, "ControlService"))
	pb.RegisterControlServer(grpcServer, controlService)

	if config.GrpcPort == 0 {
		appLogger.Info("gRPC Control Server disabled")
		return srv, grpcServer
	}

	go func() {
		addr := fmt.Sprintf("%s:%d", config.GrpcHost, config.GrpcPort)
		lis, err := net.Listen("tcp", addr)
		if err != nil {
			appLogger.Error("failed to listen for gRPC: %v", err)
			return
		}

		appLogger.Info("Starting gRPC Control Server on %s", addr)
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Error("failed to serve gRPC: %v", err)
		}
	}()

	return srv, grpcServer
}
