package main

import (
	"k-stock-insight/src/config"
	"k-stock-insight/src/interfaces"
	"k-stock-insight/src/logger"
	"k-stock-insight/src/models"
	"k-stock-insight/src/network"
	"k-stock-insight/src/storage"
	"k-stock-insight/src/store"
	"k-stock-insight/src/utils"
)

// -----------------------------------------------------------------------------

// setupStore builds the API client for the resolved base URL and the store
// on top of it.
func setupStore(conf *config.Config) (*store.Store, error) {
	clientLogger := logger.NewLogger(conf.MConfig, "APIClient")
	client, err := network.NewAPIClient(conf.BaseURL(), conf.Network, conf.Timeout(), clientLogger)
	if err != nil {
		return nil, err
	}
	return store.New(client, logger.NewLogger(conf.MConfig, "APIStore")), nil
}

// -----------------------------------------------------------------------------

// setupDatabase initializes the snapshot archive. It returns nil when storage
// is disabled.
func setupDatabase(config *models.MConfig, appLogger *logger.Logger) (interfaces.IDatabase, error) {
	if !config.Storage.Enabled {
		appLogger.Info("Snapshot archive disabled")
		return nil, nil
	}

	db, err := storage.NewDatabase(config, logger.NewLogger(config, "Storage"))
	if err != nil {
		appLogger.Error("Failed to init db: %v", err)
		return nil, err
	}
	if err := db.Initialize(); err != nil {
		appLogger.Error("Failed to migrate db: %v", err)
		return nil, err
	}
	return db, nil
}

// -----------------------------------------------------------------------------

func setupArchiver(config *models.MConfig, db interfaces.IDatabase) *storage.Archiver {
	return storage.NewArchiver(db, logger.NewLogger(config, "Archiver"), storage.DefaultQueueSize)
}

// -----------------------------------------------------------------------------

func setupScheduler(config *models.MConfig, apiStore *store.Store) *utils.RefreshScheduler {
	return utils.NewRefreshScheduler(config.Refresh, apiStore.RefreshAll, logger.NewLogger(config, "RefreshScheduler"))
}
