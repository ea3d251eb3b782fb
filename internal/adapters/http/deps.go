package http

import (
	"github.com/nats-io/nats.go"

	"github.com/unaigarro/mapstamp/internal/adapters/postgres"
	"github.com/unaigarro/mapstamp/internal/adapters/valkey"
	"github.com/unaigarro/mapstamp/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Maps      *usecases.MapService
	Settings  *usecases.SettingService
	Snapshots *usecases.SnapshotService
	NATS      *nats.Conn
	DB        *postgres.DB
	Cache     *valkey.Cache
}
