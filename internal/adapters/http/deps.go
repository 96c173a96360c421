package http

import (
	"github.com/nats-io/nats.go"

	"github.com/samirrijal/geowatch/internal/core/ports"
	"github.com/samirrijal/geowatch/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Dashboard *usecases.DashboardService
	Archive   *usecases.ArchiveService
	Export    *usecases.ExportService
	Sessions  ports.SessionStore
	NATS      *nats.Conn
}
