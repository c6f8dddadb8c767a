package server

import (
	"log/slog"

	"github.com/egovernments/digit-config-service/internal/service"
)

// ConfigServer exposes the config service over HTTP/JSON.
type ConfigServer struct {
	svc    *service.Service
	logger *slog.Logger
}

// NewConfigServer returns a ConfigServer backed by the given service.
func NewConfigServer(svc *service.Service, logger *slog.Logger) *ConfigServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConfigServer{svc: svc, logger: logger}
}
