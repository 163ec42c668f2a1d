package endpoints

import (
	"context"

	"github.com/labdecoder/labdecoder/internal/api"
	"github.com/labdecoder/labdecoder/internal/metrics"
)

// Config holds dependencies needed by some endpoints.
type Config struct {
	PingKnowledge func(ctx context.Context) error
	Stats         func() metrics.Snapshot
}

// All returns all endpoint instances.
func All(cfg Config) []api.Endpoint {
	return []api.Endpoint{
		&HealthEndpoint{},
		&ReadyEndpoint{PingKnowledge: cfg.PingKnowledge},
		&StatsEndpoint{Stats: cfg.Stats},

		&UploadEndpoint{},
		&ExplainEndpoint{},
		&AskEndpoint{},
		&SummaryEndpoint{},
		&ClearEndpoint{},
	}
}
