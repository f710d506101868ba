//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"

	"videomind/internal/config"
)

// InitializeApplication assembles a full Application from configuration.
func InitializeApplication(ctx context.Context, cfg *config.Config) (*Application, error) {
	wire.Build(
		ProvideLogger,
		ProvideJobDAO,
		ProvideDownloader,
		ProvideTranscriber,
		ProvideSummarizer,
		ProvideAnswerer,
		ProvideCaptioner,
		ProvideFrameStore,
		ProvideOrchestrator,
		ProvideDispatcher,
		ProvideMonitor,
		ProvideServer,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
