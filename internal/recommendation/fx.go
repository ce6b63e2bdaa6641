package recommendation

import (
	"github.com/majilabs/oasis/internal/recommendation/service"
	"go.uber.org/fx"
)

var Module = fx.Module("recommendation.service",
	fx.Provide(service.New),
)
