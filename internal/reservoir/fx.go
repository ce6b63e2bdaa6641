package reservoir

import (
	"github.com/majilabs/oasis/internal/reservoir/repository"
	"github.com/majilabs/oasis/internal/reservoir/service"
	"go.uber.org/fx"
)

var Module = fx.Module("reservoir.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
