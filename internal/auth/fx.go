package auth

import (
	"github.com/majilabs/oasis/internal/auth/repository"
	"github.com/majilabs/oasis/internal/auth/service"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
