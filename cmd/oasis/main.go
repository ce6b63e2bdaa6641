package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/majilabs/oasis/internal/auth"
	"github.com/majilabs/oasis/internal/config"
	"github.com/majilabs/oasis/internal/insight"
	"github.com/majilabs/oasis/internal/migration"
	"github.com/majilabs/oasis/internal/observability"
	"github.com/majilabs/oasis/internal/recommendation"
	"github.com/majilabs/oasis/internal/reservoir"
	"github.com/majilabs/oasis/internal/server"
	"github.com/majilabs/oasis/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,

		// Functional domains
		auth.Module,
		reservoir.Module,
		insight.Module,
		recommendation.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
