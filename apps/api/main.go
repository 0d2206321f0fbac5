package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/smallbiznis/teleforge/internal/logger"
	"github.com/smallbiznis/teleforge/internal/server"
)

func main() {
	app := fx.New(
		logger.Module,
		fx.Provide(RegisterSnowflake),

		// server.Module pulls in config, observability, clock and the
		// generation services.
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
