package generator

import (
	"github.com/smallbiznis/teleforge/internal/generator/service"
	"go.uber.org/fx"
)

var Module = fx.Module("generator.service",
	fx.Provide(service.NewService),
)
