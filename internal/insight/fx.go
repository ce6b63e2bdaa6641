package insight

import "go.uber.org/fx"

var Module = fx.Module("insight.client",
	fx.Provide(NewClient),
)
