package metrics

import "go.uber.org/fx"

// Module provides the metrics registry to the fx container.
var Module = fx.Provide(NewRegistry)
