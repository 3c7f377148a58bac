package stream

import "go.uber.org/fx"

// Module provides the event broadcaster.
var Module = fx.Provide(New)
