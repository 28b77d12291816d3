// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.ridx.dev/ridx/internal/adapters/config"
	_ "go.ridx.dev/ridx/internal/adapters/logger"
	_ "go.ridx.dev/ridx/internal/adapters/watcher"
	// Register app nodes.
	_ "go.ridx.dev/ridx/internal/app"
)
