package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.ridx.dev/ridx/internal/adapters/config"
	"go.ridx.dev/ridx/internal/adapters/logger"
	"go.ridx.dev/ridx/internal/adapters/watcher"
	"go.ridx.dev/ridx/internal/core/ports"
)

// NodeID is the unique identifier for the application components Graft node.
const NodeID graft.ID = "app.components"

// Components bundles the fully wired application for the CLI entry point.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*Components]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, config.NodeID, watcher.NodeID},
		Run: func(ctx context.Context) (*Components, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			w, err := graft.Dep[ports.Watcher](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{
				App:    New(loader, w, log),
				Logger: log,
			}, nil
		},
	})
}
