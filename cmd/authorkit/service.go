package main

import (
	"github.com/artpar/authorkit/adapters/metrics"
	"github.com/artpar/authorkit/adapters/store"
	"github.com/artpar/authorkit/app"
	"github.com/artpar/authorkit/core/plugin"
	"github.com/artpar/authorkit/plugins"
	"github.com/artpar/authorkit/plugins/lint"
)

// newService builds a service with the built-in plugin set and the
// validators enabled by config.
func newService(collector *metrics.Collector, docs *store.Store) (*app.Service, error) {
	reg := plugin.NewRegistry(logger)
	if err := plugins.RegisterDefaults(reg); err != nil {
		return nil, err
	}
	if keys := cfg.Validation.RequiredKeys; len(keys) > 0 {
		if err := reg.Register(lint.RequiredKeys(keys...)); err != nil {
			return nil, err
		}
	}

	return app.New(app.Options{
		Logger:   logger,
		Registry: reg,
		Metrics:  collector,
		Store:    docs,
	}), nil
}
