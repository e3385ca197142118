package main

import (
	"fmt"

	"github.com/gogpu/cluster/internal/config"
	"github.com/gogpu/cluster/socketcan"
	"github.com/gogpu/cluster/telemetry"
)

// source is a telemetry source the program owns and must close.
type source interface {
	telemetry.Source
	Close() error
}

func openSource(cfg *config.Config) (source, error) {
	switch cfg.Source {
	case config.SourceSim:
		return telemetry.NewSimulator(cfg.Sim.Seed, cfg.Sim.Period), nil
	case config.SourceSocketCAN:
		conn, err := socketcan.Dial(cfg.Interface, socketcan.WithReadTimeout(cfg.ReadTimeout))
		if err != nil {
			return nil, err
		}
		return conn, nil
	default:
		return nil, fmt.Errorf("%w: source %q", config.ErrInvalid, cfg.Source)
	}
}
