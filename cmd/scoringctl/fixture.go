package main

import (
	"github.com/adaptlearning/scoring"
	"github.com/adaptlearning/scoring/internal/cli"
	"github.com/adaptlearning/scoring/internal/eventbus"
)

// fixture is the in-memory course built from a manifest for the
// validate/status/query commands to inspect. None of these commands talk
// to a live Adapt runtime or a configured Postgres store; they build the
// same registry/total-set graph a host would, purely to report on it.
type fixture struct {
	reg   *scoring.Registry
	total *scoring.TotalSet
	bus   *eventbus.Bus
}

// loadFixture reads the manifest at path, builds its content-model tree,
// registers the configured scoring sets, and constructs the course's
// TotalSet with the manifest's (or config's) passmark.
func loadFixture(path string, passmarkDefaults cli.PassmarkConfig) (*fixture, error) {
	manifest, err := cli.LoadManifest(path)
	if err != nil {
		return nil, cli.SchemaParseError("loading manifest", err)
	}

	bus := eventbus.New()
	reg := scoring.NewRegistry(bus)

	root, index := manifest.BuildTree(bus)

	if _, err := manifest.BuildScoringSets(reg, bus, nil, index); err != nil {
		return nil, cli.SchemaParseError("building scoring sets", err)
	}

	passmark := manifest.ResolvePassmark(passmarkDefaults)
	total, err := scoring.NewTotalSet(reg, bus, nil, root, passmark)
	if err != nil {
		return nil, cli.SchemaParseError("building total set", err)
	}

	return &fixture{reg: reg, total: total, bus: bus}, nil
}

func manifestPath(flagValue string) string {
	return resolveString(flagValue, cfg.Schema, "course.yaml")
}
