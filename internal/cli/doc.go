// Package cli defines the Cobra command tree for the minions CLI. Each file
// registers one top-level command (sync, index, build, config, version) with
// the root command. Commands delegate the pipeline work to the agents, skills
// and index packages and only handle flags and summary output.
package cli
