// Package config resolves the workspace layout the pipeline operates on.
// Values come from minions.yaml in the workspace root, MINIONS_* environment
// variables and command-line flags, layered through Viper.
package config
