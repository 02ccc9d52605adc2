package branding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmbeddedDefaults(t *testing.T) {
	assert.Equal(t, "minions", CLIName())
	assert.Equal(t, "MINIONS", EnvPrefix())
	assert.Equal(t, "minions.yaml", ConfigFile())
}

func TestEnvVar(t *testing.T) {
	assert.Equal(t, "MINIONS_LOG_LEVEL", EnvVar("log_level"))
	assert.Equal(t, "MINIONS_ROOT", EnvVar("root"))
}
