// Package agents synchronizes per-agent source directories into the
// registry's agent tree. For every agent it fills in missing personality
// documents from default templates, copies toolbox definition pairs and
// writes an agent manifest summarizing both.
package agents
