// Package frontmatter parses the restricted key-value header that opens
// registry documents: a "---" line, "key: value" lines and a closing "---"
// line. It is intentionally not a YAML parser; ParseDocument only borrows a
// YAML pass to fill keys the restricted dialect cannot express.
package frontmatter
