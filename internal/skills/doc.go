// Package skills rebuilds the canonical skill tree. It collects every
// toolbox-owned SKILL.md document in the repository and copies it verbatim to
// <dest>/<category>/<subcategory>/<name>.md, where the three segments come
// from the document's header or fall back to defaults.
package skills
