// Package platform provides the filesystem primitives shared by the pipeline
// stages: mode-preserving file copies, parent-creating writes, snapshot
// replacement of whole directory trees and chmod that degrades to a no-op on
// Windows.
package platform
