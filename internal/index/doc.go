// Package index builds the three registry indexes the website reads: the
// skills index (categories, subcategories and skill records derived from the
// canonical skill tree), the agents index (synchronized agent manifests with
// their personality documents) and the bundles index (packaged bundles found
// in a sibling directory). Every build is a full rebuild written as JSON.
package index
