// Package site builds the documentation site's configuration record: identity,
// locales, documentation instances, blog, theme, navbar and footer.
//
// Build returns the canonical record. Validate checks its cross references
// (unique instance ids and routes, sidebar links that resolve, locale defaults),
// and Document converts it into the map the static-site generator consumes.
// Nothing in this package touches the file system.
package site
