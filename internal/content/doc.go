// Package content loads the site's editorial content: blog posts written as
// Markdown with YAML front matter, and the searchable page index. Content can
// live on disk, in a git repository synced before builds, or fall back to the
// copy embedded in the binary.
package content
