// Package prerender writes one static HTML document per route into the dist
// directory of a built single-page app, together with the 404 page, an
// optional sitemap and robots.txt.
//
// Incremental builds keep a manifest of content hashes next to the output
// (see ManifestFile) and leave unchanged files untouched.
package prerender
