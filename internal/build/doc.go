// Package build provides the canonical build pipeline for sitegen.
//
// A build syncs the optional git content source, loads posts and pages,
// assembles the route table and prerenders it into the dist directory.
// The CLI and the daemon both route through Service.
package build
