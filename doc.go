// Package mapscript interprets declarative map-styling scripts: ordered
// sequences of `name key=value` directives that configure a rendering
// session, load map data sources and invoke external tooling.
//
// Scripts are applied strictly in file order against a mutable Session and
// abort at the first failing directive, leaving every prior effect in
// place.  Directive handlers are pluggable service layers:
//
//   - map/nav        – working directory and path resolution mode
//   - map/settings   – named rendering settings, last write wins
//   - map/layers     – data source layers and geographic bounds
//   - system/exec    – external program and script invocation
//   - system/storage – archive packaging of generated artifacts
//
// Mapscript is designed to be embedded in host applications.  End-users
// typically interact via the high-level Service façade exposed by the root
// package:
//
//	srv := mapscript.New()
//	rt := srv.Runtime()
//	report, sess, err := rt.RunScript(ctx, "render.mscript")
//
// For more details see the individual sub-packages.
package mapscript
