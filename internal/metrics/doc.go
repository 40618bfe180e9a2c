// Package metrics provides the observability hooks of sitegen.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so call sites never check for nil:
//
//	type Generator struct {
//		recorder metrics.Recorder
//	}
//
//	g.recorder.ObserveBuildDuration(time.Since(start))
//
// PrometheusRecorder registers its collectors on a caller-supplied registry;
// HTTPHandler serves that registry on the admin listener.
package metrics
