// Package trace provides lightweight tracing for errfmt runs.
//
// Tracing is the tool's diagnostic log: it records the run's stages
// (compile, read, match, render) and, at debug level, the outcome of every
// input line, so a template that silently matches nothing can be debugged.
//
// # Usage
//
//	errfmt -p php --trace=- --trace-level=debug < out.txt
//
// # Levels
//
//   - LevelOff: No tracing
//   - LevelError: Only errors (fatal template and IO failures)
//   - LevelPhase: Driver and per-input boundaries
//   - LevelDetail: Stage spans
//   - LevelDebug: Everything including per-line match results
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeStage, "match", parentID)
//	defer span.End("")
package trace
