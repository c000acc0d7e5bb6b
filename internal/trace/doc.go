// Package trace records what the manipulation engine does: project
// operations, file parses, every applied edit and wrapper creation.
//
// A Tracer is threaded through context:
//
//	ctx = trace.WithTracer(ctx, tr)
//	ctx, sp := trace.Start(ctx, nil, trace.ScopeProject, "script")
//	defer sp.End("")
//
// Spans begun with Start nest under the span already in the context.
//
// Scopes, from coarse to fine: ScopeProject, ScopeFile, ScopeEdit,
// ScopeNode. The level decides which of them are emitted; LevelDebug adds
// per-node events.
//
// Implementations: Nop, StreamTracer (text or NDJSON to a writer),
// RingTracer (last N events in memory) and Tee, which combines them.
package trace
