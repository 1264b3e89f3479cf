package evaltrace

// nopTracer discards every event, for zero overhead when tracing is off.
type nopTracer struct{}

func (nopTracer) Emit(*Event)  {}
func (nopTracer) Flush() error { return nil }
func (nopTracer) Close() error { return nil }
func (nopTracer) Level() Level { return LevelOff }
func (nopTracer) Enabled() bool { return false }

// Nop is the package-level no-op Tracer, used wherever a caller does not
// configure tracing explicitly.
var Nop Tracer = nopTracer{}
