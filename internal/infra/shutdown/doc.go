// Package shutdown coordinates process teardown.
//
// Resources opened while a command runs (the badger session store, the
// shell's metrics listener and config watcher) register a hook; hooks run
// once, newest first, when the command finishes or the process is
// interrupted.
//
//	ctx, stop := shutdown.SignalContext(context.Background())
//	defer stop()
package shutdown
