package context

import "sync"

// globalContext holds the singleton instance used by the interactive shell.
var globalContext *GridContext

// globalContextMu protects access to the global context instance.
var globalContextMu sync.RWMutex

// globalContextOnce ensures singleton initialization happens only once.
var globalContextOnce sync.Once

// GetGlobalContext returns the global context singleton, creating it on
// first use.
func GetGlobalContext() *GridContext {
	globalContextOnce.Do(func() {
		if globalContext == nil {
			globalContext = New()
		}
	})

	globalContextMu.RLock()
	defer globalContextMu.RUnlock()
	return globalContext
}

// SetGlobalContext replaces the global context instance. Useful for tests.
func SetGlobalContext(ctx *GridContext) {
	globalContextMu.Lock()
	defer globalContextMu.Unlock()
	globalContext = ctx
}

// ResetGlobalContext clears the singleton so the next GetGlobalContext call
// creates a fresh context.
func ResetGlobalContext() {
	globalContextMu.Lock()
	defer globalContextMu.Unlock()
	globalContext = nil
	globalContextOnce = sync.Once{}
}
