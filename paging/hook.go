package paging

// HookPos defines the enum of possible hooking positions.
type HookPos struct {
	Name string
}

// HookPosStep is triggered after a reference is serviced. The Item is the
// recorded Step and the Detail is the timestep.
var HookPosStep = &HookPos{Name: "Step"}

// HookPosEvict is triggered when a page is replaced. The Item is an
// Eviction and the Detail is the timestep.
var HookPosEvict = &HookPos{Name: "Evict"}

// Eviction describes a page replacement.
type Eviction struct {
	Slot    int
	Evicted PageID
	Loaded  PageID
}

// HookCtx is the context that holds all the information about the site that a
// hook is triggered.
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   any
	Detail any
}

// Hookable defines an object that accept Hooks.
type Hookable interface {
	// AcceptHook registers a hook.
	AcceptHook(hook Hook)

	// NumHooks returns the number of hooks registered.
	NumHooks() int

	// Hooks returns all the hooks registered.
	Hooks() []Hook
}

// Hook is invoked by a hookable object. Hooks observe; they must not change
// the simulation.
type Hook interface {
	Func(ctx HookCtx)
}

// HookableBase provides the hook bookkeeping for types that implement
// Hookable.
type HookableBase struct {
	hookList []Hook
}

// NumHooks returns the number of hooks registered.
func (h *HookableBase) NumHooks() int {
	return len(h.hookList)
}

// Hooks returns all the hooks registered.
func (h *HookableBase) Hooks() []Hook {
	return h.hookList
}

// AcceptHook registers a hook. Registering the same hook twice panics.
func (h *HookableBase) AcceptHook(hook Hook) {
	for _, registered := range h.hookList {
		if registered == hook {
			panic("duplicated hook")
		}
	}

	h.hookList = append(h.hookList, hook)
}

// InvokeHook triggers the registered hooks in registration order.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hookList {
		hook.Func(ctx)
	}
}
