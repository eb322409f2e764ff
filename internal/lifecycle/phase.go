// Package lifecycle drives registered scoring sets through the cooperative
// phase engine described in spec.md §4.7: a Controller turns content-model
// and set-trigger events into phase-queue enqueues, and a Renderer drains
// those queues in fixed phase order on a throttled tick, the way a real
// Adapt framework's rendering loop would.
package lifecycle

// Phase names one stage of the per-frame lifecycle drain (spec.md §4.7).
// Phases always drain in the fixed order declared by Phases.
type Phase int

const (
	PhaseInit Phase = iota
	PhaseRestore
	PhaseStart
	PhaseReset
	PhaseRestart
	PhaseLeave
	PhaseVisit
	PhaseUpdate
)

// Phases lists every phase in drain order.
var Phases = []Phase{
	PhaseInit, PhaseRestore, PhaseStart, PhaseReset, PhaseRestart, PhaseLeave, PhaseVisit, PhaseUpdate,
}

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseRestore:
		return "restore"
	case PhaseStart:
		return "start"
	case PhaseReset:
		return "reset"
	case PhaseRestart:
		return "restart"
	case PhaseLeave:
		return "leave"
	case PhaseVisit:
		return "visit"
	case PhaseUpdate:
		return "update"
	default:
		return "unknown"
	}
}
