package healthcheck

// Outcome models the overall result of a single check period.
type Outcome uint8

//go:generate stringer -type Outcome -trimprefix Outcome

const (
	// OutcomePass is when every supervised activity reported itself healthy.
	OutcomePass Outcome = iota
	// OutcomeFail is when one or more supervised activities reported a failure.
	OutcomeFail
)

const (
	markerPass uint32 = 0xdeadbeef
	markerFail uint32 = 0xbeefdead
)

// Marker returns the debugger-visible marker value for the outcome.
//
// Platform adapters that signal health through a register or a memory word write this value.
func (o Outcome) Marker() uint32 {
	if o == OutcomePass {
		return markerPass
	}
	return markerFail
}
