package carframe

// BoostPerSecond is the depletion rate of an actively firing boost
// component, in raw boost units per second. A full tank of 80 units empties
// in 0.93 seconds of continuous use; the constant is reverse-engineered
// from the wire format and must not be "corrected".
const BoostPerSecond = 80.0 / 0.93

// Derived slot names on boost component actors.
const (
	derivedBoostAmount     = "boostAmount"
	derivedBoostLastSample = "boostLastSample"
)

// updateBoostAmount recomputes the extrapolated boost amount for one boost
// component actor. The stream only samples the amount occasionally, so
// between samples the amount is evolved from the previous derived value:
// depleting while the ReplicatedActive byte is odd, frozen otherwise, and
// snapped back to the raw byte whenever a fresh sample arrives. The result
// is clamped at zero and both the float amount and the raw sample are
// written back to the actor's derived slots for the next frame.
//
// The function is a pure step of (current raw attributes, previous derived
// state, elapsed time); it runs for every live boost actor every frame,
// updated this frame or not.
func updateBoostAmount(state *ActorState, sampleIDs, activeIDs map[ObjectID]bool, delta float32) {
	attr, err := state.Attribute(sampleIDs)
	if err != nil {
		return // no sample observed yet, nothing to extrapolate from
	}
	sampled, err := attr.AsByte()
	if err != nil {
		return
	}

	amount := float64(sampled)
	prevSample, hadSample := state.Derived[derivedBoostLastSample]
	if hadSample && byte(prevSample) == sampled {
		// No new sample; continue from the previous derived value.
		amount = state.Derived[derivedBoostAmount]
	}

	if active, err := state.Attribute(activeIDs); err == nil {
		if b, err := active.AsByte(); err == nil && b%2 == 1 {
			amount -= float64(delta) * BoostPerSecond
		}
	}
	if amount < 0 {
		amount = 0
	}

	state.Derived[derivedBoostAmount] = amount
	state.Derived[derivedBoostLastSample] = float64(sampled)
}
