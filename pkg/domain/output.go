package domain

// Output is the ordered sequence of rendered segments produced by one
// Start or Submit call, plus the session's resulting posture. It is the only
// thing the surrounding shell sees.
type Output struct {
	// Segments holds the interpolated text runs emitted since the last call,
	// in render order.
	Segments []string `json:"segments,omitempty"`

	// AwaitingInput is true when the session parked and the next Submit will
	// be matched against options or fed to a pending function call.
	AwaitingInput bool `json:"awaiting_input,omitempty"`

	// Exited is true once the session reached its terminal state.
	Exited bool `json:"exited,omitempty"`
}

// Append adds a rendered segment, dropping empty runs.
func (o *Output) Append(segment string) {
	if segment == "" {
		return
	}
	o.Segments = append(o.Segments, segment)
}
