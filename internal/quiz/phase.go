package quiz

// Phase is the state of a quiz Controller.
type Phase int

const (
	PhaseLoading    Phase = iota // Questions and progress not yet loaded
	PhaseSelecting               // Choosing the next question
	PhasePresenting              // Waiting for an answer
	PhaseAnswered                // Showing answer feedback
	PhaseFinished                // No open questions left
	PhaseError                   // Question bank failed to load
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseSelecting:
		return "selecting"
	case PhasePresenting:
		return "presenting"
	case PhaseAnswered:
		return "answered"
	case PhaseFinished:
		return "finished"
	case PhaseError:
		return "error"
	}
	return "unknown"
}

// FinishReason tells why a quiz reached PhaseFinished.
type FinishReason int

const (
	NotFinished FinishReason = iota
	// Completed means every question is mastered.
	Completed
	// Locked means unmastered questions remain but none is due yet.
	Locked
)

func (r FinishReason) String() string {
	switch r {
	case Completed:
		return "completed"
	case Locked:
		return "locked"
	}
	return "not finished"
}
