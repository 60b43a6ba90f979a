package exam

import ex "github.com/abhisek/sbfquiz/internal/exam"

// preparedMsg is sent when the attempt has been composed.
type preparedMsg struct {
	Session *ex.Session
	Err     error
}

// tickMsg carries the remaining seconds after a timer tick.
type tickMsg struct {
	Remaining int
}

// finishedMsg is sent once when the attempt ends by any path.
type finishedMsg struct {
	Result ex.Result
}
