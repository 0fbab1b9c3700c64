package check

import "time"

// Status is the progress state of one check within a run.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	// StatusFailed means the check produced an EngineError.
	StatusFailed Status = "failed"
)

// Event reports progress of one check.
type Event struct {
	Check    string
	Status   Status
	Problems int
	Elapsed  time.Duration
	Err      error
}

// ProgressSink receives run events. Implementations must be safe for
// concurrent use.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events to a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(ev Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- ev
}
