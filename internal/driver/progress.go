package driver

import "time"

// Stage is a step of processing one input.
type Stage string

const (
	StageRead  Stage = "read"
	StageMatch Stage = "match"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the input is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the input is in the reported stage.
	StatusWorking Status = "working"
	// StatusDone indicates the input was fully processed.
	StatusDone Status = "done"
	// StatusError indicates the input failed.
	StatusError Status = "error"
)

// Event reports progress for one input.
type Event struct {
	// Index is the position of the input in the run; names may repeat.
	Index   int
	Input   string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
	// Lines is set once the input was read; Matched only on StatusDone.
	Lines   int
	Matched int
}

// ProgressSink consumes progress events. OnEvent is called from the
// goroutine running the driver.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
