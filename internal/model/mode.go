package model

// Mode is the playback run state.
type Mode int

const (
	ModeRunning Mode = iota
	ModePaused
	ModeQuit
	ModeFinished
)

func (m Mode) String() string {
	switch m {
	case ModeRunning:
		return "running"
	case ModePaused:
		return "paused"
	case ModeQuit:
		return "quit"
	case ModeFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions are possible.
func (m Mode) Terminal() bool {
	return m == ModeQuit || m == ModeFinished
}

// Command is a control request produced by the input listener.
type Command int

const (
	CommandTogglePause Command = iota + 1
	CommandPause
	CommandResume
	CommandQuit
	CommandIncreaseRate
	CommandDecreaseRate
)

func (c Command) String() string {
	switch c {
	case CommandTogglePause:
		return "toggle-pause"
	case CommandPause:
		return "pause"
	case CommandResume:
		return "resume"
	case CommandQuit:
		return "quit"
	case CommandIncreaseRate:
		return "increase-rate"
	case CommandDecreaseRate:
		return "decrease-rate"
	default:
		return "unknown"
	}
}
