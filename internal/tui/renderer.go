package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/speedread/internal/model"
)

// ErrRendererClosed is returned once the program has exited.
var ErrRendererClosed = errors.New("renderer closed")

type sender interface {
	Send(msg tea.Msg)
}

// programRenderer forwards scheduler output into a running tea.Program.
type programRenderer struct {
	p    sender
	done <-chan struct{}
}

func (r *programRenderer) RenderUnit(frame model.Frame) error {
	return r.send(frameMsg(frame))
}

func (r *programRenderer) RenderStatus(status model.Status) error {
	return r.send(statusMsg(status))
}

func (r *programRenderer) send(msg tea.Msg) error {
	select {
	case <-r.done:
		return ErrRendererClosed
	default:
	}
	r.p.Send(msg)
	return nil
}
