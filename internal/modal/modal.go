// Package modal renders a parent-controlled dialog. The modal keeps no state
// of its own: the parent owns the open flag and decides what closing means.
package modal

// Props are the modal's inputs.
type Props struct {
	Open    bool
	OnClose func()
}

// View is a rendered, open modal.
type View struct {
	Title      string `json:"title"`
	Body       string `json:"body"`
	CloseLabel string `json:"closeLabel"`

	onClose func()
}

const (
	title      = "this is a modal"
	body       = "This is for scalability."
	closeLabel = "Close"
)

// Render returns nil when the modal is closed.
func Render(p Props) *View {
	if !p.Open {
		return nil
	}
	return &View{
		Title:      title,
		Body:       body,
		CloseLabel: closeLabel,
		onClose:    p.OnClose,
	}
}

// ClickOverlay handles a click anywhere on the overlay.
func (v *View) ClickOverlay() { v.close() }

// ClickClose handles a click on the close control.
func (v *View) ClickClose() { v.close() }

func (v *View) close() {
	if v.onClose != nil {
		v.onClose()
	}
}
