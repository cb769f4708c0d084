//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// x11Clipboard owns the CLIPBOARD selection through a hidden window and
// answers conversion requests for image/png until another client takes
// ownership.
type x11Clipboard struct {
	conn   *xgb.Conn
	window xproto.Window
	atoms  selectionAtoms

	mu  sync.RWMutex
	png []byte
}

type selectionAtoms struct {
	clipboard xproto.Atom
	targets   xproto.Atom
	png       xproto.Atom
}

func openBackend() (pngWriter, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	const mask = xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify
	if err := xproto.CreateWindowChecked(conn, screen.RootDepth, window, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOutput, screen.RootVisual, xproto.CwEventMask, []uint32{mask}).Check(); err != nil {
		conn.Close()
		return nil, err
	}
	atoms, err := internSelectionAtoms(conn)
	if err != nil {
		xproto.DestroyWindow(conn, window)
		conn.Close()
		return nil, err
	}
	c := &x11Clipboard{conn: conn, window: window, atoms: atoms}
	go c.serve()
	return c, nil
}

func internSelectionAtoms(conn *xgb.Conn) (selectionAtoms, error) {
	var atoms selectionAtoms
	for _, a := range []struct {
		name string
		dst  *xproto.Atom
	}{
		{"CLIPBOARD", &atoms.clipboard},
		{"TARGETS", &atoms.targets},
		{"image/png", &atoms.png},
	} {
		reply, err := xproto.InternAtom(conn, false, uint16(len(a.name)), a.name).Reply()
		if err != nil {
			return selectionAtoms{}, err
		}
		*a.dst = reply.Atom
	}
	return atoms, nil
}

func (c *x11Clipboard) writePNG(data []byte) error {
	c.mu.Lock()
	c.png = append([]byte(nil), data...)
	c.mu.Unlock()
	return xproto.SetSelectionOwnerChecked(c.conn, c.window, c.atoms.clipboard, xproto.TimeCurrentTime).Check()
}

func (c *x11Clipboard) serve() {
	for {
		ev, err := c.conn.WaitForEvent()
		if err != nil {
			return
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			c.answer(e)
		case xproto.SelectionClearEvent:
			c.mu.Lock()
			c.png = nil
			c.mu.Unlock()
		}
	}
}

func (c *x11Clipboard) answer(e xproto.SelectionRequestEvent) {
	property := e.Property
	if property == xproto.AtomNone {
		property = e.Target
	}
	c.mu.RLock()
	data := c.png
	c.mu.RUnlock()

	switch {
	case len(data) == 0:
		property = xproto.AtomNone
	case e.Target == c.atoms.targets:
		targets := atomBytes(c.atoms.targets, c.atoms.png)
		xproto.ChangeProperty(c.conn, xproto.PropModeReplace, e.Requestor, property,
			xproto.AtomAtom, 32, uint32(len(targets)/4), targets)
	case e.Target == c.atoms.png:
		xproto.ChangeProperty(c.conn, xproto.PropModeReplace, e.Requestor, property,
			c.atoms.png, 8, uint32(len(data)), data)
	default:
		property = xproto.AtomNone
	}

	notify := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  property,
	}
	xproto.SendEvent(c.conn, false, e.Requestor, 0, string(notify.Bytes()))
}

func atomBytes(atoms ...xproto.Atom) []byte {
	buf := make([]byte, len(atoms)*4)
	for i, a := range atoms {
		xgb.Put32(buf[i*4:], uint32(a))
	}
	return buf
}
