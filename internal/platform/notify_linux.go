//go:build linux

package platform

import (
	"github.com/godbus/dbus/v5"
)

const (
	notifyDest   = "org.freedesktop.Notifications"
	notifyPath   = dbus.ObjectPath("/org/freedesktop/Notifications")
	notifyMethod = notifyDest + ".Notify"
)

// Notify sends a desktop notification over the Freedesktop.org session bus.
func Notify(title, body string, opts Options) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return err
	}
	defer conn.Close()

	obj := conn.Object(notifyDest, notifyPath)
	return obj.Call(notifyMethod, 0, notifyArgs(title, body, opts)...).Err
}

// notifyArgs builds the Notify call arguments: app name, replaces id, icon,
// summary, body, actions, hints and timeout.
func notifyArgs(title, body string, opts Options) []interface{} {
	return []interface{}{
		AppName, uint32(0), opts.IconPath, title, body,
		[]string{}, map[string]dbus.Variant{}, opts.timeout(),
	}
}
