// Package platform delivers desktop notifications on the host system.
package platform

// AppName identifies inkshot to the notification service.
const AppName = "Inkshot"

// Options configures how a notification is displayed.
type Options struct {
	// IconPath, when non-empty, names an image file shown with the
	// notification where the platform supports it.
	IconPath string
	// Timeout is the display time in milliseconds. Zero uses the default.
	Timeout int32
}

const defaultTimeout = 5000

func (o Options) timeout() int32 {
	if o.Timeout <= 0 {
		return defaultTimeout
	}
	return o.Timeout
}
