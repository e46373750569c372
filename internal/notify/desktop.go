package notify

import (
	"context"

	"github.com/gen2brain/beeep"
)

// DesktopNotifier shows a native OS notification.
type DesktopNotifier struct {
	AppIcon string
	send    func(title, message, icon string) error
}

func NewDesktopNotifier(appIcon string) *DesktopNotifier {
	return &DesktopNotifier{
		AppIcon: appIcon,
		send: func(title, message, icon string) error {
			return beeep.Notify(title, message, icon)
		},
	}
}

func (d *DesktopNotifier) Notify(_ context.Context, n Notification) error {
	return d.send(n.Title(), n.Message(), d.AppIcon)
}
