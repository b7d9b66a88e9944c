package ui

import (
	"fmt"
	"os/exec"
	"runtime"
)

// NotificationSender delivers a desktop notification
type NotificationSender interface {
	Send(title, message string) error
}

// CommandSender runs an external notification command
type CommandSender struct {
	build func(title, message string) *exec.Cmd
}

func (c *CommandSender) Send(title, message string) error {
	return c.build(title, message).Run()
}

// Notifier prints a message and mirrors it as a desktop notification when
// the platform supports one
type Notifier struct {
	sender NotificationSender
}

// NewNotifier picks notify-send on Linux and osascript on macOS
func NewNotifier() *Notifier {
	switch runtime.GOOS {
	case "linux":
		return NewNotifierWithSender(&CommandSender{build: func(title, message string) *exec.Cmd {
			return exec.Command("notify-send", title, message)
		}})
	case "darwin":
		return NewNotifierWithSender(&CommandSender{build: func(title, message string) *exec.Cmd {
			script := fmt.Sprintf("display notification %q with title %q", message, title)
			return exec.Command("osascript", "-e", script)
		}})
	default:
		return NewNotifierWithSender(nil)
	}
}

// NewNotifierWithSender uses sender, which may be nil for console only
func NewNotifierWithSender(sender NotificationSender) *Notifier {
	return &Notifier{sender: sender}
}

// SendSuccess announces a finished run
func (n *Notifier) SendSuccess(title, message string) {
	fmt.Fprintf(Output, "\n%s: %s\n", Green(title), Green(message))
	n.send(title, message)
}

// SendError announces a failed run
func (n *Notifier) SendError(title, message string) {
	fmt.Fprintf(Output, "\n%s: %s\n", Red(title), Red(message))
	n.send(title, message)
}

func (n *Notifier) send(title, message string) {
	if n.sender != nil {
		// Desktop notifications are best effort
		_ = n.sender.Send(title, message)
	}
}
