//go:build !linux && !darwin && !windows

package notify

func desktopNotify(title, body, icon string) error { return nil }
