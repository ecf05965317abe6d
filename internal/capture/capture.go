// Package capture takes desktop screenshots through the XDG desktop portal
// so they can be used as a drawing background.
package capture

import (
	"context"
	"errors"
	"image"
)

// ErrCancelled is returned when the user dismisses the portal dialog.
var ErrCancelled = errors.New("screenshot cancelled")

// Options controls how the portal takes the screenshot.
type Options struct {
	// Interactive lets the user pick the area in the portal dialog.
	Interactive bool
	// IncludeCursor embeds the pointer in the image.
	IncludeCursor bool
}

var screenshotFn = portalScreenshot

// Screenshot captures the desktop. It blocks until the portal answers or
// ctx is done.
func Screenshot(ctx context.Context, opts Options) (*image.RGBA, error) {
	return screenshotFn(ctx, opts)
}
