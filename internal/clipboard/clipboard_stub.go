//go:build !(windows || (cgo && (linux || freebsd || openbsd || netbsd || dragonfly || darwin)))

package clipboard

import (
	"errors"
	"image"
)

var errUnsupported = errors.New("clipboard image operations need cgo on this platform")

func WriteImage(image.Image) error { return errUnsupported }

func ReadImage() (image.Image, error) { return nil, errUnsupported }
