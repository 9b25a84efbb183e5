//go:build !linux

package headless

import (
	"fmt"

	"github.com/richinsley/golayers/graphics"
)

func NewHeadless(width, height int) (graphics.Context, error) {
	return nil, fmt.Errorf("egl headless rendering is not supported on this platform")
}
