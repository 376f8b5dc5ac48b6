//go:build darwin && cgo

package darwin

/*
#cgo LDFLAGS: -framework CoreGraphics
#include <CoreGraphics/CoreGraphics.h>

static void main_display(double *x, double *y, double *w, double *h) {
    CGRect r = CGDisplayBounds(CGMainDisplayID());
    *x = r.origin.x; *y = r.origin.y; *w = r.size.width; *h = r.size.height;
}
*/
import "C"

import (
	"errors"

	"github.com/mj1618/desktop-agent/internal/model"
)

// MainDisplay reports the bounds of the main display in global coordinates.
type MainDisplay struct{}

func (MainDisplay) Bounds() (model.Rect, error) {
	var x, y, w, h C.double
	C.main_display(&x, &y, &w, &h)
	if w <= 0 || h <= 0 {
		return model.Rect{}, errors.New("main display bounds unavailable")
	}
	return model.Rect{X: float64(x), Y: float64(y), Width: float64(w), Height: float64(h)}, nil
}
