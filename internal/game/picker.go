package game

import (
	"errors"
	"image/color"
	"log"

	"github.com/ncruces/zenity"

	"github.com/iburimskiy/gesture-particles/internal/shape"
)

type picked struct {
	c   color.Color
	err error
}

// colorPicker runs the native color dialog off the render thread. At most
// one dialog is open at a time.
type colorPicker struct {
	result  chan picked
	waiting bool
	show    func(current color.Color) (color.Color, error)
}

func newColorPicker() *colorPicker {
	return &colorPicker{
		result: make(chan picked, 1),
		show:   selectColor,
	}
}

func selectColor(current color.Color) (color.Color, error) {
	return zenity.SelectColor(
		zenity.Title("Energy Color"),
		zenity.Color(current),
	)
}

// open starts the dialog preset to hex. It is a no-op while one is showing.
func (p *colorPicker) open(hex string) {
	if p.waiting {
		return
	}
	current, err := shape.ParseColor(hex)
	if err != nil {
		current = shape.MustParseColor(shape.White)
	}
	p.waiting = true
	go func() {
		c, err := p.show(current.RGBA())
		p.result <- picked{c: c, err: err}
	}()
}

// poll returns the dialog outcome once it is available. ok is false while
// the dialog is still open and when it was cancelled.
func (p *colorPicker) poll() (c color.Color, ok bool, err error) {
	if !p.waiting {
		return nil, false, nil
	}
	select {
	case r := <-p.result:
		p.waiting = false
		if errors.Is(r.err, zenity.ErrCanceled) {
			return nil, false, nil
		}
		if r.err != nil {
			return nil, false, r.err
		}
		return r.c, r.c != nil, nil
	default:
		return nil, false, nil
	}
}

// notifyFailure raises a desktop notification for a tracking failure.
func notifyFailure(msg string) {
	go func() {
		if err := zenity.Notify(msg, zenity.Title("Hand tracking"), zenity.WarningIcon); err != nil {
			log.Printf("notify: %v", err)
		}
	}()
}
