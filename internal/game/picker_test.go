package game

import (
	"errors"
	"image/color"
	"testing"
	"time"

	"github.com/ncruces/zenity"
)

func waitPicked(t *testing.T, p *colorPicker) (color.Color, bool, error) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for p.waiting {
		if time.Now().After(deadline) {
			t.Fatal("Timed out waiting for the picker")
		}
		c, ok, err := p.poll()
		if ok || err != nil || !p.waiting {
			return c, ok, err
		}
		time.Sleep(time.Millisecond)
	}
	return nil, false, nil
}

func TestPickerResult(t *testing.T) {
	tests := []struct {
		name    string
		show    func(color.Color) (color.Color, error)
		wantOK  bool
		wantErr bool
	}{
		{"Picked", func(color.Color) (color.Color, error) { return color.RGBA{R: 255, A: 255}, nil }, true, false},
		{"Cancelled", func(color.Color) (color.Color, error) { return nil, zenity.ErrCanceled }, false, false},
		{"Failed", func(color.Color) (color.Color, error) { return nil, errors.New("no display") }, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newColorPicker()
			p.show = tt.show
			p.open("#ff0066")

			_, ok, err := waitPicked(t, p)
			if ok != tt.wantOK || (err != nil) != tt.wantErr {
				t.Errorf("Expected ok=%v err=%v, got ok=%v err=%v", tt.wantOK, tt.wantErr, ok, err)
			}
			if p.waiting {
				t.Error("Expected the picker to be idle again")
			}
		})
	}
}

func TestPickerSingleDialog(t *testing.T) {
	release := make(chan struct{})
	p := newColorPicker()
	p.show = func(c color.Color) (color.Color, error) {
		<-release
		return c, nil
	}
	p.open("#ffffff")
	p.open("#000000") // ignored while waiting

	if _, ok, _ := p.poll(); ok {
		t.Error("Expected no result while the dialog is open")
	}
	close(release)

	c, ok, err := waitPicked(t, p)
	if !ok || err != nil {
		t.Fatalf("Expected a color, got ok=%v err=%v", ok, err)
	}
	r, g, b, _ := c.RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Errorf("Expected the first dialog's preset white, got %v", c)
	}
}
