package input

import (
	"testing"

	evdev "github.com/holoplot/go-evdev"
)

func TestPressFromEvent(t *testing.T) {
	tests := []struct {
		name   string
		event  evdev.InputEvent
		want   Press
		wantOK bool
	}{
		{
			name:   "key press",
			event:  evdev.InputEvent{Type: evdev.EV_KEY, Code: evdev.KEY_KP7, Value: 1},
			want:   Press{Key: "KEY_KP7", Code: uint16(evdev.KEY_KP7)},
			wantOK: true,
		},
		{
			name:   "key release ignored",
			event:  evdev.InputEvent{Type: evdev.EV_KEY, Code: evdev.KEY_KP7, Value: 0},
			wantOK: false,
		},
		{
			name:   "key repeat ignored",
			event:  evdev.InputEvent{Type: evdev.EV_KEY, Code: evdev.KEY_KP7, Value: 2},
			wantOK: false,
		},
		{
			name:   "non-key event ignored",
			event:  evdev.InputEvent{Type: evdev.EV_SYN, Code: 0, Value: 0},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := pressFromEvent(&tt.event)
			if ok != tt.wantOK {
				t.Fatalf("pressFromEvent() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got != tt.want {
				t.Errorf("pressFromEvent() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
