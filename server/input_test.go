package server

import (
	"strings"
	"testing"

	"arenacore/game"
)

func TestInputMessageToInput(t *testing.T) {
	tests := []struct {
		in   InputMessage
		want game.Input
	}{
		{InputMessage{}, game.Input{}},
		{InputMessage{Left: true, Up: true}, game.Input{Left: true, Up: true}},
		{InputMessage{Attack: true}, game.Input{Attack: true}},
		{InputMessage{Space: true, Down: true}, game.Input{Attack: true, Down: true}},
	}
	for _, tt := range tests {
		if got := tt.in.ToInput(); got != tt.want {
			t.Errorf("%+v.ToInput() = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeName(t *testing.T) {
	if got := sanitizeName("  bob "); got != "bob" {
		t.Errorf("got %q", got)
	}
	long := strings.Repeat("é", 40)
	if got := sanitizeName(long); len([]rune(got)) != maxNameLen {
		t.Errorf("len = %d, want %d", len([]rune(got)), maxNameLen)
	}
}
