package bot

import (
	"reflect"
	"testing"
)

func TestParseCommand(t *testing.T) {
	p := NewCommandParser("PawerBot")

	cases := []struct {
		text string
		cmd  string
		args []string
		ok   bool
	}{
		{"/start", "start", nil, true},
		{"/start ref123", "start", []string{"ref123"}, true},
		{"  /PET  ", "pet", nil, true},
		{"/pet@PawerBot", "pet", nil, true},
		{"/pet@pawerbot", "pet", nil, true},
		{"/pet@OtherBot", "", nil, false},
		{"привет", "", nil, false},
		{"/", "", nil, false},
		{"", "", nil, false},
		{"/feedback люблю бота", "feedback", []string{"люблю", "бота"}, true},
	}

	for _, tc := range cases {
		cmd, args, ok := p.ParseCommand(tc.text)
		if cmd != tc.cmd || ok != tc.ok || !reflect.DeepEqual(args, tc.args) {
			t.Errorf("ParseCommand(%q) = (%q, %v, %v), want (%q, %v, %v)",
				tc.text, cmd, args, ok, tc.cmd, tc.args, tc.ok)
		}
	}
}

func TestParseStartPayload(t *testing.T) {
	cases := []struct {
		args []string
		want int64
	}{
		{nil, 0},
		{[]string{"ref123456"}, 123456},
		{[]string{"ref0"}, 0},
		{[]string{"ref-5"}, 0},
		{[]string{"refabc"}, 0},
		{[]string{"123456"}, 0},
	}
	for _, tc := range cases {
		if got := ParseStartPayload(tc.args); got != tc.want {
			t.Errorf("ParseStartPayload(%v) = %d, want %d", tc.args, got, tc.want)
		}
	}
}
