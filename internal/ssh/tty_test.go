package ssh

import (
	"testing"

	gossh "github.com/gliderlabs/ssh"
)

func TestTermFromEnviron(t *testing.T) {
	cases := []struct {
		env  []string
		pty  string
		want string
	}{
		{[]string{"LANG=C", "TERM=screen"}, "vt100", "screen"},
		{[]string{"TERM="}, "vt100", "vt100"},
		{nil, "", DefaultTerm},
		{[]string{"TERM=../../../etc/passwd"}, "", DefaultTerm},
		{[]string{"TERM=evil-term"}, "tmux", "tmux"},
	}
	for _, c := range cases {
		if got := TermFromEnviron(c.env, c.pty); got != c.want {
			t.Errorf("TermFromEnviron(%q, %q) = %q, want %q", c.env, c.pty, got, c.want)
		}
	}
}

func TestWindowSizeFollowsResize(t *testing.T) {
	winCh := make(chan gossh.Window)
	tty := NewSessionTty(nil, gossh.Pty{Window: gossh.Window{Width: 80, Height: 24}}, winCh)

	size, _ := tty.WindowSize()
	if size.Width != 80 || size.Height != 24 {
		t.Fatalf("initial size = %+v", size)
	}

	resized := make(chan struct{}, 1)
	tty.NotifyResize(func() { resized <- struct{}{} })
	winCh <- gossh.Window{Width: 120, Height: 40}
	<-resized
	close(winCh)

	size, _ = tty.WindowSize()
	if size.Width != 120 || size.Height != 40 {
		t.Fatalf("resized size = %+v", size)
	}
}
