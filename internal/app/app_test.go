package app

import "testing"

func TestOptionsApply(t *testing.T) {
	a := New(
		WithName("guestview"),
		WithAccels(true),
		WithReleaseCursorAccel("Ctrl+Alt"),
		WithFullscreen(true),
	)

	if a.Name() != "guestview" {
		t.Fatalf("Name = %q", a.Name())
	}
	if !a.AccelsEnabled() {
		t.Fatal("AccelsEnabled = false")
	}
	if a.ReleaseCursorAccel() != "Ctrl+Alt" {
		t.Fatalf("ReleaseCursorAccel = %q", a.ReleaseCursorAccel())
	}
	if !a.GlobalFullscreen() {
		t.Fatal("GlobalFullscreen = false")
	}
}

func TestFullscreenChangeNotifiesOnce(t *testing.T) {
	a := New()

	var calls []bool
	a.OnFullscreenChange(func(v bool) { calls = append(calls, v) })

	a.SetGlobalFullscreen(true)
	a.SetGlobalFullscreen(true) // no change, no notification
	a.SetGlobalFullscreen(false)

	want := []bool{true, false}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", calls, want)
		}
	}
}
