package scene

import (
	"slices"
	"testing"
)

func TestTickerOrderAndRemove(t *testing.T) {
	tk := NewTicker()
	var calls []string
	tk.Add("a", func(float64) { calls = append(calls, "a") })
	tk.Add("b", func(float64) { calls = append(calls, "b") })
	tk.Tick(1)
	tk.Remove("a")
	tk.Remove("missing")
	tk.Tick(1)

	if !slices.Equal(calls, []string{"a", "b", "b"}) {
		t.Errorf("calls = %v", calls)
	}
	if tk.Has("a") || !tk.Has("b") || tk.Len() != 1 {
		t.Error("registry state wrong after Remove")
	}
}

func TestTickerReplaceKeepsPosition(t *testing.T) {
	tk := NewTicker()
	var calls []string
	tk.Add("a", func(float64) { calls = append(calls, "a1") })
	tk.Add("b", func(float64) { calls = append(calls, "b") })
	tk.Add("a", func(float64) { calls = append(calls, "a2") })
	tk.Tick(1)
	if !slices.Equal(calls, []string{"a2", "b"}) {
		t.Errorf("calls = %v", calls)
	}
}

func TestTickerRemoveDuringTick(t *testing.T) {
	tk := NewTicker()
	n := 0
	tk.Add("self", func(float64) {
		n++
		tk.Remove("self")
	})
	tk.Add("other", func(float64) { n++ })
	tk.Tick(1)
	tk.Tick(1)
	if n != 3 {
		t.Errorf("n = %d, want 3", n)
	}
}

func TestTickerSpeedAndStop(t *testing.T) {
	tk := NewTicker()
	var got float64
	tk.Add("a", func(d float64) { got += d })
	tk.SetSpeed(0.5)
	tk.Tick(2)
	tk.Stop()
	tk.Tick(2)
	tk.Start()
	tk.Tick(2)
	if got != 2 {
		t.Errorf("accumulated delta = %v, want 2", got)
	}
}
