package transition

import (
	"errors"
	"math"
	"testing"
)

type alphaBox struct{ a float32 }

func (b *alphaBox) Alpha() float32     { return b.a }
func (b *alphaBox) SetAlpha(a float32) { b.a = a }

type animatorLog struct{ states []string }

func (l *animatorLog) Play(state string) { l.states = append(l.states, state) }

func closeTo(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func isClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func TestFadeInCompletes(t *testing.T) {
	box := &alphaBox{a: 0.7}
	pb, err := FadeIn(1).Play(box)
	if err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	if box.a != 0 {
		t.Errorf("Expected alpha reset to 0 on play, got %f", box.a)
	}

	if pb.Update(0.5) {
		t.Error("Fade should not finish halfway")
	}
	if !closeTo(box.a, 0.5) {
		t.Errorf("Expected alpha 0.5 halfway, got %f", box.a)
	}
	if isClosed(pb.Done()) {
		t.Error("Done should stay open while playing")
	}

	if !pb.Update(0.6) {
		t.Error("Fade should finish after its duration")
	}
	if box.a != 1 {
		t.Errorf("Expected final alpha 1, got %f", box.a)
	}
	if !isClosed(pb.Done()) || !pb.Finished() {
		t.Error("Done should be closed after completion")
	}
	if pb.Progress() != 1 {
		t.Errorf("Expected progress 1, got %f", pb.Progress())
	}
}

func TestFadeDelay(t *testing.T) {
	f := &FadeTransition{From: 1, To: 0, Duration: 1, Delay: 0.5}

	if f.AlphaAt(0.25) != 1 {
		t.Error("Alpha should hold at From during the delay")
	}
	if !closeTo(f.AlphaAt(1.0), 0.5) {
		t.Errorf("Expected 0.5 halfway after the delay, got %f", f.AlphaAt(1.0))
	}
}

func TestFadeYoyoLoops(t *testing.T) {
	f := &FadeTransition{From: 0, To: 1, Duration: 1, Loops: 1, Mode: LoopYoyo}

	if !closeTo(f.AlphaAt(1.5), 0.5) {
		t.Errorf("Expected 0.5 halfway back, got %f", f.AlphaAt(1.5))
	}
	if !closeTo(f.AlphaAt(10), 0) {
		t.Errorf("Expected yoyo to end at From, got %f", f.AlphaAt(10))
	}

	box := &alphaBox{}
	pb, _ := f.Play(box)
	pb.Update(1.9)
	if pb.Finished() {
		t.Error("Two cycles should take two seconds")
	}
	pb.Update(0.2)
	if !pb.Finished() || !closeTo(box.a, 0) {
		t.Errorf("Expected finished at alpha 0, got finished=%v alpha=%f", pb.Finished(), box.a)
	}
}

func TestFadeRestartLoops(t *testing.T) {
	f := &FadeTransition{From: 0, To: 1, Duration: 1, Loops: 2, Mode: LoopRestart}

	if !closeTo(f.AlphaAt(2.25), 0.25) {
		t.Errorf("Expected restart to begin again from From, got %f", f.AlphaAt(2.25))
	}
	if f.AlphaAt(100) != 1 {
		t.Errorf("Expected finished restart loop at To, got %f", f.AlphaAt(100))
	}
}

func TestPulseNeverFinishes(t *testing.T) {
	box := &alphaBox{}
	pb, _ := Pulse(0.2, 0.8, 0.5).Play(box)

	for i := 0; i < 1000; i++ {
		if pb.Update(0.1) {
			t.Fatal("Endless pulse finished")
		}
		if box.a < 0.2-1e-5 || box.a > 0.8+1e-5 {
			t.Fatalf("Pulse alpha %f outside [0.2, 0.8]", box.a)
		}
	}
	if pb.Progress() != 0 {
		t.Error("Endless playbacks report zero progress")
	}

	pb.Stop()
	if !isClosed(pb.Done()) {
		t.Error("Stop should close Done")
	}
	pb.Stop()
}

func TestFadeZeroDuration(t *testing.T) {
	box := &alphaBox{}
	pb, _ := FadeIn(0).Play(box)

	if !pb.Update(0) || box.a != 1 {
		t.Errorf("Zero duration fade should finish at To immediately, got alpha %f", box.a)
	}
}

func TestUnsupportedTarget(t *testing.T) {
	if _, err := FadeIn(1).Play(&animatorLog{}); !errors.Is(err, ErrUnsupportedTarget) {
		t.Errorf("Expected ErrUnsupportedTarget for fade, got %v", err)
	}
	anim := &AnimationTransition{State: "Open"}
	if _, err := anim.Play(&alphaBox{}); !errors.Is(err, ErrUnsupportedTarget) {
		t.Errorf("Expected ErrUnsupportedTarget for animation, got %v", err)
	}
}

func TestAnimationTransition(t *testing.T) {
	log := &animatorLog{}
	tr := &AnimationTransition{State: "Open", Duration: 0.3, Then: "Idle"}

	pb, err := tr.Play(log)
	if err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	if len(log.states) != 1 || log.states[0] != "Open" {
		t.Errorf("Expected Open to play immediately, got %v", log.states)
	}

	pb.Update(0.2)
	pb.Update(0.2)

	if !pb.Finished() {
		t.Error("Animation transition should finish after its duration")
	}
	if len(log.states) != 2 || log.states[1] != "Idle" {
		t.Errorf("Expected Idle after completion, got %v", log.states)
	}
}

func TestStoppedAnimationSkipsThen(t *testing.T) {
	log := &animatorLog{}
	pb, _ := (&AnimationTransition{State: "Open", Duration: 1, Then: "Idle"}).Play(log)

	pb.Stop()
	pb.Update(5)

	if len(log.states) != 1 {
		t.Errorf("Stopped transition should not play its follow-up, got %v", log.states)
	}
}

func TestPlayer(t *testing.T) {
	pl := NewPlayer()
	short := &alphaBox{}
	long := &alphaBox{}

	if _, err := pl.Start(FadeIn(0.1), short); err != nil {
		t.Fatal(err)
	}
	if _, err := pl.Start(FadeIn(1), long); err != nil {
		t.Fatal(err)
	}
	if _, err := pl.Start(FadeIn(1), struct{}{}); err == nil {
		t.Error("Expected error for unsupported target")
	}

	pl.Update(0.2)
	if pl.Len() != 1 {
		t.Errorf("Expected finished playback to be dropped, got %d playing", pl.Len())
	}

	pl.StopAll()
	if pl.Len() != 0 {
		t.Errorf("Expected no playbacks after StopAll, got %d", pl.Len())
	}
}

func TestEaseEndpoints(t *testing.T) {
	for _, name := range []string{"linear", "smoothstep", "in_out_sine", "out_quad", "bogus"} {
		e := EaseByName(name)
		if math.Abs(e(0)) > 1e-12 || math.Abs(e(1)-1) > 1e-12 {
			t.Errorf("Ease %s should map 0->0 and 1->1, got %f and %f", name, e(0), e(1))
		}
	}
}

type groupBox struct {
	alphaBox
	interactable bool
	toggles      int
}

func (g *groupBox) SetInteractable(v bool) {
	g.interactable = v
	g.toggles++
}

func TestFadeInLocksInteractionUntilComplete(t *testing.T) {
	g := &groupBox{interactable: true}
	pb, err := FadeIn(1).Play(g)
	if err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	if g.interactable {
		t.Error("Expected interaction off when the fade starts")
	}

	pb.Update(0.1)
	if !closeTo(g.a, 0.1) {
		t.Errorf("Expected alpha 0.1, got %f", g.a)
	}
	if g.interactable {
		t.Error("Expected interaction to stay off mid-fade")
	}

	pb.Update(1)
	if !g.interactable {
		t.Error("Expected interaction back on after fading in")
	}
}

func TestFadeOutStaysLocked(t *testing.T) {
	g := &groupBox{interactable: true}
	pb, _ := FadeOut(0.5).Play(g)
	pb.Update(1)
	if g.interactable {
		t.Error("Expected a faded out target to stay non-interactive")
	}
}

func TestStoppedFadeKeepsLock(t *testing.T) {
	g := &groupBox{interactable: true}
	pb, _ := FadeIn(1).Play(g)
	pb.Update(0.3)
	pb.Stop()
	if g.interactable {
		t.Error("Expected Stop to leave interaction off")
	}
}

func TestUnlockedFadeLeavesInteraction(t *testing.T) {
	g := &groupBox{interactable: true}
	f := FadeIn(1)
	f.LockInteraction = false
	pb, _ := f.Play(g)
	pb.Update(2)
	if g.toggles != 0 {
		t.Errorf("Expected no interactable changes, got %d", g.toggles)
	}
}

func TestBlinkUsesSeparateEases(t *testing.T) {
	b := Blink(0.25, OutQuad, Linear)

	// out-quad at u=0.5 is 0.75
	if !closeTo(b.AlphaAt(0.125), 0.75) {
		t.Errorf("Expected 0.75 halfway in, got %f", b.AlphaAt(0.125))
	}
	if !closeTo(b.AlphaAt(0.25), 1) {
		t.Errorf("Expected peak 1, got %f", b.AlphaAt(0.25))
	}
	if !closeTo(b.AlphaAt(0.375), 0.5) {
		t.Errorf("Expected linear 0.5 halfway out, got %f", b.AlphaAt(0.375))
	}
	if !closeTo(b.AlphaAt(0.5+0.125), 0.75) {
		t.Errorf("Expected the second cycle to repeat the first, got %f", b.AlphaAt(0.625))
	}
}

func TestBlinkKeepsInteractionOff(t *testing.T) {
	g := &groupBox{interactable: true}
	pb, err := Blink(0.25, OutQuad, Linear).Play(g)
	if err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	for i := 0; i < 120; i++ {
		if pb.Update(1.0 / 60) {
			t.Fatal("Endless blink should not finish")
		}
		if g.interactable {
			t.Fatalf("Expected interaction off during blink, on at step %d", i)
		}
	}
	if pb.Progress() != 0 {
		t.Errorf("Expected progress 0 for endless playback, got %f", pb.Progress())
	}
}

func TestFadeSequenceFinite(t *testing.T) {
	s := &FadeSequence{
		From: 0,
		Steps: []FadeStep{
			{To: 1, Duration: 1, Ease: Linear},
			{To: 0.5, Duration: 1, Ease: Linear},
		},
		LockInteraction: true,
	}
	g := &groupBox{}
	pb, _ := s.Play(g)

	pb.Update(1.5)
	if !closeTo(g.a, 0.75) {
		t.Errorf("Expected 0.75 in the second step, got %f", g.a)
	}
	if !pb.Update(1) {
		t.Error("Expected the sequence to finish after both steps")
	}
	if !closeTo(g.a, 0.5) {
		t.Errorf("Expected final alpha 0.5, got %f", g.a)
	}
	if !g.interactable {
		t.Error("Expected interaction on once the sequence ends visible")
	}
}

func TestLibrary(t *testing.T) {
	lib := NewLibrary()
	if err := lib.Add("show", FadeIn(0.25)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := lib.Add("hide", FadeOut(0.25)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := lib.Add("show", FadeOut(1)); !errors.Is(err, ErrDuplicateTransition) {
		t.Errorf("Expected ErrDuplicateTransition, got %v", err)
	}

	tr, err := lib.Get("show")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if f, ok := tr.(*FadeTransition); !ok || f.To != 1 {
		t.Errorf("Expected the first show fade to be kept, got %#v", tr)
	}
	if _, err := lib.Get("missing"); !errors.Is(err, ErrUnknownTransition) {
		t.Errorf("Expected ErrUnknownTransition, got %v", err)
	}

	names := lib.Names()
	if len(names) != 2 || names[0] != "hide" || names[1] != "show" {
		t.Errorf("Expected sorted [hide show], got %v", names)
	}
}
