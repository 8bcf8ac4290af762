package ui

import (
	"errors"
	"sync"
	"testing"

	"ProcMotion/internal/behaviour"
	"ProcMotion/internal/clock"
	"ProcMotion/internal/transition"
)

func TestCanvasGroupClamp(t *testing.T) {
	g := NewCanvasGroup(2)
	if g.Alpha() != 1 {
		t.Errorf("Expected alpha clamped to 1, got %f", g.Alpha())
	}

	g.SetAlpha(-1)
	if g.Alpha() != 0 {
		t.Errorf("Expected alpha clamped to 0, got %f", g.Alpha())
	}
	if g.Interactable || g.BlocksRaycasts || g.Visible() {
		t.Error("Invisible group should not be interactable")
	}

	g.SetAlpha(0.3)
	if !g.Interactable || !g.BlocksRaycasts {
		t.Error("Visible group should be interactable")
	}
}

func TestCanvasGroupManualBlocking(t *testing.T) {
	g := NewCanvasGroup(1)
	g.AutoBlock = false
	g.Interactable = false

	g.SetAlpha(0.5)

	if g.Interactable {
		t.Error("Interactable should not change when AutoBlock is off")
	}
}

func TestCanvasGroupIsAlphaTarget(t *testing.T) {
	g := NewCanvasGroup(1)
	pb, err := transition.FadeOut(1).Play(g)
	if err != nil {
		t.Fatalf("CanvasGroup should accept fades: %v", err)
	}

	pb.Update(2)

	if g.Alpha() != 0 || g.Visible() {
		t.Errorf("Expected faded out group, got alpha %f", g.Alpha())
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	menu := behaviour.NewGameObject("Menu")
	menu.AddComponent(NewCanvasGroup(1))
	hud := behaviour.NewGameObject("HUD")

	if err := reg.Register("menu", menu); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register("hud", hud); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register("menu", hud); !errors.Is(err, ErrDuplicate) {
		t.Errorf("Expected ErrDuplicate, got %v", err)
	}

	if obj, err := reg.Lookup("menu"); err != nil || obj != menu {
		t.Errorf("Lookup returned %v, %v", obj, err)
	}
	if _, err := reg.Lookup("settings"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if g, err := reg.CanvasGroup("menu"); err != nil || g.Alpha() != 1 {
		t.Errorf("Expected menu canvas group, got %v, %v", g, err)
	}
	if _, err := reg.CanvasGroup("hud"); !errors.Is(err, ErrNoCanvas) {
		t.Errorf("Expected ErrNoCanvas, got %v", err)
	}

	names := reg.Names()
	if len(names) != 2 || names[0] != "hud" || names[1] != "menu" {
		t.Errorf("Expected sorted names [hud menu], got %v", names)
	}

	reg.Unregister("hud")
	if len(reg.Names()) != 1 {
		t.Error("Unregister should remove the object")
	}
}

func TestRegistryConcurrent(t *testing.T) {
	reg := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := string(rune('a' + i))
			_ = reg.Register(name, behaviour.NewGameObject(name))
			_, _ = reg.Lookup(name)
			_ = reg.Names()
		}(i)
	}
	wg.Wait()

	if len(reg.Names()) != 8 {
		t.Errorf("Expected 8 names, got %d", len(reg.Names()))
	}
}

func TestCanvasGroupSetInteractable(t *testing.T) {
	g := NewCanvasGroup(0)
	g.SetInteractable(true)
	if !g.Interactable || !g.BlocksRaycasts {
		t.Error("Expected both flags on")
	}
	if g.AutoBlock {
		t.Error("Expected SetInteractable to turn AutoBlock off")
	}

	g.SetAlpha(0)
	if !g.Interactable {
		t.Error("Alpha changes should not touch flags after SetInteractable")
	}
}

func TestFadeInInteractableOnComplete(t *testing.T) {
	g := NewCanvasGroup(0)
	pb, err := transition.FadeIn(1).Play(g)
	if err != nil {
		t.Fatalf("Play failed: %v", err)
	}

	pb.Update(0.1)
	if g.Alpha() < 0.09 || g.Alpha() > 0.11 {
		t.Errorf("Expected alpha near 0.1, got %f", g.Alpha())
	}
	if g.Interactable || g.BlocksRaycasts {
		t.Error("Expected group locked while fading in")
	}

	pb.Update(1)
	if !g.Interactable || !g.BlocksRaycasts {
		t.Error("Expected group interactable once the fade in completes")
	}
}

func TestAnimator(t *testing.T) {
	a := NewAnimator("Idle", map[string]string{"show": "Shown", "hide": "Hidden"})
	frame := clock.Frame{DeltaTime: 0.5}

	a.Update(frame)
	if a.State() != "Idle" || a.StateTime() != 0.5 {
		t.Errorf("Expected Idle at 0.5, got %s at %f", a.State(), a.StateTime())
	}

	a.SetTrigger("show")
	a.SetTrigger("unknown")
	if !a.IsTriggerSet("show") {
		t.Error("Expected show pending")
	}
	a.Update(frame)
	if a.State() != "Shown" {
		t.Errorf("Expected Shown, got %s", a.State())
	}
	if a.IsTriggerSet("show") {
		t.Error("Expected show consumed")
	}
	if !a.IsTriggerSet("unknown") {
		t.Error("Expected unmapped trigger to stay set")
	}

	a.ResetTrigger("unknown")
	if a.IsTriggerSet("unknown") {
		t.Error("Expected ResetTrigger to clear it")
	}

	a.Play("Hidden")
	if a.State() != "Hidden" || a.StateTime() != 0 {
		t.Errorf("Expected Hidden restarted, got %s at %f", a.State(), a.StateTime())
	}
}

func TestPlayByName(t *testing.T) {
	lib := transition.NewLibrary()
	_ = lib.Add("show", transition.FadeIn(1))
	_ = lib.Add("pop", &transition.AnimationTransition{State: "Pop", Duration: 0.5, Then: "Idle"})
	reg := NewRegistryWithTransitions(lib)

	panel := behaviour.NewGameObject("Panel")
	group := NewCanvasGroup(1)
	anim := NewAnimator("Idle", nil)
	panel.AddComponent(group)
	panel.AddComponent(anim)
	_ = reg.Register("panel", panel)

	pb, err := reg.PlayByName("panel", "show")
	if err != nil {
		t.Fatalf("PlayByName failed: %v", err)
	}
	if group.Alpha() != 0 {
		t.Errorf("Expected fade to start from 0, got %f", group.Alpha())
	}

	if _, err := reg.PlayByName("panel", "pop"); err != nil {
		t.Fatalf("PlayByName animation failed: %v", err)
	}
	if anim.State() != "Pop" {
		t.Errorf("Expected animator in Pop, got %s", anim.State())
	}
	if reg.Playing() != 2 {
		t.Errorf("Expected 2 playing, got %d", reg.Playing())
	}

	reg.Update(1)
	if !pb.Finished() || group.Alpha() != 1 {
		t.Errorf("Expected fade finished at alpha 1, got %f", group.Alpha())
	}
	if anim.State() != "Idle" {
		t.Errorf("Expected animator back to Idle, got %s", anim.State())
	}
	if reg.Playing() != 0 {
		t.Errorf("Expected nothing playing, got %d", reg.Playing())
	}
}

func TestPlayByNameErrors(t *testing.T) {
	reg := NewRegistry()
	_ = reg.Transitions().Add("pop", &transition.AnimationTransition{State: "Pop"})
	_ = reg.Transitions().Add("show", transition.FadeIn(1))

	bare := behaviour.NewGameObject("Bare")
	bare.AddComponent(NewCanvasGroup(1))
	_ = reg.Register("bare", bare)

	if _, err := reg.PlayByName("missing", "show"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if _, err := reg.PlayByName("bare", "nope"); !errors.Is(err, transition.ErrUnknownTransition) {
		t.Errorf("Expected ErrUnknownTransition, got %v", err)
	}
	if _, err := reg.PlayByName("bare", "pop"); !errors.Is(err, transition.ErrUnsupportedTarget) {
		t.Errorf("Expected ErrUnsupportedTarget, got %v", err)
	}
	if reg.Playing() != 0 {
		t.Errorf("Expected failed plays not to be tracked, got %d", reg.Playing())
	}
}

func TestPlayByTrigger(t *testing.T) {
	reg := NewRegistry()
	toast := behaviour.NewGameObject("Toast")
	anim := NewAnimator("Hidden", map[string]string{"show": "Shown"})
	toast.AddComponent(anim)
	_ = reg.Register("toast", toast)
	_ = reg.Register("bare", behaviour.NewGameObject("Bare"))

	if err := reg.PlayByTrigger("toast", "show"); err != nil {
		t.Fatalf("PlayByTrigger failed: %v", err)
	}
	anim.Update(clock.Frame{DeltaTime: 0.1})
	if anim.State() != "Shown" {
		t.Errorf("Expected Shown, got %s", anim.State())
	}

	if err := reg.PlayByTrigger("bare", "show"); !errors.Is(err, ErrNoAnimator) {
		t.Errorf("Expected ErrNoAnimator, got %v", err)
	}
	if err := reg.PlayByTrigger("missing", "show"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
