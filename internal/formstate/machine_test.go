package formstate

import "testing"

func TestMachine_StartsAtFirstStep(t *testing.T) {
	m := New()

	if m.Current() != 1 {
		t.Errorf("expected step 1, got %d", m.Current())
	}
	if !m.IsFirst() {
		t.Error("expected IsFirst at step 1")
	}
	if m.StepName() != "Basic Info" {
		t.Errorf("expected Basic Info, got %s", m.StepName())
	}
}

func TestMachine_NextClampsAtLast(t *testing.T) {
	m := New()
	n := m.StepCount()

	// N calls from step 1 land on step N and stay there.
	for i := 0; i < n; i++ {
		m.Next()
	}
	if m.Current() != n {
		t.Errorf("expected step %d, got %d", n, m.Current())
	}
	if !m.IsLast() {
		t.Error("expected IsLast at final step")
	}

	m.Next()
	if m.Current() != n {
		t.Errorf("Next past last moved to %d", m.Current())
	}
}

func TestMachine_PrevClampsAtFirst(t *testing.T) {
	m := New()

	m.Prev()
	if m.Current() != 1 {
		t.Errorf("Prev past first moved to %d", m.Current())
	}

	m.Next()
	m.Prev()
	if m.Current() != 1 {
		t.Errorf("expected return to step 1, got %d", m.Current())
	}
}

func TestMachine_GoTo(t *testing.T) {
	m := New()

	if !m.GoTo(3) {
		t.Fatal("GoTo(3) rejected")
	}
	if m.Current() != 3 {
		t.Errorf("expected step 3, got %d", m.Current())
	}
	if m.StepName() != "Authorities" {
		t.Errorf("expected Authorities, got %s", m.StepName())
	}
}

func TestMachine_GoToOutOfRange(t *testing.T) {
	m := New()
	m.GoTo(2)

	for _, n := range []int{0, -1, 5, 100} {
		if m.GoTo(n) {
			t.Errorf("GoTo(%d) accepted", n)
		}
		if m.Current() != 2 {
			t.Errorf("GoTo(%d) moved current to %d", n, m.Current())
		}
	}
}

func TestMachine_CustomSteps(t *testing.T) {
	m := New("One", "Two")

	if m.StepCount() != 2 {
		t.Errorf("expected 2 steps, got %d", m.StepCount())
	}
	m.Next()
	if !m.IsLast() {
		t.Error("expected IsLast at step 2 of 2")
	}
	if m.StepName() != "Two" {
		t.Errorf("expected Two, got %s", m.StepName())
	}
}
