package registry

import (
	"testing"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

type stubGame struct {
	id    string
	state core.GameState
}

func (g *stubGame) ID() string               { return g.id }
func (g *stubGame) Title() string            { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig) { g.state = core.GameState{} }
func (g *stubGame) Render(*core.Screen)      {}
func (g *stubGame) State() core.GameState    { return g.state }

func (g *stubGame) Step(core.InputFrame) core.StepResult {
	g.state.Score++
	return core.StepResult{State: g.state}
}

func TestRegisterAndCreate(t *testing.T) {
	Register("stub_a", func() Game { return &stubGame{id: "stub_a"} })
	Register("stub_b", func() Game { return &stubGame{id: "stub_b"} })

	if !Exists("stub_a") {
		t.Fatal("Exists(stub_a) = false, expected true")
	}
	if Exists("stub_missing") {
		t.Error("Exists(stub_missing) = true, expected false")
	}

	g, err := Create("stub_b")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "stub_b" {
		t.Errorf("ID() = %q, expected stub_b", g.ID())
	}

	// Each Create returns an independent instance.
	g.Step(core.NewInputFrame())
	other, _ := Create("stub_b")
	if other.State().Score != 0 {
		t.Errorf("new instance Score = %d, expected 0", other.State().Score)
	}

	if _, err := Create("stub_missing"); err == nil {
		t.Error("Create() of unknown id should fail")
	}

	if got := Title("stub_a"); got != "Stub stub_a" {
		t.Errorf("Title() = %q, expected %q", got, "Stub stub_a")
	}
	if got := Title("stub_missing"); got != "stub_missing" {
		t.Errorf("Title() of unknown id = %q, expected the id", got)
	}
}

func TestListSorted(t *testing.T) {
	Register("stub_z", func() Game { return &stubGame{id: "stub_z"} })
	Register("stub_m", func() Game { return &stubGame{id: "stub_m"} })

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Errorf("List() not sorted at %d: %q >= %q", i, list[i-1].ID, list[i].ID)
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register() should panic")
		}
	}()
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })
}
