package veto

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/cartolamix/mixserver/internal/domain"
)

type syncDelayer struct{}

func (syncDelayer) After(_ time.Duration, fn func()) { fn() }

type manualDelayer struct{ pending []func() }

func (d *manualDelayer) After(_ time.Duration, fn func()) { d.pending = append(d.pending, fn) }
func (d *manualDelayer) fire() {
	for _, fn := range d.pending {
		fn()
	}
	d.pending = nil
}

func captainPair() (domain.Player, domain.Player) {
	return domain.Player{ID: uuid.New(), Name: "capA"},
		domain.Player{ID: uuid.New(), Name: "capB"}
}

func TestMD1AllBans(t *testing.T) {
	capA, capB := captainPair()
	s, err := New(nil, nil, domain.FormatMD1, [2]domain.Player{capA, capB}, capA, WithDelayer(syncDelayer{}))
	if err != nil {
		t.Fatal(err)
	}

	// capA won the flip, so capB opens the veto and holds even turns.
	bans := []string{"Mirage", "Cache", "Train", "Nuke", "Overpass", "Inferno"}
	for i, m := range bans {
		cur := s.Current()
		if cur.Action != ActionBan {
			t.Fatalf("turn %d action = %s, want ban", i, cur.Action)
		}
		wantPicker := capB
		if i%2 == 1 {
			wantPicker = capA
		}
		if cur.Picker.ID != wantPicker.ID {
			t.Errorf("turn %d picker = %s, want %s", i, cur.Picker.Name, wantPicker.Name)
		}
		s.ClickMap(m)
	}

	if !s.Finished() {
		t.Fatal("six bans must finish an md1 veto")
	}
	results := s.Results()
	if len(results) != 1 {
		t.Fatalf("md1 result = %d maps, want 1", len(results))
	}
	// First unprocessed map in pool order: Ancient.
	if results[0].Map != "Ancient" || results[0].PickedBy != nil || results[0].Side != "" {
		t.Errorf("decider = %+v, want bare Ancient", results[0])
	}
}

func TestMD2BansThenPicks(t *testing.T) {
	capA, capB := captainPair()
	s, err := New(nil, nil, domain.FormatMD2, [2]domain.Player{capA, capB}, capA, WithDelayer(syncDelayer{}))
	if err != nil {
		t.Fatal(err)
	}

	for _, m := range []string{"Mirage", "Ancient", "Dust II", "Overpass"} {
		s.ClickMap(m)
	}
	if cur := s.Current(); cur.Action != ActionPick || cur.Picker.ID != capB.ID {
		t.Fatalf("turn 4 = %+v, want pick by veto starter", cur)
	}

	// A pick stays open until the opposing captain claims a side.
	s.ClickMap("Nuke")
	if len(s.Picked()) != 0 {
		t.Fatal("pick finalized without a side selection")
	}
	pending := s.Pending()
	if pending == nil || pending.Chooser.ID != capA.ID {
		t.Fatalf("pending = %+v, want side choice by the non-picking captain", pending)
	}
	s.ClickMap("Inferno") // blocked while the sub-state is open
	if s.Pending().Map != "Nuke" {
		t.Error("map click processed while side selection pending")
	}
	s.ChooseSide(domain.SideCT)

	s.ClickMap("Inferno")
	s.ChooseSide(domain.SideTR)

	results := s.Results()
	if len(results) != 2 {
		t.Fatalf("md2 result = %d maps, want exactly the two picks", len(results))
	}
	first := results[0]
	if first.Map != "Nuke" || first.PickedBy.ID != capB.ID || first.Side != domain.SideCT || first.SidePickedBy.ID != capA.ID {
		t.Errorf("first pick = %+v", first)
	}
	if results[1].Map != "Inferno" || results[1].PickedBy.ID != capA.ID {
		t.Errorf("second pick = %+v", results[1])
	}
}

func TestMD3DeciderAppended(t *testing.T) {
	capA, capB := captainPair()
	s, err := New(nil, nil, domain.FormatMD3, [2]domain.Player{capA, capB}, capB, WithDelayer(syncDelayer{}))
	if err != nil {
		t.Fatal(err)
	}

	// capB won, capA starts: ban ban pick pick ban ban.
	s.ClickMap("Cache")
	s.ClickMap("Train")
	s.ClickMap("Mirage")
	s.ChooseSide(domain.SideTR)
	s.ClickMap("Nuke")
	s.ChooseSide(domain.SideCT)
	s.ClickMap("Overpass")
	s.ClickMap("Inferno")

	results := s.Results()
	if len(results) != 3 {
		t.Fatalf("md3 result = %d maps, want 2 picks + decider", len(results))
	}
	if results[0].Map != "Mirage" || results[1].Map != "Nuke" {
		t.Errorf("picked maps = %+v", results[:2])
	}
	// Ancient and Dust II stayed unprocessed; the decider is the first
	// of them in pool order.
	if results[2].Map != "Ancient" || results[2].PickedBy != nil {
		t.Errorf("decider = %+v, want bare Ancient", results[2])
	}
}

func TestIllegalClicksIgnored(t *testing.T) {
	capA, capB := captainPair()
	s, err := New(nil, nil, domain.FormatMD1, [2]domain.Player{capA, capB}, capA)
	if err != nil {
		t.Fatal(err)
	}
	s.ClickMap("Mirage")
	s.ClickMap("Mirage") // already banned
	s.ClickMap("Vertigo") // not in the pool
	if got := len(s.Banned()); got != 1 {
		t.Errorf("banned = %d, want 1", got)
	}
	s.ChooseSide(domain.SideCT) // no pending pick
	if len(s.Picked()) != 0 {
		t.Error("side choice without a pending pick must be ignored")
	}
}

func TestCompletionWaitsForDelay(t *testing.T) {
	capA, capB := captainPair()
	delay := &manualDelayer{}
	var got []Result
	s, err := New(nil, nil, domain.FormatMD1, [2]domain.Player{capA, capB}, capA,
		WithDelayer(delay),
		OnComplete(func(r []Result) { got = r }),
	)
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range []string{"Mirage", "Ancient", "Dust II", "Overpass", "Nuke", "Inferno"} {
		s.ClickMap(m)
	}
	if !s.Finished() {
		t.Fatal("veto must be finished")
	}
	if got != nil {
		t.Fatal("completion callback fired before the banner delay")
	}
	delay.fire()
	if len(got) != 1 || got[0].Map != "Train" {
		t.Errorf("completion results = %+v, want [Train]", got)
	}
}

func TestNewValidation(t *testing.T) {
	capA, capB := captainPair()
	if _, err := New(nil, nil, domain.MatchFormat("md7"), [2]domain.Player{capA, capB}, capA); err != ErrBadFormat {
		t.Errorf("err = %v, want ErrBadFormat", err)
	}
	outsider := domain.Player{ID: uuid.New(), Name: "intruso"}
	if _, err := New(nil, nil, domain.FormatMD1, [2]domain.Player{capA, capB}, outsider); err != ErrBadCaptain {
		t.Errorf("err = %v, want ErrBadCaptain", err)
	}
}

func TestTeamWinRate(t *testing.T) {
	team := []domain.Player{
		{WinRateByMap: map[string]int{"Mirage": 80}},
		{WinRateByMap: map[string]int{"Mirage": 50}},
		{WinRateByMap: map[string]int{"Nuke": 100}}, // no Mirage record
	}
	if got := TeamWinRate(team, "Mirage"); got != 65 {
		t.Errorf("TeamWinRate = %d, want 65", got)
	}
	if got := TeamWinRate(team, "Cache"); got != 0 {
		t.Errorf("TeamWinRate without records = %d, want 0", got)
	}
}
