package aggregate

import (
	"reflect"
	"testing"

	"github.com/cartolamix/mixserver/internal/domain"
)

func TestBuildPlayerPipeline(t *testing.T) {
	// Authored newest first on purpose: the builder must reorder by the
	// trailing date token before aggregating.
	series := []RawSeries{
		{
			Title: "Treino - 16/10/25",
			Matches: []RawMatch{
				{Map: "Mirage", Kills: 20, Deaths: 10, Assists: 5, HeadshotPct: 50, Won: true, TeamScore: 16, EnemyScore: 3},
				{Map: "Nuke", Kills: 7, Deaths: 0, Assists: 1, TeamScore: 5, EnemyScore: 13},
			},
		},
		{
			Title: "Desafio - 15/10/25",
			Matches: []RawMatch{
				{Map: "Inferno", Kills: 10, Deaths: 5, Assists: 2, TeamScore: 4, EnemyScore: 13},
				{Map: "Inferno", Kills: 1, Deaths: 1, TeamScore: 13, EnemyScore: 13, Tie: true},
			},
		},
	}
	snapshots := []Snapshot{
		{Label: "Original", Overalls: map[string]int{"Mad": 88}},
		{Label: "15/10", Overalls: map[string]int{"Mad": 88}},
		{Label: "16/10", Overalls: map[string]int{"Mad": 90}},
	}

	p := BuildPlayer(Identity{Name: "Mad", Overall: 80}, series, snapshots)

	if p.TotalKills != 38 || p.TotalDeaths != 16 || p.TotalAssists != 8 {
		t.Errorf("totals = %d/%d/%d, want 38/16/8", p.TotalKills, p.TotalDeaths, p.TotalAssists)
	}
	if p.AvgHeadshotPct != 26 {
		t.Errorf("AvgHeadshotPct = %d, want 26", p.AvgHeadshotPct)
	}
	if p.WinRate != 33 {
		t.Errorf("WinRate = %d, want 33 (tie excluded)", p.WinRate)
	}
	if p.KDRatio != 2.38 {
		t.Errorf("KDRatio = %v, want 2.38", p.KDRatio)
	}
	if p.LastSeriesPoints != 36.25 {
		t.Errorf("LastSeriesPoints = %v, want 36.25", p.LastSeriesPoints)
	}
	// 4 + (80-75)*0.25 + 36.25*0.2 + (2.38-1)*1.5
	if p.Price != 14.57 {
		t.Errorf("Price = %v, want 14.57", p.Price)
	}
	if p.Status != domain.StatusActive {
		t.Errorf("Status = %q, want default active", p.Status)
	}

	wantByMap := map[string]int{"Mirage": 100, "Nuke": 0, "Inferno": 0}
	if !reflect.DeepEqual(p.WinRateByMap, wantByMap) {
		t.Errorf("WinRateByMap = %v, want %v", p.WinRateByMap, wantByMap)
	}

	// Display order: newest series first, newest map within it first.
	if len(p.SeriesHistory) != 2 || p.SeriesHistory[0].Title != "Treino - 16/10/25" {
		t.Fatalf("series order = %+v, want 16/10 first", p.SeriesHistory)
	}
	if p.SeriesHistory[0].Matches[0].Map != "Nuke" || p.SeriesHistory[0].Matches[1].Map != "Mirage" {
		t.Errorf("matches within a series must be reversed, got %+v", p.SeriesHistory[0].Matches)
	}
	if got := p.SeriesHistory[0].Matches[1].Points; got != 58.0 {
		t.Errorf("Mirage points = %v, want 58.0", got)
	}

	wantHistory := []domain.RatingPoint{
		{Label: "Original", Overall: 88},
		{Label: "16/10", Overall: 90},
	}
	if !reflect.DeepEqual(p.RatingHistory, wantHistory) {
		t.Errorf("RatingHistory = %v, want %v (duplicates collapsed)", p.RatingHistory, wantHistory)
	}
}

func TestBuildPlayerZeroDeaths(t *testing.T) {
	series := []RawSeries{
		{Title: "Serie 1 - 15/10/25", Matches: []RawMatch{
			{Map: "Cache", Kills: 7, Assists: 1, Won: true, TeamScore: 13, EnemyScore: 7},
		}},
	}
	p := BuildPlayer(Identity{Name: "heroo", Overall: 70}, series, nil)
	if p.KDRatio != 7 {
		t.Errorf("KDRatio = %v, want raw kill count 7 when deaths are zero", p.KDRatio)
	}
}

func TestBuildPlayerPriceClamped(t *testing.T) {
	tests := []struct {
		name   string
		id     Identity
		series []RawSeries
		want   float64
	}{
		{
			name: "floor",
			id:   Identity{Name: "BTR", Overall: 60},
			// no history: lastPoints 0, kd 0 -> raw price 2.5
			want: 5.0,
		},
		{
			name: "ceiling",
			id:   Identity{Name: "Pereira", Overall: 99},
			series: []RawSeries{
				{Title: "Final - 24/10/25", Matches: []RawMatch{
					{Map: "Mirage", Kills: 40, Deaths: 2, Assists: 4, HeadshotPct: 80, Won: true, TeamScore: 13, EnemyScore: 0},
				}},
			},
			want: 20.0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := BuildPlayer(tt.id, tt.series, nil)
			if p.Price != tt.want {
				t.Errorf("Price = %v, want %v", p.Price, tt.want)
			}
			if p.Price < 5.0 || p.Price > 20.0 {
				t.Errorf("Price %v outside [5, 20]", p.Price)
			}
		})
	}
}

func TestBuildPlayerUnparseableDatesKeepOrder(t *testing.T) {
	series := []RawSeries{
		{Title: "primeiro treino", Matches: []RawMatch{{Map: "Mirage", Kills: 1}}},
		{Title: "segundo treino", Matches: []RawMatch{{Map: "Nuke", Kills: 2}}},
	}
	p := BuildPlayer(Identity{Name: "vice", Overall: 80}, series, nil)
	// Equal keys: stable sort keeps authoring order, display reverses it.
	if p.SeriesHistory[0].Title != "segundo treino" || p.SeriesHistory[1].Title != "primeiro treino" {
		t.Errorf("unexpected order: %q, %q", p.SeriesHistory[0].Title, p.SeriesHistory[1].Title)
	}
}

func Test_dateKey(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{title: "Serie 1 - TIM1 0 X 2 BAINheira - 15/10/25", want: "20251015"},
		{title: "Final - 24/10/25", want: "20251024"},
		{title: "sem data", want: ""},
		{title: "", want: ""},
	}
	for _, tt := range tests {
		if got := dateKey(tt.title); got != tt.want {
			t.Errorf("dateKey(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestPlayerIDStable(t *testing.T) {
	if PlayerID("Ratão") != PlayerID(" ratao ") {
		t.Error("PlayerID must be stable under normalization")
	}
	if PlayerID("Mad") == PlayerID("moreno") {
		t.Error("distinct names must not collide")
	}
}
