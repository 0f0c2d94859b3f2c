package deal

import (
	"reflect"
	"testing"

	"github.com/codrin-preda/gamemna/internal/model"
)

func FuzzScoreStaysClampedAndDeterministic(f *testing.F) {
	f.Add(4, 0.5, 0.5)
	f.Add(8, 0.1, 0.05)
	f.Add(1, 0.9, 0.9)
	f.Add(-100, -5.0, 99.0)
	f.Add(0, 0.0, 0.0)

	f.Fuzz(func(t *testing.T, bidders int, diligence, fit float64) {
		in := model.DealInput{Bidders: bidders, DueDiligence: diligence, CulturalFit: fit}

		first := Score(in, nil)
		if first.Score < 0 || first.Score > 100 {
			t.Fatalf("Score(%+v) = %d, outside [0,100]", in, first.Score)
		}

		switch first.Level {
		case model.LevelLow, model.LevelHigh, model.LevelCritical:
		default:
			t.Fatalf("Score(%+v) produced unknown level %q", in, first.Level)
		}

		second := Score(in, nil)
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("Score(%+v) is not deterministic", in)
		}
	})
}
