package world

import "testing"

func TestResourceByNameRoundTrip(t *testing.T) {
	for r := Resource(0); r < NumResources; r++ {
		got, ok := ResourceByName(r.String())
		if !ok || got != r {
			t.Errorf("ResourceByName(%q) = %v,%v, want %v,true", r.String(), got, ok, r)
		}
	}
}

func TestItemByNameRoundTrip(t *testing.T) {
	for it := Item(0); it < NumItems; it++ {
		got, ok := ItemByName(it.String())
		if !ok || got != it {
			t.Errorf("ItemByName(%q) = %v,%v, want %v,true", it.String(), got, ok, it)
		}
	}
}

func TestTagByNameAcceptsSettlementAlias(t *testing.T) {
	a, ok1 := TagByName("settle")
	b, ok2 := TagByName("settlement")
	if !ok1 || !ok2 || a != b || a != TagSettle {
		t.Error("settle and settlement should both resolve to TagSettle")
	}
}

func TestDefaultRatesMatchReferenceConstants(t *testing.T) {
	r := DefaultRates()
	cases := map[Resource]float64{
		ResFish:       0.08,
		ResGrain:      0.06,
		ResWood:       0.03,
		ResClay:       0.02,
		ResCopper:     0.005,
		ResTin:        0.002,
		ResFire:       0.10,
		ResPlantFiber: 0.04,
		ResCattle:     0.010,
		ResSheep:      0.010,
		ResPig:        0.010,
		ResCharcoal:   0.005,
		ResReligion:   0.002,
		ResTribalism:  0.0005,
	}
	for res, want := range cases {
		if r[res] != want {
			t.Errorf("DefaultRates()[%v] = %v, want %v", res, r[res], want)
		}
	}
}
