package poker

import (
	"testing"
)

func TestCategorizeHoleCards(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		hole     string
		expected HoleCardCategory
	}{
		{"Pocket Aces", "As Ah", CategoryPremium},
		{"Pocket Kings", "Kh Kd", CategoryPremium},
		{"Pocket Jacks", "Jh Jd", CategoryPremium},
		{"Ace King suited", "As Ks", CategoryPremium},
		{"King Ace offsuit", "Kh Ac", CategoryPremium},

		{"Pocket Tens", "Tc Th", CategoryStrong},
		{"Ace Queen suited", "As Qs", CategoryStrong},
		{"Ace Jack offsuit", "Ad Jc", CategoryStrong},

		{"Pocket Nines", "9c 9h", CategoryMedium},
		{"Pocket Sevens", "7h 7c", CategoryMedium},
		{"King Queen suited", "Ks Qs", CategoryMedium},
		{"Queen Jack suited", "Qd Jd", CategoryMedium},
		{"Ace Ten suited", "Ah Th", CategoryMedium},

		{"Pocket Sixes", "6c 6h", CategoryWeak},
		{"Pocket Twos", "2c 2h", CategoryWeak},
		{"Suited connectors 76s", "7h 6h", CategoryWeak},
		{"Suited one-gapper 53s", "5d 3d", CategoryWeak},

		{"Seven Two offsuit", "7c 2h", CategoryTrash},
		{"Nine Three offsuit", "9d 3s", CategoryTrash},
		{"King Queen offsuit", "Ks Qh", CategoryTrash},
		{"Suited three-gapper", "9s 5s", CategoryTrash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cards := MustParseCards(tt.hole)
			if got := CategorizeHoleCards(cards[0], cards[1]); got != tt.expected {
				t.Errorf("CategorizeHoleCards(%s) = %s, want %s", tt.hole, got, tt.expected)
			}
		})
	}
}

func TestCategorizeInvalidCards(t *testing.T) {
	t.Parallel()

	if got := CategorizeHoleCards(Card{}, MustParseCards("As")[0]); got != CategoryUnknown {
		t.Errorf("zero card categorized as %s", got)
	}
}
