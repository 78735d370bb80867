package uid

import "testing"

func TestGenerateGameID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateGameID()
		if !IsGameID(id) {
			t.Fatalf("generated id %q does not parse", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestIsGameIDRejectsGarbage(t *testing.T) {
	for _, id := range []string{"", "abc", "../../etc/passwd"} {
		if IsGameID(id) {
			t.Errorf("%q accepted as game id", id)
		}
	}
}
