package runner

import "testing"

func TestSplitWords(t *testing.T) {
	cases := map[string][]string{
		"python3":             {"python3"},
		"python3 -u":          {"python3", "-u"},
		`bash -c "echo hi"`:   {"bash", "-c", "echo hi"},
		`node --flag 'a b' c`: {"node", "--flag", "a b", "c"},
		`echo \"quoted\"`:     {"echo", `"quoted"`},
	}

	for input, want := range cases {
		got, err := SplitWords(input)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", input, err)
		}
		if len(got) != len(want) {
			t.Fatalf("%q: got %v, want %v", input, got, want)
		}
		for i := range got {
			if got[i] != want[i] {
				t.Fatalf("%q: got %v, want %v", input, got, want)
			}
		}
	}
}

func TestSplitWords_UnterminatedQuoteFails(t *testing.T) {
	if _, err := SplitWords(`echo "unterminated`); err == nil {
		t.Fatal("expected error")
	}
}
