package parser

import "testing"

func TestCleanName_UniformCaseToTitle(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"john doe":   "John Doe",
		"JANE SMITH": "Jane Smith",
		"  ann  ":    "Ann",
		"MCDONALD":   "McDonald",
		"macarthur":  "MacArthur",
		"O'BRIEN":    "O'Brien",
	}
	for in, want := range cases {
		if got := CleanName(in); got != want {
			t.Fatalf("CleanName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCleanName_MixedCasePreserved(t *testing.T) {
	t.Parallel()

	// 已有大小写混排的名字不改写（除姓氏前缀修正外）
	cases := map[string]string{
		"McDonald":     "McDonald",
		"Jane deVries": "Jane deVries",
		"Mcdonald":     "McDonald",
	}
	for in, want := range cases {
		if got := CleanName(in); got != want {
			t.Fatalf("CleanName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCleanName_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"MCDONALD", "john doe", "O'BRIEN", "MacArthur",
		"  JANE   SMITH  ", "mccarthy", "Élise dupont",
	}
	for _, in := range inputs {
		once := CleanName(in)
		twice := CleanName(once)
		if once != twice {
			t.Fatalf("CleanName not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}

func TestCleanName_Empty(t *testing.T) {
	t.Parallel()

	if got := CleanName("   "); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestCleanSupervisor_NewlinesAndParts(t *testing.T) {
	t.Parallel()

	if got := CleanSupervisor("MS SMITH\nMR JONES"); got != "Ms Smith, Mr Jones" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := CleanSupervisor("  ms  smith ,  mr jones "); got != "Ms Smith, Mr Jones" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := CleanSupervisor(""); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestFirstDigitRun(t *testing.T) {
	t.Parallel()

	if got := firstDigitRun("Grade 8.3"); got != "8" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := firstDigitRun("6th Grade"); got != "6" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := firstDigitRun("no digits"); got != "" {
		t.Fatalf("unexpected: %q", got)
	}
}
