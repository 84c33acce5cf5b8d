package parser

import "testing"

func TestScheduleBuild_Basic(t *testing.T) {
	t.Parallel()

	sheet := sheetOf("Photo Schedule",
		[]string{"Time", "Class", "Teacher"},
		[]string{"9:00", "6.1", "Ms Smith"},
		[]string{"9:30", "6.2", "Mr Jones"},
	)
	m := NewScheduleMapBuilder().Build(sheet)
	if m["6.1"] != "Ms Smith" || m["6.2"] != "Mr Jones" {
		t.Fatalf("unexpected map: %v", m)
	}
}

func TestScheduleBuild_CompositeEntry(t *testing.T) {
	t.Parallel()

	// 组合班级整体与各拆分项都入表
	sheet := sheetOf("Schedule",
		[]string{"Class", "Teacher"},
		[]string{"8.3 / 8.1", "Ms Smith"},
	)
	m := NewScheduleMapBuilder().Build(sheet)
	for _, key := range []string{"8.3 / 8.1", "8.3", "8.1"} {
		if m[key] != "Ms Smith" {
			t.Fatalf("key %q: got %q, want Ms Smith", key, m[key])
		}
	}
}

func TestScheduleBuild_SkipsRepeatedHeaderAndBlanks(t *testing.T) {
	t.Parallel()

	sheet := sheetOf("Schedule",
		[]string{"Class", "Teacher"},
		[]string{"6.1", "Ms Smith"},
		[]string{"", "Mr Orphan"},
		[]string{"6.2", ""},
		[]string{"Class", "Teacher"},
		[]string{"6.3", "Ms Lee"},
	)
	m := NewScheduleMapBuilder().Build(sheet)
	if len(m) != 2 || m["6.1"] != "Ms Smith" || m["6.3"] != "Ms Lee" {
		t.Fatalf("unexpected map: %v", m)
	}
}

func TestScheduleLookup_Exact(t *testing.T) {
	t.Parallel()

	m := ScheduleMap{"6.1": "Ms Smith"}
	if got := m.Lookup("6.1"); got != "Ms Smith" {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestScheduleLookup_GradeFallbackDeterministic(t *testing.T) {
	t.Parallel()

	m := ScheduleMap{
		"8.1": "Smith",
		"8.2": "Jones",
		"7.1": "Lee",
	}
	// 键按字典序遍历：8.1 先于 8.2
	want := "Smith / Jones"
	for i := 0; i < 20; i++ {
		if got := m.Lookup("Grade 8"); got != want {
			t.Fatalf("unexpected: %q, want %q", got, want)
		}
	}
}

func TestScheduleLookup_GradeFallbackDedupes(t *testing.T) {
	t.Parallel()

	m := ScheduleMap{
		"8.1": "Smith",
		"8.2": "Smith",
	}
	if got := m.Lookup("8.9"); got != "Smith" {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestScheduleLookup_NoDigitsNoFallback(t *testing.T) {
	t.Parallel()

	m := ScheduleMap{"8.1": "Smith"}
	if got := m.Lookup("Red Room"); got != "" {
		t.Fatalf("unexpected: %q", got)
	}
}
