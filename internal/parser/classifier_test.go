package parser

import (
	"testing"

	"github.com/anhkhoinguyen1310/class-roster/internal/model"
)

func TestClassify_SkipByName(t *testing.T) {
	t.Parallel()

	c := NewSheetClassifier()
	for _, name := range []string{"Instructions", "Read Me Notes", "Template 2026", "Cover Page"} {
		sheet := sheetOf(name, []string{"Name", "Class", "Teacher"})
		if got := c.Classify(sheet); got.Class != model.SheetClassSkip {
			t.Fatalf("sheet %q: got %s, want skip", name, got.Class)
		}
	}
}

func TestClassify_SkipBeatsContent(t *testing.T) {
	t.Parallel()

	// 名称规则优先于内容规则
	sheet := sheetOf("Schedule Notes",
		[]string{"Class", "Teacher", "Time"},
		[]string{"6.1", "Ms Smith", "9:00"},
	)
	if got := NewSheetClassifier().Classify(sheet); got.Class != model.SheetClassSkip {
		t.Fatalf("got %s, want skip", got.Class)
	}
}

func TestClassify_ScheduleByKeyword(t *testing.T) {
	t.Parallel()

	sheet := sheetOf("Photo Day",
		[]string{"Time", "Class", "Teacher"},
		[]string{"9:00", "6.1", "Ms Smith"},
	)
	if got := NewSheetClassifier().Classify(sheet); got.Class != model.SheetClassSchedule {
		t.Fatalf("got %s, want schedule", got.Class)
	}
}

func TestClassify_ScheduleByShortSheet(t *testing.T) {
	t.Parallel()

	// 无关键词但表很短，也按课程表处理
	sheet := sheetOf("Lookup",
		[]string{"Class", "Teacher"},
		[]string{"6.1", "Ms Smith"},
		[]string{"6.2", "Mr Jones"},
	)
	if got := NewSheetClassifier().Classify(sheet); got.Class != model.SheetClassSchedule {
		t.Fatalf("got %s, want schedule", got.Class)
	}
}

func TestClassify_LongClassTeacherSheetIsStandard(t *testing.T) {
	t.Parallel()

	rows := [][]string{{"Name", "Class", "Teacher"}}
	for i := 0; i < 25; i++ {
		rows = append(rows, []string{"Student X", "6.1", "Ms Smith"})
	}
	sheet := sheetOf("Roster", rows...)
	if got := NewSheetClassifier().Classify(sheet); got.Class != model.SheetClassStandard {
		t.Fatalf("got %s, want standard", got.Class)
	}
}

func TestClassify_GridByHeaderGroups(t *testing.T) {
	t.Parallel()

	sheet := sheetOf("Rooms",
		[]string{"", "6.1", "6.2", "6.3"},
		[]string{"Teacher", "Ms Smith", "Mr Jones", "Ms Lee"},
	)
	if got := NewSheetClassifier().Classify(sheet); got.Class != model.SheetClassGrid {
		t.Fatalf("got %s, want grid", got.Class)
	}
}

func TestClassify_GridByRowLabels(t *testing.T) {
	t.Parallel()

	sheet := sheetOf("Rooms",
		[]string{"", "Red Room", "Blue Room"},
		[]string{"Teacher", "Ms Smith", "Mr Jones"},
		[]string{"Student 1", "Ann Lee", "Bo Chan"},
		[]string{"Student 2", "Cy Diaz", "Di Evans"},
		[]string{"Student 3", "Ed Fox", "Fay Gray"},
	)
	if got := NewSheetClassifier().Classify(sheet); got.Class != model.SheetClassGrid {
		t.Fatalf("got %s, want grid", got.Class)
	}
}

func TestClassify_DefaultStandard(t *testing.T) {
	t.Parallel()

	sheet := sheetOf("6A",
		[]string{"Name", "Notes"},
		[]string{"Ann Lee", ""},
	)
	if got := NewSheetClassifier().Classify(sheet); got.Class != model.SheetClassStandard {
		t.Fatalf("got %s, want standard", got.Class)
	}
}
