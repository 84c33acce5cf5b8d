package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/anhkhoinguyen1310/class-roster/internal/model"
	"github.com/anhkhoinguyen1310/class-roster/internal/store"
)

// writeFixture 生成一个标准布局的测试工作簿
func writeFixture(t *testing.T, dir string) string {
	t.Helper()

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", "6A")
	rows := [][]interface{}{
		{"Name", "Class", "Teacher"},
		{"ann lee", "6.1", "MS SMITH"},
		{"BO CHAN", "6.1", "Ms Smith"},
	}
	for i, row := range rows {
		for j, val := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
			f.SetCellValue("6A", cell, val)
		}
	}
	// 备注列补足行数，避免短表被当成课程表
	for i := len(rows); i < 25; i++ {
		cell, _ := excelize.CoordinatesToCellName(4, i+1)
		f.SetCellValue("6A", cell, "-")
	}

	path := filepath.Join(dir, "roster.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save fixture: %v", err)
	}
	return path
}

func collectEvents(t *testing.T, ch <-chan ProgressEvent) (events []ProgressEvent, done *RunSummary) {
	t.Helper()
	for ev := range ch {
		events = append(events, ev)
		if ev.Type == "done" {
			s, ok := ev.Data.(*RunSummary)
			if !ok {
				t.Fatalf("done event data: %T", ev.Data)
			}
			done = s
		}
		if ev.Type == "error" {
			t.Fatalf("unexpected error event: %s", ev.Message)
		}
	}
	return events, done
}

func TestCoordinator_Run(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFixture(t, dir)

	st, err := store.New(filepath.Join(dir, "runs.db"))
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	events, done := collectEvents(t, NewCoordinator(st).Run(RunOptions{
		FilePath:  path,
		Filename:  "roster.xlsx",
		Mode:      model.ModeUniversal,
		OutputDir: dir,
	}))

	if len(events) == 0 || events[0].Type != "start" {
		t.Fatalf("expected start event first: %+v", events)
	}
	if done == nil {
		t.Fatalf("missing done event")
	}
	if done.Records != 2 {
		t.Fatalf("got %d records, want 2", done.Records)
	}
	if _, err := os.Stat(done.OutputPath); err != nil {
		t.Fatalf("output file: %v", err)
	}

	// 运行历史已落库
	run, err := st.GetRun(done.RunID)
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if run.RecordCount != 2 || run.Mode != "universal" {
		t.Fatalf("unexpected run: %+v", run)
	}
}

func TestCoordinator_GroupedWithJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFixture(t, dir)

	events, done := collectEvents(t, NewCoordinator(nil).Run(RunOptions{
		FilePath:   path,
		Mode:       model.ModeUniversal,
		Grouped:    true,
		ExportJSON: true,
		OutputDir:  dir,
	}))
	_ = events

	if done == nil {
		t.Fatalf("missing done event")
	}
	if done.JSONPath == "" {
		t.Fatalf("expected diagnostics json path")
	}
	if _, err := os.Stat(done.JSONPath); err != nil {
		t.Fatalf("diagnostics file: %v", err)
	}

	f, err := excelize.OpenFile(done.OutputPath)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })
	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "Class 6.1" {
		t.Fatalf("unexpected sheets: %v", sheets)
	}
}

func TestCoordinator_UnreadableFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.xlsx")
	if err := os.WriteFile(path, []byte("not an xlsx"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	var sawError bool
	for ev := range NewCoordinator(nil).Run(RunOptions{FilePath: path, Mode: model.ModeUniversal}) {
		if ev.Type == "error" {
			sawError = true
		}
		if ev.Type == "done" {
			t.Fatalf("unexpected done event")
		}
	}
	if !sawError {
		t.Fatalf("expected error event")
	}
}
