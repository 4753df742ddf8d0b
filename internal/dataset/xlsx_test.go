package dataset

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeWorkbook builds a two-sheet workbook. "Notes" is sheet 1 and "Data"
// is sheet 2; the Data relationship uses an absolute target.
func writeWorkbook(t *testing.T) string {
	t.Helper()
	files := map[string]string{
		"xl/workbook.xml": `<?xml version="1.0" encoding="UTF-8"?>
<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<sheets><sheet name="Notes" sheetId="1" r:id="rId1"/><sheet name="Data" sheetId="2" r:id="rId2"/></sheets>
</workbook>`,
		"xl/_rels/workbook.xml.rels": `<?xml version="1.0" encoding="UTF-8"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="worksheet" Target="worksheets/sheet1.xml"/>
<Relationship Id="rId2" Type="worksheet" Target="/xl/worksheets/sheet2.xml"/>
</Relationships>`,
		"xl/sharedStrings.xml": `<?xml version="1.0" encoding="UTF-8"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<si><t>model</t></si><si><t>r2</t></si><si><t>lr</t></si><si><t>rf</t></si><si><t>note</t></si>
</sst>`,
		"xl/worksheets/sheet1.xml": `<?xml version="1.0" encoding="UTF-8"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData>
<row r="1"><c r="A1" t="s"><v>4</v></c></row>
<row r="2"><c r="A2" t="inlineStr"><is><t>draft</t></is></c></row>
</sheetData></worksheet>`,
		"xl/worksheets/sheet2.xml": `<?xml version="1.0" encoding="UTF-8"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData>
<row r="1"><c r="A1" t="s"><v>0</v></c><c r="B1" t="s"><v>1</v></c><c r="C1" t="inlineStr"><is><t>rmse</t></is></c></row>
<row r="2"><c r="A2" t="s"><v>2</v></c><c r="B2"><v>0.85</v></c><c r="C2"><v>3.5</v></c></row>
<row r="3"><c r="A3" t="s"><v>3</v></c><c r="C3"><v>2.25</v></c></row>
<row r="4"><c r="A4" t="inlineStr"><is><t>xgb</t></is></c><c r="B4"><v>0.92</v></c><c r="C4"><v>1.75</v></c></row>
</sheetData></worksheet>`,
	}
	p := filepath.Join(t.TempDir(), "metrics.xlsx")
	f, err := os.Create(p)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	zw := zip.NewWriter(f)
	for name, body := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return p
}

func TestLoadXLSXBySheetName(t *testing.T) {
	p := writeWorkbook(t)
	opt := DefaultOptions()
	opt.Sheet = "data"
	tbl, err := LoadFile(p, opt)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got := strings.Join(tbl.Names(), ","); got != "model,r2,rmse" {
		t.Fatalf("names = %s", got)
	}
	if tbl.Rows() != 3 {
		t.Fatalf("rows = %d, want 3", tbl.Rows())
	}
	model, _ := tbl.Column("model")
	if model.Kind() != Categorical {
		t.Fatalf("model kind = %s", model.Kind())
	}
	if s, _ := model.Text(2); s != "xgb" {
		t.Fatalf("model[2] = %q, want xgb", s)
	}
	r2, _ := tbl.Column("r2")
	if r2.Kind() != Numeric || r2.Missing() != 1 {
		t.Fatalf("r2 kind=%s missing=%d", r2.Kind(), r2.Missing())
	}
	if v, _ := r2.Float(2); v != 0.92 {
		t.Fatalf("r2[2] = %v, want 0.92", v)
	}
}

func TestLoadXLSXByIndexAndMaxRows(t *testing.T) {
	p := writeWorkbook(t)
	opt := DefaultOptions()
	tbl, err := LoadXLSX(p, opt)
	if err != nil {
		t.Fatalf("default sheet: %v", err)
	}
	if got := strings.Join(tbl.Names(), ","); got != "note" || tbl.Rows() != 1 {
		t.Fatalf("default sheet names=%s rows=%d", got, tbl.Rows())
	}

	opt.SheetIndex = 2
	opt.MaxRows = 2
	tbl, err = LoadXLSX(p, opt)
	if err != nil {
		t.Fatalf("sheet 2: %v", err)
	}
	if tbl.Rows() != 2 || tbl.Width() != 3 {
		t.Fatalf("rows=%d width=%d, want 2/3", tbl.Rows(), tbl.Width())
	}
}

func TestLoadXLSXUnknownSheet(t *testing.T) {
	opt := DefaultOptions()
	opt.Sheet = "Missing"
	_, err := LoadXLSX(writeWorkbook(t), opt)
	if !errors.Is(err, ErrSheetNotFound) {
		t.Fatalf("err = %v, want ErrSheetNotFound", err)
	}
	if !strings.Contains(err.Error(), "Notes, Data") {
		t.Fatalf("error should list sheets: %v", err)
	}
}

// Relationship targets may carry a leading slash; zip entries never do.
func TestNormalizeRelPath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/xl/worksheets/sheet1.xml", "xl/worksheets/sheet1.xml"},
		{"xl/worksheets/sheet1.xml", "xl/worksheets/sheet1.xml"},
		{"/worksheets/sheet1.xml", "xl/worksheets/sheet1.xml"},
		{"worksheets/sheet1.xml", "xl/worksheets/sheet1.xml"},
		{"styles.xml", "xl/styles.xml"},
		{"/xl/styles.xml", "xl/styles.xml"},
	}
	for _, tt := range tests {
		if got := normalizeRelPath(tt.input); got != tt.expected {
			t.Errorf("normalizeRelPath(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestColIndexFromRef(t *testing.T) {
	for ref, want := range map[string]int{"A1": 0, "C12": 2, "z3": 25, "AA10": 26, "AB": 27} {
		if got := colIndexFromRef(ref); got != want {
			t.Errorf("colIndexFromRef(%q) = %d, want %d", ref, got, want)
		}
	}
}
