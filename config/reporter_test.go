package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReportClose_WritesArchive(t *testing.T) {
	dir := t.TempDir()
	r, err := (&ReporterConfig{Destination: filepath.Join(dir, "report.zip")}).Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	css := filepath.Join(dir, "out.css")
	if err := os.WriteFile(css, []byte(".a { color: red; }\n"), 0644); err != nil {
		t.Fatal(err)
	}
	defs := filepath.Join(dir, "defs")
	if err := os.MkdirAll(filepath.Join(defs, "nested"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(defs, "nested", "card.yaml"), []byte("styles: []\n"), 0644); err != nil {
		t.Fatal(err)
	}

	r.Store("stylesheet.css", css)
	r.Store("stylesheet.css", css) // same path is fine
	r.Store("definitions", defs)
	r.Store("missing.log", filepath.Join(dir, "absent.log"))
	r.StoreData("config.yaml", []byte("version: 1\n"))

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	arc, err := zip.OpenReader(r.Name())
	if err != nil {
		t.Fatalf("report is not a zip archive: %v", err)
	}
	defer arc.Close()

	files := make(map[string]string)
	for _, f := range arc.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		data, _ := io.ReadAll(rc)
		rc.Close()
		files[f.Name] = string(data)
	}

	if arc.File[0].Name != "MANIFEST" {
		t.Errorf("first entry = %q, want MANIFEST", arc.File[0].Name)
	}
	for _, name := range []string{"config.yaml", "definitions/nested/card.yaml", "stylesheet.css"} {
		if _, ok := files[name]; !ok {
			t.Errorf("archive misses %q, has %v", name, files)
		}
	}
	if _, ok := files["missing.log"]; ok {
		t.Error("absent file must not be archived")
	}
	if !strings.Contains(files["MANIFEST"], "missing.log") {
		t.Errorf("MANIFEST does not list absent file:\n%s", files["MANIFEST"])
	}
	if files["config.yaml"] != "version: 1\n" {
		t.Errorf("config.yaml = %q", files["config.yaml"])
	}
}

func TestReportStore_OverwritePanics(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.Store("a", "one")
	defer func() {
		if recover() == nil {
			t.Error("Store() with different path under same name should panic")
		}
	}()
	r.Store("a", "two")
}

func TestReportStoreData_OverwritePanics(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.StoreData("a", nil)
	defer func() {
		if recover() == nil {
			t.Error("StoreData() under existing name should panic")
		}
	}()
	r.StoreData("a", []byte("x"))
}

func TestReportClose_NilReport(t *testing.T) {
	var r *Report
	r.Store("a", "b")
	r.StoreData("c", nil)
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
	if r.Name() != "" {
		t.Errorf("Name() of nil report = %q", r.Name())
	}
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}
