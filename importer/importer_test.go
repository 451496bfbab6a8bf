package importer

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/simplifiedchinese"
)

// writeUTF16LEFile creates a UTF-16LE file with BOM from the given UTF-8
// content string.
func writeUTF16LEFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)

	runes := []rune(content)
	buf := make([]byte, 0, 2+len(runes)*2)
	buf = append(buf, 0xFF, 0xFE)
	for _, r := range runes {
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], uint16(r))
		buf = append(buf, b[:]...)
	}

	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseResourceLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{input: "pool-a 10.0.0.1", want: "pool-a 10.0.0.1"},
		{input: "pool-a\t10.0.0.1", want: "pool-a 10.0.0.1"},
		{input: "pool-a,10.0.0.1", want: "pool-a 10.0.0.1"},
		{input: "pool-a:10.0.0.1", want: "pool-a 10.0.0.1"},
		{input: "pool-a|10.0.0.1", want: "pool-a 10.0.0.1"},
		{input: "pool-a;10.0.0.1", want: "pool-a 10.0.0.1"},
		{input: "  pool-a   10.0.0.1  extra", want: "pool-a 10.0.0.1"},
		{input: "pool-a, 10.0.0.1", want: "pool-a, 10.0.0.1"},
		{input: "10.0.0.1", want: "10.0.0.1"},
		{input: "pool-a,", want: "pool-a,"},
	}

	for _, tc := range tests {
		if got := parseResourceLine(tc.input); got != tc.want {
			t.Fatalf("parseResourceLine(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestTextReader_SkipsBlankAndComments(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "service", []byte("# pools\n\npool-a 10.0.0.1\n   \npool-b,10.0.0.2\n"))

	lines, err := (&TextReader{}).Read(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[1].Number != 5 {
		t.Fatalf("expected line number 5, got %d", lines[1].Number)
	}
}

func TestTextReader_DecodesUTF16AndGBK(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	utf16Path := writeUTF16LEFile(t, dir, "utf16", "资源池甲 10.0.0.1\n")
	gbk, err := simplifiedchinese.GBK.NewEncoder().Bytes([]byte("资源池乙 10.0.0.2\n"))
	if err != nil {
		t.Fatal(err)
	}
	gbkPath := writeFile(t, dir, "gbk", gbk)
	bomPath := writeFile(t, dir, "bom", append([]byte{0xEF, 0xBB, 0xBF}, []byte("资源池丙 10.0.0.3\n")...))

	tests := map[string]string{
		utf16Path: "资源池甲 10.0.0.1",
		gbkPath:   "资源池乙 10.0.0.2",
		bomPath:   "资源池丙 10.0.0.3",
	}
	for path, want := range tests {
		lines, err := (&TextReader{Encoding: EncodingAuto}).Read(path)
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		if len(lines) != 1 || lines[0].Fields[0] != want {
			t.Fatalf("read %s: got %+v, want %q", path, lines, want)
		}
	}

	lines, err := (&TextReader{Encoding: EncodingGBK}).Read(gbkPath)
	if err != nil {
		t.Fatalf("explicit gbk: %v", err)
	}
	if lines[0].Fields[0] != "资源池乙 10.0.0.2" {
		t.Fatalf("explicit gbk: got %q", lines[0].Fields[0])
	}
}

func TestReaderForFormat(t *testing.T) {
	t.Parallel()

	if _, ok := mustReader(t, "list.csv").(*CSVReader); !ok {
		t.Fatalf("expected csv reader")
	}
	if _, ok := mustReader(t, "list.XLSX").(*ExcelReader); !ok {
		t.Fatalf("expected excel reader")
	}
	if _, ok := mustReader(t, "service").(*TextReader); !ok {
		t.Fatalf("expected text reader")
	}
	if _, err := ReaderForPath("list.xls", ""); err == nil {
		t.Fatalf("expected error for xls")
	}
	if _, err := ReaderForPath("list.txt", "latin1"); err == nil {
		t.Fatalf("expected error for unknown encoding")
	}
}

func mustReader(t *testing.T, path string) Reader {
	t.Helper()
	reader, err := ReaderForPath(path, EncodingAuto)
	if err != nil {
		t.Fatalf("reader for %s: %v", path, err)
	}
	return reader
}

func TestLoad_AllFormats(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	writeFile(t, dir, "service.csv", []byte("pool-a,10.0.0.1\n#skip,me\n\"pool b\",10.0.0.2,ignored\nsolo\n"))
	writeFile(t, dir, "from_account", []byte("app\n\n ops \n"))

	book := excelize.NewFile()
	if err := book.SetSheetRow("Sheet1", "A1", &[]any{"zhm@hq.cmcc"}); err != nil {
		t.Fatal(err)
	}
	if err := book.SetSheetRow("Sheet1", "A3", &[]any{"", "lee@hq.cmcc"}); err != nil {
		t.Fatal(err)
	}
	if err := book.SaveAs(filepath.Join(dir, "master_account.xlsx")); err != nil {
		t.Fatal(err)
	}
	book.Close()

	lists, err := Load(dir, DefaultNames(), EncodingAuto)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := []string{"pool-a 10.0.0.1", "pool b 10.0.0.2", "solo"}; !reflect.DeepEqual(lists.Resources, want) {
		t.Fatalf("resources = %q, want %q", lists.Resources, want)
	}
	if want := []string{"app", "ops"}; !reflect.DeepEqual(lists.SubAccounts, want) {
		t.Fatalf("sub accounts = %q, want %q", lists.SubAccounts, want)
	}
	if want := []string{"zhm@hq.cmcc", "lee@hq.cmcc"}; !reflect.DeepEqual(lists.MasterAccounts, want) {
		t.Fatalf("master accounts = %q, want %q", lists.MasterAccounts, want)
	}
	if got := lists.Files["service"]; got != filepath.Join(dir, "service.csv") {
		t.Fatalf("unexpected resolved file %q", got)
	}
}

func TestLoad_MissingFilesAreEmpty(t *testing.T) {
	t.Parallel()

	lists, err := Load(t.TempDir(), DefaultNames(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lists.Resources) != 0 || len(lists.SubAccounts) != 0 || len(lists.MasterAccounts) != 0 {
		t.Fatalf("expected empty lists, got %+v", lists)
	}
}

func TestEnsureFiles(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "config")

	created, err := EnsureFiles(dir, DefaultNames())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(created) != 3 {
		t.Fatalf("expected 3 created files, got %d", len(created))
	}

	writeFile(t, dir, "service", []byte("pool 10.0.0.1\n"))
	created, err = EnsureFiles(dir, DefaultNames())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(created) != 0 {
		t.Fatalf("expected nothing created on second run, got %v", created)
	}
	content, err := os.ReadFile(filepath.Join(dir, "service"))
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "pool 10.0.0.1\n" {
		t.Fatalf("existing file was modified: %q", content)
	}
}
