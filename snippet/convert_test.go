package snippet_test

import (
	"errors"
	"testing"

	"github.com/nickwells/snipconv.mod/snippet"
	"github.com/nickwells/testhelper.mod/v2/testhelper"
)

const (
	testDataDir   = "testdata"
	convertOutDir = "convertOut"
)

var gfc = testhelper.GoldenFileCfg{
	DirNames:               []string{testDataDir, convertOutDir},
	Sfx:                    "json",
	UpdFlagName:            "upd-convert-files",
	KeepBadResultsFlagName: "keep-bad-results",
}

func init() {
	gfc.AddUpdateFlag()
	gfc.AddKeepBadResultsFlag()
}

// testSources returns a source reader backed by the given map so that
// conversion tests need no real files.
func testSources(files map[string][]string) func(string) ([]string, error) {
	return func(path string) ([]string, error) {
		lines, ok := files[path]
		if !ok {
			return nil, &snippet.SourceReadError{
				Path: path,
				Err:  errors.New("no such file"),
			}
		}
		return lines, nil
	}
}

func TestConvert(t *testing.T) {
	testCases := []struct {
		testhelper.ID
		input  string
		files  map[string][]string
		expOut string
		expErr error
	}{
		{
			ID:     testhelper.MkID("empty input"),
			expOut: "{}",
		},
		{
			ID: testhelper.MkID("pass-through attributes keep their order"),
			input: `
[greet]
scope = "go"
prefix = "gr"
description = "say hello"
body = """
fmt.Println("hello")
"""
priority = 2
trim_trailing_blank_lines = true
`,
			expOut: `{
  "greet": {
    "scope": "go",
    "prefix": "gr",
    "description": "say hello",
    "body": [
      "fmt.Println(\"hello\")"
    ],
    "priority": 2
  }
}`,
		},
		{
			ID: testhelper.MkID("source wins, range crops, both removed"),
			input: `
[main]
prefix = "m"
body = "ignored"
source = "five.txt"
range = [2, 4]
`,
			files: map[string][]string{
				"five.txt": {"one", "two", "three", "four", "five"},
			},
			expOut: `{
  "main": {
    "prefix": "m",
    "body": [
      "two",
      "three",
      "four"
    ]
  }
}`,
		},
		{
			ID: testhelper.MkID("source-only body goes at the end"),
			input: `
[x]
prefix = "p"
source = "one.txt"
description = "d"
`,
			files: map[string][]string{"one.txt": {"a"}},
			expOut: `{
  "x": {
    "prefix": "p",
    "description": "d",
    "body": [
      "a"
    ]
  }
}`,
		},
		{
			ID: testhelper.MkID("range beyond the body gives an empty body"),
			input: `
[y]
body = "a"
range = [5, 9]
`,
			expOut: `{
  "y": {
    "body": []
  }
}`,
		},
		{
			ID: testhelper.MkID("bad range names the snippet"),
			input: `
[bad]
body = "b"
range = [3, 2]
`,
			expErr: errors.New(`snippet "bad": bad "range":` +
				` the start line (3) must not be after the end line (2)`),
		},
		{
			ID: testhelper.MkID("missing body names the snippet"),
			input: `
[nobody]
prefix = "n"
`,
			expErr: errors.New(`snippet "nobody":` +
				` bad "body": the snippet has neither a body nor a source`),
		},
		{
			ID: testhelper.MkID("missing source file names the path"),
			input: `
[x]
source = "no.such.file"
`,
			expErr: errors.New(`snippet "x": the snippet source file` +
				` "no.such.file" cannot be read: no such file`),
		},
	}

	for _, tc := range testCases {
		out, err := snippet.ConvertWithSource(tc.input,
			testSources(tc.files))
		testhelper.DiffErr(t, tc.IDStr(), "error", err, tc.expErr)
		if err != nil {
			continue
		}

		testhelper.DiffString(t, tc.IDStr(), "output", out, tc.expOut)
	}
}

func TestConvertSourceFile(t *testing.T) {
	input := `
[main]
prefix = "m"
source = "testdata/five.txt"
range = [2, 4]
`
	out, err := snippet.Convert(input)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}

	expOut := `{
  "main": {
    "prefix": "m",
    "body": [
      "two",
      "three",
      "four"
    ]
  }
}`
	testhelper.DiffString(t, "source file", "output", out, expOut)
}

func TestConvertMissingSourceFile(t *testing.T) {
	input := `
[x]
body = "b"
source = "testdata/no.such.file"
`
	_, err := snippet.Convert(input)
	if err == nil {
		t.Fatal("an error was expected, got none")
	}

	srcErr := &snippet.SourceReadError{}
	if !errors.As(err, &srcErr) {
		t.Fatalf("expected a SourceReadError, got: %s", err)
	}

	testhelper.DiffString(t, "missing source", "path",
		srcErr.Path, "testdata/no.such.file")
}

func TestConvertGolden(t *testing.T) {
	testCases := []struct {
		testhelper.ID
		input string
	}{
		{
			ID: testhelper.MkID("convert.example"),
			input: `
[for]
scope = "go"
prefix = "for"
description = "insert a counted for loop"
body = """
for i := 0; i ${1:cond}; i++ {
    $2
}
"""
trim_trailing_blank_lines = true

[main]
prefix = "main"
description = "insert a main function"
source = "testdata/five.txt"
range = [2, 4]
`,
		},
	}

	for _, tc := range testCases {
		out, err := snippet.Convert(tc.input)
		if err != nil {
			t.Log(tc.IDStr())
			t.Fatal("\t: unexpected error:", err)
		}

		gfc.Check(t, tc.IDStr(), tc.ID.Name, []byte(out))
	}
}
