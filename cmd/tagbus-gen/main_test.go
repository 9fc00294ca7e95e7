package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/parser"
	"go/token"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/phsym/zeroslog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureOutput captures both zerolog and slog output during test execution
func captureOutput(fn func()) string {
	var buf bytes.Buffer

	oldZeroLogger := log
	oldSlogLogger := slog.Default()
	defer func() {
		log = oldZeroLogger
		slog.SetDefault(oldSlogLogger)
	}()

	output := zerolog.ConsoleWriter{
		Out:        &buf,
		NoColor:    true,
		TimeFormat: time.Stamp,
	}
	log = zerolog.New(output).With().Timestamp().Logger()

	slog.SetDefault(slog.New(
		zeroslog.NewHandler(log, &zeroslog.HandlerOptions{Level: slog.LevelDebug}),
	))

	fn()
	return buf.String()
}

func parse(t *testing.T, content string) (*declarations, error) {
	t.Helper()
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "decls.go", content, parser.ParseComments)
	require.NoError(t, err)
	return collect(fset, file)
}

func TestCollect(t *testing.T) {
	decls, err := parse(t, `package demo

//tagbus:set A Y Z
//tagbus:set B S T
//tagbus:union AB A B
//tagbus:union Nested AB A

// an ordinary comment
//tagbus:message MyMessage MyMessageEnum A B
//tagbus:message OtherMessage OtherMessageEnum AB

//tagbus:master Master
`)
	require.NoError(t, err)

	assert.Equal(t, "demo", decls.Package)
	assert.Equal(t, []setDecl{
		{Name: "A", Members: []string{"Y", "Z"}, Underlying: "uint8"},
		{Name: "B", Members: []string{"S", "T"}, Underlying: "uint8"},
	}, decls.Sets)
	assert.Equal(t, []unionDecl{
		{Name: "AB", Members: []string{"A", "B"}, Descriptors: []string{"ASet", "BSet"}},
		{Name: "Nested", Members: []string{"AB", "A"}, Descriptors: []string{"ABUnion", "ASet"}},
	}, decls.Unions)

	require.Len(t, decls.Messages, 2)
	assert.Equal(t, "MyMessage", decls.Messages[0].Name)
	assert.Equal(t, "MyMessageEnum", decls.Messages[0].Payload.Name)
	assert.Equal(t, []string{"ABUnion"}, decls.Messages[1].Payload.Descriptors)

	require.NotNil(t, decls.Master)
	assert.Equal(t, "Master", decls.Master.Union.Name)
	assert.Equal(t, []string{"MyMessageEnum", "OtherMessageEnum"}, decls.Master.Union.Members)
	assert.Equal(t, []string{"MyMessageEnumUnion", "OtherMessageEnumUnion"}, decls.Master.Union.Descriptors)
	assert.Equal(t, []string{"MyMessage", "OtherMessage"}, decls.Master.Categories)
	assert.True(t, decls.needsBus())
}

func TestCollectRejects(t *testing.T) {
	tests := []struct {
		name       string
		directives string
		want       error
	}{
		{"unknown directive", "//tagbus:enum A Y", errUnknownDirective},
		{"set without members", "//tagbus:set A", errArity},
		{"union without members", "//tagbus:set A Y\n//tagbus:union AB", errArity},
		{"message without members", "//tagbus:set A Y\n//tagbus:message M MEnum", errArity},
		{"master with two names", "//tagbus:master M N", errArity},
		{"unexported name", "//tagbus:set a Y", errInvalidName},
		{"invalid member", "//tagbus:set A 1Y", errInvalidName},
		{"repeated set member", "//tagbus:set A Y Y", errDuplicate},
		{"duplicate type", "//tagbus:set A Y\n//tagbus:set A Z", errDuplicate},
		{"union named like a set", "//tagbus:set A Y\n//tagbus:union A A", errDuplicate},
		{"repeated union member", "//tagbus:set A Y\n//tagbus:union AA A A", errDuplicate},
		{"duplicate message", "//tagbus:set A Y\n//tagbus:message M E1 A\n//tagbus:message M E2 A", errDuplicate},
		{"unknown member", "//tagbus:union AB A B", errUnknownMember},
		{"member declared below", "//tagbus:union AB A\n//tagbus:set A Y", errUnknownMember},
		{"message as member", "//tagbus:set A Y\n//tagbus:message M E A\n//tagbus:union U M", errUnknownMember},
		{"two masters", "//tagbus:set A Y\n//tagbus:message M E A\n//tagbus:master X\n//tagbus:master Y", errMultipleMasters},
		{"master without messages", "//tagbus:set A Y\n//tagbus:master X", errEmptyMaster},
		{"member constant named like the descriptor", "//tagbus:set A B Set", errDuplicate},
		{"union named like a member constant", "//tagbus:set A B C\n//tagbus:union AB A", errDuplicate},
		{"set named like a descriptor", "//tagbus:set A Y\n//tagbus:set ASet Z", errDuplicate},
		{"union named like a union descriptor", "//tagbus:set A Y\n//tagbus:union U A\n//tagbus:union UUnion A", errDuplicate},
		{"constructor collision", "//tagbus:set A Y\n//tagbus:set NewU Z\n//tagbus:union U A", errDuplicate},
		{"message named like a category name", "//tagbus:set A Y\n//tagbus:message M E A\n//tagbus:set MName Z", errDuplicate},
		{"payload named like a category", "//tagbus:set A Y\n//tagbus:message M MCategory A", errDuplicate},
		{"master named like an aggregate", "//tagbus:set A Y\n//tagbus:message M E A\n//tagbus:set XAggregate Z\n//tagbus:master X", errDuplicate},
	}

	for tt := range slices.Values(tests) {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, "package demo\n\n"+tt.directives+"\n")
			require.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "decls.go:")
		})
	}
}

func TestCollectToleratesWhitespace(t *testing.T) {
	decls, err := parse(t, "package demo\n\n//tagbus:set\tA  Y\tZ\n//tagbus:union\tAB A\n")
	require.NoError(t, err)
	require.Len(t, decls.Sets, 1)
	assert.Equal(t, []string{"Y", "Z"}, decls.Sets[0].Members)
	require.Len(t, decls.Unions, 1)
	assert.Equal(t, "AB", decls.Unions[0].Name)
}

func TestCollectRejectsGeneratedCollisions(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "decls.go")
	require.NoError(t, os.WriteFile(testFile, []byte("package demo\n\n//tagbus:set A B Set\n//tagbus:union AB A C\n"), 0o644))

	var err error
	output := captureOutput(func() {
		err = processGoFile(testFile)
	})
	require.ErrorIs(t, err, errDuplicate)
	assert.Contains(t, output, "Invalid declarations")
	assert.NoFileExists(t, outputPath(testFile))
}

func TestCollectReportsEveryProblem(t *testing.T) {
	_, err := parse(t, "package demo\n\n//tagbus:set A\n//tagbus:union AB A B\n")
	require.ErrorIs(t, err, errArity)
	require.ErrorIs(t, err, errUnknownMember)
}

func TestUnderlying(t *testing.T) {
	assert.Equal(t, "uint8", underlying(1))
	assert.Equal(t, "uint8", underlying(256))
	assert.Equal(t, "uint16", underlying(257))
	assert.Equal(t, "uint32", underlying(1<<16+1))
}

func TestHumanList(t *testing.T) {
	assert.Equal(t, "A", humanList([]string{"A"}))
	assert.Equal(t, "A and B", humanList([]string{"A", "B"}))
	assert.Equal(t, "A, B and C", humanList([]string{"A", "B", "C"}))
}

func TestRender(t *testing.T) {
	t.Run("sets only", func(t *testing.T) {
		decls, err := parse(t, "package demo\n\n//tagbus:set Color Red Green Blue\n")
		require.NoError(t, err)

		src, err := render(decls)
		require.NoError(t, err)
		out := string(src)
		assert.True(t, strings.HasPrefix(out, "// Code generated by tagbus-gen. DO NOT EDIT."))
		assert.Contains(t, out, "type Color uint8")
		assert.Contains(t, out, "ColorRed Color = iota")
		assert.Contains(t, out, `tag.NewSet[Color]("Color", "Red", "Green", "Blue")`)
		assert.NotContains(t, out, "tagbus/bus")
	})

	t.Run("matches the demo package", func(t *testing.T) {
		content, err := os.ReadFile(filepath.Join("..", "..", "internal", "demo", "messages.go"))
		require.NoError(t, err)
		want, err := os.ReadFile(filepath.Join("..", "..", "internal", "demo", "messages.tagbus.go"))
		require.NoError(t, err)

		decls, err := parse(t, string(content))
		require.NoError(t, err)
		src, err := render(decls)
		require.NoError(t, err)

		assert.Equal(t, strings.Fields(string(want)), strings.Fields(string(src)))
	})
}

func TestProcessGoFile(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name      string
		content   string
		wantErr   bool
		wantLog   string
		checkFile bool
	}{
		{
			name:      "valid file",
			content:   "package test\n\n//tagbus:set A Y Z\n//tagbus:message M MEnum A\n//tagbus:master Master\n",
			wantLog:   "Generated file",
			checkFile: true,
		},
		{
			name:    "invalid go file",
			content: "package test\ninvalid go code",
			wantErr: true,
			wantLog: "Error parsing file",
		},
		{
			name:    "invalid declarations",
			content: "package test\n\n//tagbus:union AB A B\n",
			wantErr: true,
			wantLog: "Invalid declarations",
		},
		{
			name:    "file without directives",
			content: "package test\n\nfunc regular() {}\n",
			wantLog: "No directives",
		},
	}

	for tt := range slices.Values(tests) {
		t.Run(tt.name, func(t *testing.T) {
			testFile := filepath.Join(tmpDir, strings.ReplaceAll(tt.name, " ", "_")+".go")
			require.NoError(t, os.WriteFile(testFile, []byte(tt.content), 0o644))

			var err error
			output := captureOutput(func() {
				err = processGoFile(testFile)
			})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Contains(t, output, tt.wantLog)

			generated := outputPath(testFile)
			if tt.checkFile {
				content, err := os.ReadFile(generated)
				require.NoError(t, err)
				assert.Contains(t, string(content), "DO NOT EDIT")
				assert.Contains(t, string(content), "var MasterAggregate = ")
			} else {
				assert.NoFileExists(t, generated)
			}
		})
	}
}

func TestIsSource(t *testing.T) {
	assert.True(t, isSource("messages.go"))
	assert.False(t, isSource("messages_test.go"))
	assert.False(t, isSource("messages.tagbus.go"))
	assert.False(t, isSource("README.md"))
	assert.Equal(t, filepath.Join("a", "messages.tagbus.go"), outputPath(filepath.Join("a", "messages.go")))
}

func TestMainFunction(t *testing.T) {
	tmpDir := t.TempDir()

	validDir := filepath.Join(tmpDir, "valid")
	require.NoError(t, os.MkdirAll(validDir, 0o755))
	validFile := filepath.Join(validDir, "valid.go")
	require.NoError(t, os.WriteFile(validFile, []byte("package test\n\n//tagbus:set A Y Z\n"), 0o644))

	invalidDir := filepath.Join(tmpDir, "invalid")
	require.NoError(t, os.MkdirAll(invalidDir, 0o755))
	invalidFile := filepath.Join(invalidDir, "invalid.go")
	require.NoError(t, os.WriteFile(invalidFile, []byte("invalid go code"), 0o644))

	tests := []struct {
		name    string
		args    []string
		wantErr bool
		wantLog string
	}{
		{"process directory", []string{"-path", validDir}, false, "Generated file"},
		{"process single valid file", []string{"-v", "-path", validFile}, false, "Generated file"},
		{"process single invalid file", []string{"-path", invalidFile}, true, "Error parsing file"},
		{"invalid path", []string{"-path", "/nonexistent/path"}, true, "Error accessing path"},
	}

	for tt := range slices.Values(tests) {
		t.Run(tt.name, func(t *testing.T) {
			origArgs := os.Args
			defer func() { os.Args = origArgs }()

			os.Args = append([]string{"cmd"}, tt.args...)
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)

			var exitCode int
			oldOsExit := osExit
			defer func() { osExit = oldOsExit }()
			osExit = func(code int) {
				exitCode = code
				panic(fmt.Sprintf("os.Exit(%d)", code))
			}

			output := captureOutput(func() {
				defer func() {
					if r := recover(); r != nil {
						t.Logf("Recovered from panic: %v", r)
					}
				}()
				main()
			})
			t.Logf("Captured output: %s", output)

			if tt.wantErr {
				assert.Equal(t, 1, exitCode, "Expected exit code 1 for error case")
			} else {
				assert.Equal(t, 0, exitCode, "Expected exit code 0 for success case")
			}
			assert.Contains(t, output, tt.wantLog)
		})
	}
}
