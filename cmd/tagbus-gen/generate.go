package main

import (
	"bytes"
	"fmt"
	"go/parser"
	"go/token"
	"os"
	"strconv"
	"strings"
	"text/template"

	"mvdan.cc/gofumpt/format"
)

var tmpl = template.Must(template.New("tagbus").Funcs(template.FuncMap{
	"quote":      strconv.Quote,
	"list":       humanList,
	"constraint": func(members []string) string { return strings.Join(members, " | ") },
}).Parse(source))

const source = `// Code generated by tagbus-gen. DO NOT EDIT.

package {{.Package}}

import (
{{- if .NeedsBus}}
	"github.com/casualjim/tagbus/bus"
{{- end}}
	"github.com/casualjim/tagbus/pkg/stdx"
	"github.com/casualjim/tagbus/tag"
)

{{- define "union"}}
type {{.Name}} struct{ tag.Variant }

var {{.Name}}Union = stdx.Must1(tag.NewUnion[{{.Name}}]({{quote .Name}}{{range .Descriptors}}, {{.}}{{end}}))

func New{{.Name}}[M {{constraint .Members}}](m M) {{.Name}} {
	return {{.Name}}{ {{- .Name}}Union.Wrap(m)}
}
{{- end}}
{{range $s := .Sets}}
// {{$s.Name}} is a tag set with members {{list $s.Members}}.
type {{$s.Name}} {{$s.Underlying}}

const (
{{- range $i, $m := $s.Members}}
	{{$s.Name}}{{$m}}{{if eq $i 0}} {{$s.Name}} = iota{{end}}
{{- end}}
)

var {{$s.Name}}Set = stdx.Must1(tag.NewSet[{{$s.Name}}]({{quote $s.Name}}{{range $s.Members}}, {{quote .}}{{end}}))

func (v {{$s.Name}}) TypeID() tag.TypeID { return {{$s.Name}}Set.ID() }

func (v {{$s.Name}}) String() string { return {{$s.Name}}Set.Format(v) }

func (v {{$s.Name}}) Equal(other any) bool { return tag.Equal(v, other) }

func (v {{$s.Name}}) MarshalText() ([]byte, error) { return {{$s.Name}}Set.MarshalText(v) }

func (v *{{$s.Name}}) UnmarshalText(text []byte) error { return {{$s.Name}}Set.UnmarshalText(v, text) }
{{end}}
{{- range $u := .Unions}}
// {{$u.Name}} is a union over {{list $u.Members}}.
{{- template "union" $u}}
{{end}}
{{- range $m := .Messages}}
// {{$m.Payload.Name}} is the payload of {{$m.Name}}, a union over {{list $m.Payload.Members}}.
{{- template "union" $m.Payload}}

const {{$m.Name}}Name = {{quote $m.Name}}

// {{$m.Name}} is the message category {{$m.Name}}.
type {{$m.Name}} struct{ code {{$m.Payload.Name}} }

func New{{$m.Name}}[M {{constraint $m.Payload.Members}}](m M) {{$m.Name}} {
	return {{$m.Name}}{code: New{{$m.Payload.Name}}(m)}
}

func ({{$m.Name}}) CategoryName() string { return {{$m.Name}}Name }

func (m {{$m.Name}}) Code() {{$m.Payload.Name}} { return m.code }

func (m {{$m.Name}}) Payload() tag.Value { return m.code }

func (m {{$m.Name}}) String() string { return {{$m.Name}}Name + "(" + m.code.String() + ")" }

var {{$m.Name}}Category = stdx.Must1(bus.Declare[{{$m.Name}}]({{$m.Payload.Name}}Union))
{{end}}
{{- with .Master}}
// {{.Union.Name}} is the union over every category payload.
{{- template "union" .Union}}

var {{.Union.Name}}Aggregate = stdx.Must1(bus.Aggregate({{.Union.Name}}Union{{range .Categories}}, {{.}}Category{{end}}))
{{end}}`

// humanList renders members as "A", "A and B" or "A, B and C".
func humanList(members []string) string {
	if len(members) < 2 {
		return strings.Join(members, "")
	}
	return strings.Join(members[:len(members)-1], ", ") + " and " + members[len(members)-1]
}

type templateData struct {
	*declarations
	NeedsBus bool
}

// render produces the formatted source of the generated file.
func render(decls *declarations) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, templateData{declarations: decls, NeedsBus: decls.needsBus()}); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	src, err := format.Source(buf.Bytes(), format.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to format generated code: %w\n%s", err, buf.Bytes())
	}
	return src, nil
}

func processGoFile(path string) error {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("Error parsing file")
		return err
	}

	decls, err := collect(fset, file)
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("Invalid declarations")
		return err
	}
	if decls.empty() {
		log.Debug().Str("file", path).Msg("No directives")
		return nil
	}

	src, err := render(decls)
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("Error generating code")
		return err
	}

	out := outputPath(path)
	if err := os.WriteFile(out, src, 0o644); err != nil {
		log.Error().Err(err).Str("file", out).Msg("Error writing file")
		return err
	}
	log.Info().
		Str("file", out).
		Int("sets", len(decls.Sets)).
		Int("unions", len(decls.Unions)).
		Int("messages", len(decls.Messages)).
		Msg("Generated file")
	return nil
}
