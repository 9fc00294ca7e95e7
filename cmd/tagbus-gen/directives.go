package main

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"strings"
)

const directivePrefix = "//tagbus:"

var (
	errUnknownDirective = errors.New("unknown directive")
	errArity            = errors.New("wrong number of arguments")
	errInvalidName      = errors.New("invalid name")
	errDuplicate        = errors.New("duplicate declaration")
	errUnknownMember    = errors.New("unknown member")
	errMultipleMasters  = errors.New("more than one master")
	errEmptyMaster      = errors.New("master without messages")
)

type kind int

const (
	kindSet kind = iota + 1
	kindUnion
	kindMessage
	kindMaster
)

type setDecl struct {
	Name       string
	Members    []string
	Underlying string
}

type unionDecl struct {
	Name        string
	Members     []string
	Descriptors []string
}

type messageDecl struct {
	Name    string
	Payload unionDecl
}

type masterDecl struct {
	Union      unionDecl
	Categories []string
}

type declarations struct {
	Package  string
	Sets     []setDecl
	Unions   []unionDecl
	Messages []messageDecl
	Master   *masterDecl
}

func (d *declarations) empty() bool {
	return len(d.Sets) == 0 && len(d.Unions) == 0 && len(d.Messages) == 0 && d.Master == nil
}

func (d *declarations) needsBus() bool {
	return len(d.Messages) > 0 || d.Master != nil
}

// collector resolves directives in source order.
type collector struct {
	decls     declarations
	kinds     map[string]kind
	taken     map[string]string
	master    string
	masterPos token.Position
	errs      []error
}

// collect reads every //tagbus: directive of file. All problems are
// reported together.
func collect(fset *token.FileSet, file *ast.File) (*declarations, error) {
	c := &collector{
		decls: declarations{Package: file.Name.Name},
		kinds: make(map[string]kind),
		taken: make(map[string]string),
	}

	for _, group := range file.Comments {
		for _, comment := range group.List {
			if !strings.HasPrefix(comment.Text, directivePrefix) {
				continue
			}
			pos := fset.Position(comment.Pos())
			if err := c.directive(pos, strings.TrimPrefix(comment.Text, directivePrefix)); err != nil {
				c.errs = append(c.errs, fmt.Errorf("%s: %w", pos, err))
			}
		}
	}

	if c.master != "" {
		if err := c.resolveMaster(); err != nil {
			c.errs = append(c.errs, fmt.Errorf("%s: %w", c.masterPos, err))
		}
	}
	if len(c.errs) > 0 {
		return nil, errors.Join(c.errs...)
	}
	return &c.decls, nil
}

func (c *collector) directive(pos token.Position, text string) error {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return fmt.Errorf("%w: empty directive", errUnknownDirective)
	}
	verb, args := fields[0], fields[1:]

	switch verb {
	case "set":
		if len(args) < 2 {
			return fmt.Errorf("%w: set needs a name and at least one member", errArity)
		}
		return c.set(args[0], args[1:])
	case "union":
		if len(args) < 2 {
			return fmt.Errorf("%w: union needs a name and at least one member", errArity)
		}
		u, err := c.union(args[0], args[1:])
		if err != nil {
			return err
		}
		c.decls.Unions = append(c.decls.Unions, u)
		return nil
	case "message":
		if len(args) < 3 {
			return fmt.Errorf("%w: message needs a name, a payload name and at least one member", errArity)
		}
		return c.message(args[0], args[1], args[2:])
	case "master":
		if len(args) != 1 {
			return fmt.Errorf("%w: master takes exactly one name", errArity)
		}
		if c.master != "" {
			return fmt.Errorf("%w: %s and %s", errMultipleMasters, c.master, args[0])
		}
		if err := c.claim(args[0], kindMaster); err != nil {
			return err
		}
		if err := c.reserve(args[0], args[0], args[0]+"Union", "New"+args[0], args[0]+"Aggregate"); err != nil {
			return err
		}
		c.master, c.masterPos = args[0], pos
		return nil
	default:
		return fmt.Errorf("%w: %q", errUnknownDirective, verb)
	}
}

func (c *collector) claim(name string, k kind) error {
	if !token.IsIdentifier(name) || !token.IsExported(name) {
		return fmt.Errorf("%w: %q is not an exported identifier", errInvalidName, name)
	}
	if _, dup := c.kinds[name]; dup {
		return fmt.Errorf("%w: %s", errDuplicate, name)
	}
	c.kinds[name] = k
	return nil
}

// reserve records the package level identifiers the output declares for
// owner, so that no two declarations generate the same identifier.
func (c *collector) reserve(owner string, idents ...string) error {
	batch := make(map[string]struct{}, len(idents))
	for _, ident := range idents {
		if prev, dup := c.taken[ident]; dup {
			return fmt.Errorf("%w: %s generates %s, already declared by %s", errDuplicate, owner, ident, prev)
		}
		if _, dup := batch[ident]; dup {
			return fmt.Errorf("%w: %s generates %s twice", errDuplicate, owner, ident)
		}
		batch[ident] = struct{}{}
	}
	for _, ident := range idents {
		c.taken[ident] = owner
	}
	return nil
}

func (c *collector) set(name string, members []string) error {
	seen := make(map[string]struct{}, len(members))
	for _, member := range members {
		if !token.IsIdentifier(member) {
			return fmt.Errorf("%w: %s member %q", errInvalidName, name, member)
		}
		if _, dup := seen[member]; dup {
			return fmt.Errorf("%w: %s repeats %s", errDuplicate, name, member)
		}
		seen[member] = struct{}{}
	}
	if err := c.claim(name, kindSet); err != nil {
		return err
	}
	idents := []string{name, name + "Set"}
	for _, member := range members {
		idents = append(idents, name+member)
	}
	if err := c.reserve(name, idents...); err != nil {
		return err
	}

	c.decls.Sets = append(c.decls.Sets, setDecl{
		Name:       name,
		Members:    members,
		Underlying: underlying(len(members)),
	})
	return nil
}

func (c *collector) union(name string, members []string) (unionDecl, error) {
	u := unionDecl{Name: name, Members: members}
	seen := make(map[string]struct{}, len(members))
	for _, member := range members {
		if _, dup := seen[member]; dup {
			return unionDecl{}, fmt.Errorf("%w: %s repeats %s", errDuplicate, name, member)
		}
		seen[member] = struct{}{}

		switch c.kinds[member] {
		case kindSet:
			u.Descriptors = append(u.Descriptors, member+"Set")
		case kindUnion:
			u.Descriptors = append(u.Descriptors, member+"Union")
		default:
			return unionDecl{}, fmt.Errorf("%w: %s references %s, which is not a set or union declared above", errUnknownMember, name, member)
		}
	}
	if err := c.claim(name, kindUnion); err != nil {
		return unionDecl{}, err
	}
	if err := c.reserve(name, name, name+"Union", "New"+name); err != nil {
		return unionDecl{}, err
	}
	return u, nil
}

func (c *collector) message(name, payload string, members []string) error {
	if err := c.claim(name, kindMessage); err != nil {
		return err
	}
	if err := c.reserve(name, name, name+"Name", name+"Category", "New"+name); err != nil {
		return err
	}
	u, err := c.union(payload, members)
	if err != nil {
		return err
	}
	c.decls.Messages = append(c.decls.Messages, messageDecl{Name: name, Payload: u})
	return nil
}

func (c *collector) resolveMaster() error {
	if len(c.decls.Messages) == 0 {
		return fmt.Errorf("%w: %s", errEmptyMaster, c.master)
	}
	m := &masterDecl{Union: unionDecl{Name: c.master}}
	for _, msg := range c.decls.Messages {
		m.Union.Members = append(m.Union.Members, msg.Payload.Name)
		m.Union.Descriptors = append(m.Union.Descriptors, msg.Payload.Name+"Union")
		m.Categories = append(m.Categories, msg.Name)
	}
	c.decls.Master = m
	return nil
}

// underlying picks the smallest unsigned type that numbers every member.
func underlying(members int) string {
	switch {
	case members <= 1<<8:
		return "uint8"
	case members <= 1<<16:
		return "uint16"
	default:
		return "uint32"
	}
}
