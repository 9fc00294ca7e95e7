package tag

import "github.com/casualjim/tagbus/pkg/stdx"

type tA uint8

const (
	aY tA = iota
	aZ
)

var aSet = stdx.Must1(NewSet[tA]("A", "Y", "Z"))

func (v tA) TypeID() TypeID                { return aSet.ID() }
func (v tA) String() string                { return aSet.Format(v) }
func (v tA) MarshalText() ([]byte, error)  { return aSet.MarshalText(v) }
func (v *tA) UnmarshalText(b []byte) error { return aSet.UnmarshalText(v, b) }

type tB uint16

const (
	bS tB = iota
	bT
)

var bSet = stdx.Must1(NewSet[tB]("B", "S", "T"))

func (v tB) TypeID() TypeID                { return bSet.ID() }
func (v tB) String() string                { return bSet.Format(v) }
func (v tB) MarshalText() ([]byte, error)  { return bSet.MarshalText(v) }
func (v *tB) UnmarshalText(b []byte) error { return bSet.UnmarshalText(v, b) }

type tAB struct{ Variant }

var abUnion = stdx.Must1(NewUnion[tAB]("AB", aSet, bSet))

func newAB[M tA | tB](m M) tAB { return tAB{abUnion.Wrap(m)} }

type tOnlyA struct{ Variant }

var onlyAUnion = stdx.Must1(NewUnion[tOnlyA]("OnlyA", aSet))

func newOnlyA[M tA](m M) tOnlyA { return tOnlyA{onlyAUnion.Wrap(m)} }

type tOuter struct{ Variant }

var outerUnion = stdx.Must1(NewUnion[tOuter]("Outer", abUnion, onlyAUnion))

func newOuter[M tAB | tOnlyA](m M) tOuter { return tOuter{outerUnion.Wrap(m)} }
