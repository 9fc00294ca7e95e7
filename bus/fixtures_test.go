package bus

import (
	"github.com/casualjim/tagbus/pkg/stdx"
	"github.com/casualjim/tagbus/tag"
)

type ping uint8

const (
	pingHello ping = iota
	pingBye
)

var pingSet = stdx.Must1(tag.NewSet[ping]("Ping", "Hello", "Bye"))

func (v ping) TypeID() tag.TypeID { return pingSet.ID() }
func (v ping) String() string     { return pingSet.Format(v) }

type pingEnum struct{ tag.Variant }

var pingEnumUnion = stdx.Must1(tag.NewUnion[pingEnum]("PingEnum", pingSet))

type pongEnum struct{ tag.Variant }

var pongEnumUnion = stdx.Must1(tag.NewUnion[pongEnum]("PongEnum", pingSet))

type pingMessage struct{ code pingEnum }

func newPingMessage(v ping) pingMessage { return pingMessage{pingEnum{pingEnumUnion.Wrap(v)}} }

func (pingMessage) CategoryName() string { return "Ping" }
func (m pingMessage) Code() pingEnum     { return m.code }
func (m pingMessage) Payload() tag.Value { return m.code }

type pongMessage struct{ code pongEnum }

func newPongMessage(v ping) pongMessage { return pongMessage{pongEnum{pongEnumUnion.Wrap(v)}} }

func (pongMessage) CategoryName() string { return "Pong" }
func (m pongMessage) Code() pongEnum     { return m.code }
func (m pongMessage) Payload() tag.Value { return m.code }

var (
	pingCategory = stdx.Must1(Declare[pingMessage](pingEnumUnion))
	pongCategory = stdx.Must1(Declare[pongMessage](pongEnumUnion))
)

type fixtureMaster struct{ tag.Variant }

var fixtureMasterUnion = stdx.Must1(tag.NewUnion[fixtureMaster]("FixtureMaster", pingEnumUnion, pongEnumUnion))

// unnamedMessage has no category name and can never be declared.
type unnamedMessage struct{}

func (unnamedMessage) CategoryName() string { return "" }
func (unnamedMessage) Payload() tag.Value   { return nil }

// forgedPing claims the Ping category but carries a PongEnum payload.
type forgedPing struct{}

func (forgedPing) CategoryName() string { return "Ping" }
func (forgedPing) Payload() tag.Value   { return newPongMessage(pingHello).code }
