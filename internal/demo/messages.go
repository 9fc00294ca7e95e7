// Package demo declares the message categories of the reference scenario:
// two tag sets, a union over both, two categories and their Master.
package demo

//go:generate go run github.com/casualjim/tagbus/cmd/tagbus-gen -path messages.go

//tagbus:set A Y Z
//tagbus:set B S T
//tagbus:union AB A B

//tagbus:message MyMessage MyMessageEnum A B
//tagbus:message OtherMessage OtherMessageEnum A

//tagbus:master Master
