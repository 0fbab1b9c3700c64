package ast

type (
	// NodeID identifies a node inside the node arena.
	NodeID uint32
	// PayloadID indexes the kind-specific payload arena of a node.
	PayloadID uint32
)

const (
	NoNodeID    NodeID    = 0
	NoPayloadID PayloadID = 0
)

func (id NodeID) IsValid() bool    { return id != NoNodeID }
func (id PayloadID) IsValid() bool { return id != NoPayloadID }
