package ast

type (
	// NodeID addresses a node inside one Tree; it is meaningless in any other
	// generation.
	NodeID uint32
	// Generation counts successful parses of one source file.
	Generation uint64
)

const NoNodeID NodeID = 0

func (id NodeID) IsValid() bool { return id != NoNodeID }
