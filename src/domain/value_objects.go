package domain

import "errors"

var (
	ErrNodeNotFound   = errors.New("node not found")
	ErrUnknownKey     = errors.New("attribute key not allowed")
	ErrSizeExceeded   = errors.New("attribute value exceeds max size")
	ErrParentNotFound = errors.New("parent node not found")
	ErrParentCycle    = errors.New("parent chain would form a cycle")
	ErrDuplicateName  = errors.New("sibling with the same name already exists")
	ErrChildrenExist  = errors.New("node still has children")
	ErrReferenced     = errors.New("node is referenced by attributes")
	ErrInvalidName    = errors.New("node name is blank")
	ErrInvalidType    = errors.New("node type is invalid")
	ErrEdgeExists     = errors.New("membership edge already exists")

	ErrUnavailableServer = errors.New("Oops, something unexpected happened. Please try again later.")
)
