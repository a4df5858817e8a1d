package walk

import (
	"errors"

	"github.com/zostay/go-mime/message"
)

// ErrSkip may be returned by a Processor to keep the walk from descending
// into the children of the current part. The walk carries on with the next
// sibling.
var ErrSkip = errors.New("skip part")

// Processor is a callback that can be passed to the AndProcess() function to
// do any kind of generic processing of a message and its sub-parts.
//
// The Processor is given a part to process and the ancestry of the part. If
// len(parents) is zero, then this is the top-level part (i.e., the top-level
// part that AndProcess() was called upon, which might not be the root message).
// The last element of parents is the immediate parent. The slice is only
// valid during the call.
//
// The Processor may return an error to cause AndProcess() to terminate
// immediately and return that error.
type Processor func(part *message.Entity, parents []*message.Entity) error

// AndProcess will walk the message parts tree of a message (or a part of a
// message) and call the given Processor function for each part found. It will
// terminate once all parts have been processed and return nil. If the Processor
// function returns an error other than ErrSkip, it will terminate early and
// return that error.
func AndProcess(
	processor Processor,
	msg *message.Entity,
) error {
	parents := make([]*message.Entity, 0, 10)
	return andProcess(processor, msg, parents)
}

func andProcess(
	processor Processor,
	part *message.Entity,
	parents []*message.Entity,
) error {
	err := processor(part, parents)
	if errors.Is(err, ErrSkip) {
		return nil
	} else if err != nil {
		return err
	}

	if part.IsMultipart() {
		parents = append(parents, part)
		for _, subPart := range part.Parts() {
			err := andProcess(processor, subPart, parents)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// AndProcessLeaves works just like AndProcess, but only calls the Processor
// for parts that are not multipart.
func AndProcessLeaves(
	processor Processor,
	msg *message.Entity,
) error {
	return AndProcess(
		func(part *message.Entity, parents []*message.Entity) error {
			if part.IsMultipart() {
				return nil
			}
			return processor(part, parents)
		}, msg)
}

// AndProcessContainers works just like AndProcess, but only calls the
// Processor for multipart parts.
func AndProcessContainers(
	processor Processor,
	msg *message.Entity,
) error {
	return AndProcess(
		func(part *message.Entity, parents []*message.Entity) error {
			if !part.IsMultipart() {
				return nil
			}
			return processor(part, parents)
		}, msg)
}

var errFound = errors.New("found")

// Parents returns the ancestors of target within the tree under root, with
// root first and the immediate parent last. It returns false if target is not
// in the tree. The root has no parents.
func Parents(root, target *message.Entity) ([]*message.Entity, bool) {
	var found []*message.Entity
	err := AndProcess(
		func(part *message.Entity, parents []*message.Entity) error {
			if part == target {
				found = append(make([]*message.Entity, 0, len(parents)), parents...)
				return errFound
			}
			return nil
		}, root)

	return found, errors.Is(err, errFound)
}

// Path returns the child indexes leading from root to target, such that
// following root.Parts()[path[0]].Parts()[path[1]] and so on arrives at the
// target. It returns false if target is not in the tree.
func Path(root, target *message.Entity) ([]int, bool) {
	parents, ok := Parents(root, target)
	if !ok {
		return nil, false
	}

	path := make([]int, 0, len(parents))
	parents = append(parents, target)
	for i := 1; i < len(parents); i++ {
		for j, p := range parents[i-1].Parts() {
			if p == parents[i] {
				path = append(path, j)
				break
			}
		}
	}

	return path, true
}

// Find follows a path of child indexes from root and returns the entity found
// there. It returns false if the path leads nowhere.
func Find(root *message.Entity, path []int) (*message.Entity, bool) {
	e := root
	for _, i := range path {
		parts := e.Parts()
		if i < 0 || i >= len(parts) {
			return nil, false
		}
		e = parts[i]
	}
	return e, true
}
