package walk_test

import (
	"fmt"
	"strings"

	"github.com/zostay/go-mime/message"
	"github.com/zostay/go-mime/message/walk"
)

func ExampleAndTransform() {
	msg, err := message.Parse(strings.NewReader(complexMsg))
	if err != nil {
		panic(err)
	}

	// drop the PDF attachment
	tmsgs, err := walk.AndTransform(
		func(part *message.Entity, parents []*message.Entity) ([]*message.Entity, error) {
			mt, _ := part.GetMediaType()
			if mt == "application/pdf" {
				return nil, walk.ErrSkip
			}
			return nil, walk.ErrCopy
		},
		msg)
	if err != nil {
		panic(err)
	}

	var pw walk.PartWalker = func(depth, i int, part *message.Entity) error {
		mt, _ := part.GetMediaType()
		fmt.Printf("%s%s\n", strings.Repeat("  ", depth), mt)
		return nil
	}

	if err := pw.Walk(tmsgs[0]); err != nil {
		panic(err)
	}

	// Output:
	// multipart/mixed
	//   multipart/alternate
	//     text/html
	//     text/plain
	//   application/image
}

func ExamplePath() {
	msg, err := message.Parse(strings.NewReader(complexMsg))
	if err != nil {
		panic(err)
	}

	_ = walk.AndProcessLeaves(
		func(part *message.Entity, _ []*message.Entity) error {
			path, _ := walk.Path(msg, part)
			mt, _ := part.GetMediaType()
			fmt.Println(path, mt)
			return nil
		}, msg)

	// Output:
	// [0 0] text/html
	// [0 1] text/plain
	// [1] application/pdf
	// [2] application/image
}
