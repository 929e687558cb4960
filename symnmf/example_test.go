package symnmf_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/symnmf/dataset"
	"github.com/katalvlaran/symnmf/symnmf"
)

// ExampleLabels clusters two well separated groups of three points.
func ExampleLabels() {
	ds, err := dataset.New([]dataset.Point{
		{0, 0}, {0, 0.2}, {0.2, 0},
		{4, 4}, {4, 4.2}, {4.2, 4},
	})
	if err != nil {
		panic(err)
	}
	labels, err := symnmf.Labels(context.Background(), ds, 2, symnmf.WithSeed(symnmf.DefaultSeed))
	if err != nil {
		panic(err)
	}
	fmt.Println("points:", len(labels))
	fmt.Println("first group together:", labels[0] == labels[1] && labels[1] == labels[2])
	fmt.Println("groups differ:", labels[0] != labels[3])
	// Output:
	// points: 6
	// first group together: true
	// groups differ: true
}
