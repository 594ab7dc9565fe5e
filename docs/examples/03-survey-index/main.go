package main

import (
	"context"
	"fmt"
	"log"

	"github.com/beetlebugorg/vtopo/pkg/vtopo"
)

func main() {
	ctx := context.Background()
	parser := vtopo.NewParser()

	// Index every .tro file below the directory
	idx, errs, err := vtopo.BuildIndexFromDir(ctx, "surveys", parser, vtopo.DefaultLoadOptions())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Indexed %d surveys (%d failed)\n", idx.Count(), len(errs))

	// Area of interest in Lambert III meters
	area := vtopo.Bounds{
		MinX: 640000, MaxX: 660000,
		MinY: 1830000, MaxY: 1850000,
	}

	// Query R-tree index for entries in the area (O(log n))
	entries := idx.Query(area, vtopo.QueryOptions{SRID: vtopo.SRIDLT3})
	fmt.Printf("Surveys in area: %d\n", len(entries))

	for _, e := range entries {
		fmt.Printf("  %s: %d legs, %.1f total length\n", e.Name, e.Legs, e.TotalLength)
	}
}
