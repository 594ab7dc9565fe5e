package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/vtopo/pkg/vtopo"
)

func main() {
	// Create parser
	parser := vtopo.NewParser()

	// Parse survey file (Windows-1252, decimal degrees, "*" legs dropped)
	survey, err := parser.Parse("gouffre.tro")
	if err != nil {
		log.Fatal(err)
	}

	// Print survey info
	fmt.Printf("Cave: %s\n", survey.Name())
	fmt.Printf("Club: %s\n", survey.Author())
	fmt.Printf("Sets: %d, legs: %d\n", survey.SetCount(), survey.LegCount())

	// Entry point in its own coordinate system
	entry, err := survey.EntryWKT()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Entry: %s (EPSG:%d)\n", entry, survey.SRID())

	for _, set := range survey.Sets() {
		fmt.Printf("  %-24s %3d legs\n", set.Name, len(set.Legs))
	}
}
