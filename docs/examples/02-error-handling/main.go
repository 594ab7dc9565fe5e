package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/vtopo/pkg/vtopo"
)

func safeParseSurvey(path string) (*vtopo.Survey, error) {
	parser := vtopo.NewParser()

	survey, err := parser.Parse(path)
	if err != nil {
		// Check if file exists
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("survey file not found: %s", path)
		}

		// Report where the file is malformed
		var parseErr *vtopo.ParseError
		if errors.As(err, &parseErr) {
			log.Printf("%s is malformed at line %d", path, parseErr.Line)
		}

		var projErr *vtopo.ErrUnsupportedProjection
		if errors.As(err, &projErr) {
			log.Printf("%s uses projection %q, supported: %s, %s, %s", path, projErr.Code,
				vtopo.ProjectionUTM31, vtopo.ProjectionLT3, vtopo.ProjectionWGS84)
		}
		return nil, err
	}

	// Check value ranges
	for _, err := range survey.Validate() {
		log.Printf("Warning: %s: %v", path, err)
	}
	if survey.LegCount() == 0 {
		log.Printf("Warning: %s contains no legs", path)
	}

	return survey, nil
}

func main() {
	// Try to parse a survey
	survey, err := safeParseSurvey("gouffre.tro")
	if err != nil {
		log.Printf("Error: %v", err)
		return
	}

	fmt.Printf("Successfully loaded survey: %s\n", survey.Name())
	fmt.Printf("Legs: %d\n", survey.LegCount())

	// Try to parse a non-existent survey
	_, err = safeParseSurvey("NONEXISTENT.tro")
	if err != nil {
		log.Printf("Expected error: %v", err)
	}
}
