package vtopo

import (
	"context"
	"fmt"
)

// Region specifies an area and loading parameters for regional survey loading.
type Region struct {
	// Bounds defines the area to load, in SRID units.
	// Surveys whose entry point lies within it are loaded.
	Bounds Bounds

	// SRID selects the coordinate system of Bounds. If 0, surveys of every
	// coordinate system are matched against the same numbers.
	SRID int

	// Load configures parsing, workers and error handling.
	Load LoadOptions
}

// LoadRegion loads every survey below root whose entry point lies in region.
//
// This function:
//  1. Discovers and indexes all surveys in the directory tree
//  2. Queries the index for entry points inside the region
//  3. Loads matching surveys in parallel
func LoadRegion(ctx context.Context, root string, parser Parser, region Region) ([]*Survey, error) {
	idx, _, err := BuildIndexFromDir(ctx, root, parser, region.Load)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}
	return LoadRegionWithIndex(ctx, idx, parser, region)
}

// LoadRegionWithIndex is similar to LoadRegion but uses a pre-built index.
//
// This is more efficient when loading multiple regions from the same
// directory, as the index only needs to be built once.
func LoadRegionWithIndex(ctx context.Context, idx *SurveyIndex, parser Parser, region Region) ([]*Survey, error) {
	entries := idx.Query(region.Bounds, QueryOptions{SRID: region.SRID})
	if len(entries) == 0 {
		return []*Survey{}, nil
	}

	paths := make([]string, len(entries))
	for i, entry := range entries {
		if entry.Path == "" {
			return nil, fmt.Errorf("survey path not available in index (survey: %s)", entry.Name)
		}
		paths[i] = entry.Path
	}

	surveys, errs := LoadSurveysParallel(ctx, paths, parser, region.Load)
	if len(errs) > 0 && len(surveys) == 0 {
		return nil, fmt.Errorf("failed to load any surveys (%d errors): %w", len(errs), errs[0])
	}
	return surveys, nil
}
