package vtopo

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dhconnelly/rtreego"
)

// SurveyExt is the file extension of VisualTopo surveys.
const SurveyExt = ".tro"

// pointTolerance is the half-size of the box indexed around an entry point.
// rtreego rejects zero-length rectangles.
const pointTolerance = 1e-9

// SurveyIndex provides fast spatial queries over the entry points of many surveys.
//
// Entry points from different coordinate systems are never compared: each
// SRID gets its own R-tree.
//
// Example:
//
//	idx, err := vtopo.BuildIndexFromDir(ctx, "/data/caves", vtopo.NewParser(),
//	    vtopo.DefaultLoadOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	entries := idx.Query(vtopo.Bounds{MinX: 640000, MaxX: 660000, MinY: 1830000, MaxY: 1850000},
//	    vtopo.QueryOptions{SRID: vtopo.SRIDLT3})
type SurveyIndex struct {
	surveys []SurveyEntry
	trees   map[int]*rtreego.Rtree // Keyed by SRID
}

// SurveyEntry contains indexed metadata for a single survey.
type SurveyEntry struct {
	Path        string     // File the survey was read from
	Name        string     // Cave name
	SRID        int        // EPSG code of Entry
	Entry       EntryPoint // Entry point in SRID units
	Sets        int        // Number of sets
	Legs        int        // Number of legs
	TotalLength float64    // Sum of leg lengths
}

// Bounds method for rtreego.Spatial interface.
func (e SurveyEntry) Bounds() rtreego.Rect {
	return rtreego.Point{e.Entry.X, e.Entry.Y}.ToRect(pointTolerance)
}

// QueryOptions controls spatial query behavior.
type QueryOptions struct {
	// SRID restricts the query to surveys in one coordinate system.
	// If 0, every coordinate system is searched with the same bounds.
	SRID int
}

// NewSurveyEntry extracts index metadata from a survey.
func NewSurveyEntry(s *Survey) SurveyEntry {
	return SurveyEntry{
		Path:        s.Path(),
		Name:        s.Name(),
		SRID:        s.SRID(),
		Entry:       s.EntryPoint(),
		Sets:        s.SetCount(),
		Legs:        s.LegCount(),
		TotalLength: s.TotalLength(),
	}
}

// BuildIndex creates an index from already loaded surveys.
func BuildIndex(surveys []*Survey) *SurveyIndex {
	idx := &SurveyIndex{
		surveys: make([]SurveyEntry, 0, len(surveys)),
		trees:   make(map[int]*rtreego.Rtree),
	}
	for _, s := range surveys {
		idx.Add(NewSurveyEntry(s))
	}
	return idx
}

// Add inserts one entry into the index.
func (idx *SurveyIndex) Add(e SurveyEntry) {
	tree, ok := idx.trees[e.SRID]
	if !ok {
		// 2D, min=25 children, max=50 children
		tree = rtreego.NewTree(2, 25, 50)
		idx.trees[e.SRID] = tree
	}
	tree.Insert(e)
	idx.surveys = append(idx.surveys, e)
}

// BuildIndexFromDir builds a survey index by scanning a directory tree.
//
// Every *.tro file below root is parsed with LoadSurveysParallel. Failures
// are skipped or fatal according to opts.SkipErrors; skipped failures are
// returned alongside the index.
func BuildIndexFromDir(ctx context.Context, root string, parser Parser, opts LoadOptions) (*SurveyIndex, []error, error) {
	paths, err := DiscoverSurveys(root)
	if err != nil {
		return nil, nil, err
	}
	if len(paths) == 0 {
		return nil, nil, fmt.Errorf("no surveys found in %s", root)
	}

	surveys, errs := LoadSurveysParallel(ctx, paths, parser, opts)
	if len(surveys) == 0 {
		return nil, errs, fmt.Errorf("no surveys could be loaded (%d errors)", len(errs))
	}
	return BuildIndex(surveys), errs, nil
}

// DiscoverSurveys finds all survey files in a directory tree, in lexical order.
func DiscoverSurveys(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), SurveyExt) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}
	return paths, nil
}

// Query returns surveys whose entry point lies within bounds, sorted by name
// then path.
func (idx *SurveyIndex) Query(bounds Bounds, opts QueryOptions) []SurveyEntry {
	rect := boundsRect(bounds)

	var result []SurveyEntry
	for srid, tree := range idx.trees {
		if opts.SRID != 0 && srid != opts.SRID {
			continue
		}
		for _, spatial := range tree.SearchIntersect(rect) {
			entry := spatial.(SurveyEntry)
			// The indexed box is padded; filter on the exact point.
			if !bounds.Contains(entry.Entry.X, entry.Entry.Y) {
				continue
			}
			result = append(result, entry)
		}
	}

	sortEntries(result)
	return result
}

// Nearest returns the k surveys whose entry points are closest to (x, y)
// in the given coordinate system, closest first.
func (idx *SurveyIndex) Nearest(srid int, x, y float64, k int) []SurveyEntry {
	tree, ok := idx.trees[srid]
	if !ok || k <= 0 {
		return nil
	}
	spatials := tree.NearestNeighbors(k, rtreego.Point{x, y})
	result := make([]SurveyEntry, 0, len(spatials))
	for _, spatial := range spatials {
		if spatial == nil {
			continue
		}
		result = append(result, spatial.(SurveyEntry))
	}
	return result
}

// Count returns the total number of surveys in the index.
func (idx *SurveyIndex) Count() int {
	return len(idx.surveys)
}

// SRIDs returns the coordinate systems present in the index, ascending.
func (idx *SurveyIndex) SRIDs() []int {
	srids := make([]int, 0, len(idx.trees))
	for srid := range idx.trees {
		srids = append(srids, srid)
	}
	sort.Ints(srids)
	return srids
}

// Bounds returns the union of entry points for one coordinate system.
// ok is false if the index holds no survey in srid.
func (idx *SurveyIndex) Bounds(srid int) (b Bounds, ok bool) {
	for _, e := range idx.surveys {
		if e.SRID != srid {
			continue
		}
		p := pointBounds(e.Entry.X, e.Entry.Y)
		if !ok {
			b, ok = p, true
			continue
		}
		b = b.Union(p)
	}
	return b, ok
}

// All returns all survey entries in insertion order.
func (idx *SurveyIndex) All() []SurveyEntry {
	return idx.surveys
}

// boundsRect converts query bounds to an R-tree rectangle, padding empty
// extents so that point queries are accepted.
func boundsRect(b Bounds) rtreego.Rect {
	b = b.Expand(pointTolerance)
	rect, _ := rtreego.NewRect(
		rtreego.Point{b.MinX, b.MinY},
		[]float64{b.MaxX - b.MinX, b.MaxY - b.MinY},
	)
	return rect
}

func sortEntries(entries []SurveyEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Name != entries[j].Name {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].Path < entries[j].Path
	})
}
