package d8route

import "fmt"

// RoutingCycleError reports a dependency cycle found while verifying the
// processing order. Correct tie-breaking cannot produce one; it indicates a
// corrupted or hand-built direction grid.
type RoutingCycleError struct {
	Cid int // a cell on the offending cycle
}

func (e *RoutingCycleError) Error() string {
	return fmt.Sprintf("d8route: routing cycle detected at cell %d", e.Cid)
}

// EmptyDomainError reports that no valid cell remains after applying the
// nodata and AOI restrictions, which usually means the AOI lies outside the
// DEM extent.
type EmptyDomainError struct{}

func (e *EmptyDomainError) Error() string {
	return "d8route: no valid cells in domain after nodata/AOI restriction"
}
