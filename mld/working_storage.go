package mld

import "github.com/ttpr0/mldmatrix/graph"

// WorkingStorage is one worker's exclusive scratch space for a single
// query: a query heap and a bucket store, both reused across phases
// within a search and across searches via Reset rather than
// reallocated. Per spec.md §5, a worker holds one of these and never
// shares it with another concurrently running query.
type WorkingStorage struct {
	Heap   *QueryHeap
	Bucket *BucketStore
}

// NewWorkingStorage sizes the heap for facade and preallocates a
// modest bucket capacity that grows on demand.
func NewWorkingStorage(facade graph.IFacade) *WorkingStorage {
	return &WorkingStorage{
		Heap:   NewQueryHeap(facade.MaxBorderNodeID()),
		Bucket: NewBucketStore(256),
	}
}
