package renderer

import "fmt"

// RowRange is the half-open set of rows [Start, End)
type RowRange struct {
	Start int
	End   int
}

// Len returns the number of rows in the range
func (r RowRange) Len() int {
	return r.End - r.Start
}

// PartitionRows splits [0, height) into one contiguous range per worker in
// ascending order. The first height%workers ranges get one extra row, so
// sizes differ by at most one. With more workers than rows the trailing
// ranges are empty.
func PartitionRows(height, workers int) ([]RowRange, error) {
	if workers < 1 {
		return nil, fmt.Errorf("partition %d rows: %w (got %d)", height, ErrInvalidWorkerCount, workers)
	}
	if height < 0 {
		return nil, fmt.Errorf("partition: %w: height %d", ErrInvalidDimensions, height)
	}

	base := height / workers
	extra := height % workers

	ranges := make([]RowRange, workers)
	start := 0
	for i := range ranges {
		size := base
		if i < extra {
			size++
		}
		ranges[i] = RowRange{Start: start, End: start + size}
		start += size
	}

	return ranges, nil
}

// VerifyPartition checks that ranges cover [0, height) exactly once, in order
func VerifyPartition(ranges []RowRange, height int) error {
	next := 0
	for i, r := range ranges {
		if r.Start != next {
			return fmt.Errorf("range %d starts at row %d, expected %d", i, r.Start, next)
		}
		if r.End < r.Start {
			return fmt.Errorf("range %d is inverted: [%d, %d)", i, r.Start, r.End)
		}
		next = r.End
	}
	if next != height {
		return fmt.Errorf("ranges end at row %d, expected %d", next, height)
	}
	return nil
}
