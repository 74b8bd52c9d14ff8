package dtl

//Thresholds is an iterator over the split candidates of a sorted column.
//A candidate exists at every position where the value strictly increases
//from the previous row. Its threshold is the value at that position, the
//first value of the right part.
type Thresholds struct {
	values []float64
	pos    int
}

//NewThresholds initializes an iterator over the candidates of ascending values.
func NewThresholds(values []float64) *Thresholds {
	th := &Thresholds{values: values, pos: 1}
	th.skipEqual()
	return th
}

func (th *Thresholds) skipEqual() {
	for th.pos < len(th.values) && !(th.values[th.pos-1] < th.values[th.pos]) {
		th.pos++
	}
}

//HasNext checks whether there are more candidates in the iterator.
func (th *Thresholds) HasNext() bool {
	return th.pos < len(th.values)
}

//GetNext returns the next candidate and moves the iterator to the following one.
//row is the number of rows on the left side.
func (th *Thresholds) GetNext() (row int, threshold float64) {
	row, threshold = th.pos, th.values[th.pos]
	th.pos++
	th.skipEqual()
	return
}
