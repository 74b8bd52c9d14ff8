package dtl

import "testing"

type candidate struct {
	row       int
	threshold float64
}

func collectThresholds(values []float64) []candidate {
	result := make([]candidate, 0)
	for th := NewThresholds(values); th.HasNext(); {
		row, threshold := th.GetNext()
		result = append(result, candidate{row, threshold})
	}
	return result
}

func TestThresholds(t *testing.T) {
	cases := []struct {
		values []float64
		want   []candidate
	}{
		{[]float64{1, 2, 3, 4}, []candidate{{1, 2}, {2, 3}, {3, 4}}},
		{[]float64{1, 1, 2, 3, 3, 4}, []candidate{{2, 2}, {3, 3}, {5, 4}}},
		{[]float64{-1, -1, -1}, []candidate{}},
		{[]float64{5}, []candidate{}},
		{[]float64{}, []candidate{}},
		{[]float64{0, 0, 0, 7}, []candidate{{3, 7}}},
	}
	for _, c := range cases {
		got := collectThresholds(c.values)
		if len(got) != len(c.want) {
			t.Fatalf("thresholds of %v = %v, want %v", c.values, got, c.want)
		}
		for ind := range got {
			if got[ind] != c.want[ind] {
				t.Errorf("thresholds of %v = %v, want %v", c.values, got, c.want)
				break
			}
		}
	}
}
