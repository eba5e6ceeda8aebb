package geom

import "testing"

func TestPoint_Dimensions(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		p           Point
		expected    int
		expectedCat int
	}{
		{
			name:        "positive",
			p:           NewPoint([]float64{1, 2, 3, 4, 5}, []string{"a"}, "x"),
			expected:    5,
			expectedCat: 1,
		},
		{
			name: "empty",
			p:    NewPoint(nil, nil, "x"),
		},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			if cmp := test.p.Dimensions(); cmp != test.expected {
				t.Errorf("the comparison is incorrect got: %v, expected: %v", cmp, test.expected)
			}
			if cmp := test.p.CategoricalDimensions(); cmp != test.expectedCat {
				t.Errorf("the comparison is incorrect got: %v, expected: %v", cmp, test.expectedCat)
			}
		})
	}
}

func TestPoint_Equal(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		p        Point
		p1       Point
		expected bool
	}{
		{
			name:     "positive",
			p:        NewPoint([]float64{10, 10}, []string{"a"}, "A"),
			p1:       NewPoint([]float64{10, 10}, []string{"a"}, "A"),
			expected: true,
		},
		{
			name:     "negative_real",
			p:        NewPoint([]float64{10, 10}, []string{"a"}, "A"),
			p1:       NewPoint([]float64{11, 10}, []string{"a"}, "A"),
			expected: false,
		},
		{
			name:     "negative_categorical",
			p:        NewPoint([]float64{10, 10}, []string{"a"}, "A"),
			p1:       NewPoint([]float64{10, 10}, []string{"b"}, "A"),
			expected: false,
		},
		{
			name:     "negative_target",
			p:        NewPoint([]float64{10, 10}, nil, "A"),
			p1:       NewPoint([]float64{10, 10}, nil, "B"),
			expected: false,
		},
		{
			name:     "negative_size",
			p:        NewPoint([]float64{10, 10}, nil, "A"),
			p1:       NewPoint([]float64{10}, nil, "A"),
			expected: false,
		},
	}
	for _, test := range tests {
		if test.p.Equal(test.p1) != test.expected {
			t.Errorf("%s: the comparison of points, got: %v, expected: %v", test.name, test.p.Equal(test.p1), test.expected)
		}
	}
}

func TestPoint_Copy(t *testing.T) {
	t.Parallel()
	p := NewPoint([]float64{1, 2}, []string{"a"}, "A")
	p1 := p.Copy()
	if !p.Equal(p1) {
		t.Fatalf("copy differs from the source, got: %v, expected: %v", p1, p)
	}
	p1.Real[0] = 10
	p1.Categorical[0] = "b"
	if p.Real[0] != 1 || p.Categorical[0] != "a" {
		t.Errorf("mutating the copy changed the source: %v", p)
	}
}
