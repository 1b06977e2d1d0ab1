package utils

import "sort"

// Set algebra over int32 entity index slices. All operations accept
// arbitrary (unsorted, possibly duplicated) input and return a sorted
// slice of unique indices, so chained unions/differences stay canonical.

// ARange returns [0, n) as int32 indices
func ARange(n int) []int32 {
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(i)
	}
	return out
}

// Unique returns the sorted unique elements of a
func Unique(a []int32) []int32 {
	if len(a) == 0 {
		return []int32{}
	}
	s := make([]int32, len(a))
	copy(s, a)
	sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
	out := s[:1]
	for _, v := range s[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// Union1D returns the sorted union of a and b
func Union1D(a, b []int32) []int32 {
	merged := make([]int32, 0, len(a)+len(b))
	merged = append(merged, a...)
	merged = append(merged, b...)
	return Unique(merged)
}

// Intersect1D returns the sorted elements present in both a and b
func Intersect1D(a, b []int32) []int32 {
	ua, ub := Unique(a), Unique(b)
	out := make([]int32, 0)
	i, j := 0, 0
	for i < len(ua) && j < len(ub) {
		switch {
		case ua[i] < ub[j]:
			i++
		case ua[i] > ub[j]:
			j++
		default:
			out = append(out, ua[i])
			i++
			j++
		}
	}
	return out
}

// SetDiff1D returns the sorted elements of a that are not in b
func SetDiff1D(a, b []int32) []int32 {
	ua, ub := Unique(a), Unique(b)
	out := make([]int32, 0, len(ua))
	j := 0
	for _, v := range ua {
		for j < len(ub) && ub[j] < v {
			j++
		}
		if j < len(ub) && ub[j] == v {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Contains reports whether sorted slice s contains v
func Contains(s []int32, v int32) bool {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= v })
	return i < len(s) && s[i] == v
}
