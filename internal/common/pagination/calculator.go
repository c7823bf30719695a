package pagination

// BarNumbers returns the 0-based page numbers shown in the pagination bar:
// length pages centred on current where possible, never past totalPages.
//
// start = min(max(current - length/2, 0), totalPages), end = min(start + length, totalPages)
//
// Examples with length 5:
//   - current 0, total 13 -> [0 1 2 3 4]
//   - current 10, total 13 -> [8 9 10 11 12]
//   - current 0, total 2  -> [0 1]
//   - total 0             -> []
func BarNumbers(current, totalPages, length int) []int {
	if length <= 0 {
		length = DefaultConfig().BarLength
	}
	start := min(max(current-length/2, 0), totalPages)
	end := min(start+length, totalPages)

	out := make([]int, 0, max(end-start, 0))
	for n := start; n < end; n++ {
		out = append(out, n)
	}
	return out
}
