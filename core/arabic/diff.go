package arabic

// DiffOp is the kind of word-level edit in a Difference.
type DiffOp string

// Difference operation kinds.
const (
	OpInsert  DiffOp = "insert"  // word present in the correct text only
	OpDelete  DiffOp = "delete"  // word present in the input only
	OpReplace DiffOp = "replace" // word differs between input and correct text
)

// Difference is a single word-level edit needed to turn the input text into
// the correct text. Position is the word index into the input at which the
// edit applies.
type Difference struct {
	Op       DiffOp
	Position int
	Input    string
	Correct  string
}

// FindDifferences aligns input against correct word-by-word and reports the
// insert/delete/replace operations between them, in ascending position order.
// Both strings are compared verbatim; normalize first if orthographic
// variants should not count as differences.
func FindDifferences(input, correct string) []Difference {
	a := Words(input)
	b := Words(correct)
	if len(a) == 0 && len(b) == 0 {
		return nil
	}

	// Standard edit-distance DP over words, then backtrack for the script.
	dp := make([][]int, len(a)+1)
	for i := range dp {
		dp[i] = make([]int, len(b)+1)
		dp[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		dp[0][j] = j
	}
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				dp[i][j] = dp[i-1][j-1]
				continue
			}
			m := dp[i-1][j-1] // replace
			if dp[i-1][j] < m {
				m = dp[i-1][j] // delete
			}
			if dp[i][j-1] < m {
				m = dp[i][j-1] // insert
			}
			dp[i][j] = m + 1
		}
	}

	// Backtrack from the end; operations come out in reverse.
	var rev []Difference
	i, j := len(a), len(b)
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && a[i-1] == b[j-1]:
			i--
			j--
		case i > 0 && j > 0 && dp[i][j] == dp[i-1][j-1]+1:
			rev = append(rev, Difference{Op: OpReplace, Position: i - 1, Input: a[i-1], Correct: b[j-1]})
			i--
			j--
		case i > 0 && dp[i][j] == dp[i-1][j]+1:
			rev = append(rev, Difference{Op: OpDelete, Position: i - 1, Input: a[i-1]})
			i--
		default:
			rev = append(rev, Difference{Op: OpInsert, Position: i, Correct: b[j-1]})
			j--
		}
	}

	diffs := make([]Difference, 0, len(rev))
	for k := len(rev) - 1; k >= 0; k-- {
		diffs = append(diffs, rev[k])
	}
	return diffs
}
