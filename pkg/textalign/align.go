package textalign

// Anchor pairs a token position in the raw sequence with the matching
// position in the enhanced sequence. Anchor lists produced by [LCSAnchors]
// are strictly increasing in both coordinates.
type Anchor struct {
	Raw      int
	Enhanced int
}

// LCSAnchors computes the longest common subsequence of two token sequences
// and returns the matched positions as anchors. Standard O(m×n) DP — token
// counts are small (single transcripts).
//
// The backtrack direction on DP ties is fixed: when dp[i-1][j] == dp[i][j-1]
// the raw index is decremented. Downstream gap extraction and the filter
// thresholds were tuned against this exact behaviour, so it must not change.
func LCSAnchors(raw, enhanced []string) []Anchor {
	m, n := len(raw), len(enhanced)
	if m == 0 || n == 0 {
		return nil
	}

	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
	}
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			switch {
			case raw[i-1] == enhanced[j-1]:
				dp[i][j] = dp[i-1][j-1] + 1
			case dp[i-1][j] >= dp[i][j-1]:
				dp[i][j] = dp[i-1][j]
			default:
				dp[i][j] = dp[i][j-1]
			}
		}
	}

	lcsLen := dp[m][n]
	if lcsLen == 0 {
		return nil
	}

	anchors := make([]Anchor, lcsLen)
	i, j, k := m, n, lcsLen-1
	for i > 0 && j > 0 {
		switch {
		case raw[i-1] == enhanced[j-1]:
			anchors[k] = Anchor{Raw: i - 1, Enhanced: j - 1}
			i--
			j--
			k--
		case dp[i-1][j] >= dp[i][j-1]:
			i--
		default:
			j--
		}
	}
	return anchors
}
