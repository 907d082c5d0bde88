package entity

import "strings"

// Verdict is the ensemble's categorical credibility judgment.
type Verdict string

const (
	VerdictCredible   Verdict = "credible"
	VerdictSuspicious Verdict = "suspicious"
	VerdictLikelyFake Verdict = "likely_fake"
	VerdictUnknown    Verdict = "unknown"
)

const (
	credibleThreshold   = 75
	suspiciousThreshold = 45
)

// VerdictForScore maps a 0-100 score to a verdict: above 75 credible, above 45 suspicious.
func VerdictForScore(score int) Verdict {
	switch {
	case score > credibleThreshold:
		return VerdictCredible
	case score > suspiciousThreshold:
		return VerdictSuspicious
	default:
		return VerdictLikelyFake
	}
}

// Badge is the label shown next to an article; it uses the same thresholds as VerdictForScore.
func Badge(score int) string {
	switch VerdictForScore(score) {
	case VerdictCredible:
		return "VERIFIED"
	case VerdictSuspicious:
		return "SUSPICIOUS"
	default:
		return "UNVERIFIED"
	}
}

func normalizeWord(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
