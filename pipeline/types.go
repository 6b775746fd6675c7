package pipeline

import "time"

// Source records where a piece of text came from: a live model call or the
// deterministic template generator.
type Source string

const (
	SourceModel    Source = "model"
	SourceFallback Source = "fallback"
)

// LengthTier selects the requested size of generated content.
type LengthTier string

const (
	LengthShort  LengthTier = "short"
	LengthMedium LengthTier = "medium"
	LengthLong   LengthTier = "long"
)

// wordTargets is the single place the tier-to-words mapping lives.
var wordTargets = map[LengthTier]int{
	LengthShort:  150,
	LengthMedium: 400,
	LengthLong:   800,
}

// Words returns the approximate word target for the tier. Unknown tiers get
// the medium target.
func (t LengthTier) Words() int {
	if n, ok := wordTargets[t]; ok {
		return n
	}
	return wordTargets[LengthMedium]
}

// ParseLengthTier normalizes a user-supplied tier string.
func ParseLengthTier(s string) LengthTier {
	switch LengthTier(s) {
	case LengthShort, LengthMedium, LengthLong:
		return LengthTier(s)
	}
	return LengthMedium
}

// GenerationRequest describes one content request. Immutable once built.
type GenerationRequest struct {
	Topic  string
	Length LengthTier
}

// GeneratedContent is the output of the generation stage. Never mutated after
// creation.
type GeneratedContent struct {
	Text      string
	Source    Source
	CreatedAt time.Time
}

// CritiqueRequest is built only after GeneratedContent exists.
type CritiqueRequest struct {
	Content GeneratedContent
	Length  LengthTier
}

// UnscoredValue marks a rubric metric that could not be extracted from the
// critique text. Keys are always present in Critique.Metrics; this sentinel
// keeps display code from branching on missing entries.
const UnscoredValue = -1

// RubricMetrics lists the dimensions the critique prompt asks the model to
// score. Extraction fills Critique.Metrics with exactly these keys.
var RubricMetrics = []string{"clarity", "structure", "engagement", "depth", "completeness"}

// Critique is the output of the critique stage.
type Critique struct {
	Text    string
	Source  Source
	Score   float64
	Scored  bool
	Metrics map[string]float64
}

// IterationKind distinguishes the first draft from criticism-driven revisions.
type IterationKind string

const (
	IterationInitial  IterationKind = "initial"
	IterationRevision IterationKind = "revision"
)

// IterationRecord captures one full generate-then-critique cycle.
type IterationRecord struct {
	Index      int
	Kind       IterationKind
	Generation GeneratedContent
	Critique   Critique
}
