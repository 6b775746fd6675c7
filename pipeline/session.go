package pipeline

import (
	"context"
	"strings"
)

// Session holds one topic's iteration history. Every caller owns its own
// instance; nothing here is shared across sessions, so no locking is needed
// on the single control flow that drives it.
type Session struct {
	ID      string
	Topic   string
	Length  LengthTier
	History []IterationRecord

	generator *Generator
	critic    *Critic
}

// NewSession creates a session with empty history.
func NewSession(id, topic string, length LengthTier, g *Generator, c *Critic) *Session {
	return &Session{
		ID:        id,
		Topic:     topic,
		Length:    length,
		generator: g,
		critic:    c,
	}
}

// RunIteration performs one full generate-then-critique cycle and appends the
// record to history. The first iteration generates from the topic; later ones
// revise the previous draft against its critique. The critique always runs
// after generation; there is a hard data dependency between the two.
//
// The only error is ErrInvalidTopic, raised before any stage runs and leaving
// history untouched. Everything past that point is total: stage failures
// degrade to fallback output tagged with its provenance.
func (s *Session) RunIteration(ctx context.Context) (IterationRecord, error) {
	topic := strings.TrimSpace(s.Topic)
	if topic == "" {
		return IterationRecord{}, ErrInvalidTopic
	}

	req := GenerationRequest{Topic: topic, Length: s.Length}

	var gen GeneratedContent
	kind := IterationInitial
	if last, ok := s.lastRecord(); ok {
		gen = s.generator.Revise(ctx, last.Generation, last.Critique, req)
		kind = IterationRevision
	} else {
		gen = s.generator.Run(ctx, req)
	}

	crit := s.critic.Run(ctx, CritiqueRequest{Content: gen, Length: s.Length})

	rec := IterationRecord{
		Index:      len(s.History) + 1,
		Kind:       kind,
		Generation: gen,
		Critique:   crit,
	}
	s.History = append(s.History, rec)
	return rec, nil
}

// ImproveUntil runs iterations until a scored critique reaches threshold or
// maxIterations is hit. It returns the final record and whether the threshold
// was met. An unscored critique never satisfies the threshold.
func (s *Session) ImproveUntil(ctx context.Context, threshold float64, maxIterations int) (IterationRecord, bool, error) {
	if maxIterations < 1 {
		maxIterations = 1
	} else if maxIterations > 10 {
		maxIterations = 10
	}

	var rec IterationRecord
	for i := 0; i < maxIterations; i++ {
		var err error
		rec, err = s.RunIteration(ctx)
		if err != nil {
			return IterationRecord{}, false, err
		}
		if rec.Critique.Scored && rec.Critique.Score >= threshold {
			return rec, true, nil
		}
	}
	return rec, false, nil
}

// Latest returns the most recent record, if any.
func (s *Session) Latest() (IterationRecord, bool) {
	return s.lastRecord()
}

func (s *Session) lastRecord() (IterationRecord, bool) {
	if len(s.History) == 0 {
		return IterationRecord{}, false
	}
	return s.History[len(s.History)-1], true
}
