package pipeline

import (
	"fmt"
	"strings"
)

// The fallback generators are pure functions: identical input yields
// byte-identical output, which keeps them golden-testable. They must always
// return non-empty, structurally complete markdown so the display layer never
// special-cases fallback output.

var (
	technologyWords = []string{"tech", "ai", "software", "digital", "computer", "algorithm"}
	businessWords   = []string{"business", "market", "company", "strategy", "management"}
)

// FallbackContent produces placeholder content for a topic when no model call
// can succeed. The template is picked by simple keyword matching.
func FallbackContent(topic string) string {
	lower := strings.ToLower(topic)
	switch {
	case containsAny(lower, technologyWords):
		return fmt.Sprintf(`# %s

In today's rapidly evolving technological landscape, %s has emerged as a significant factor shaping our digital future. This innovation brings both opportunities and challenges that organizations must carefully consider.

## Key Benefits

- Enhanced efficiency and productivity
- Improved user experience
- Cost-effective solutions
- Scalable implementation

## Challenges to Address

- Security considerations
- Integration complexity
- Training requirements
- Change management

## Looking Forward

As we continue to embrace %s, it's crucial to maintain a balanced approach that maximizes benefits while mitigating potential risks.
`, topic, lower, lower)
	case containsAny(lower, businessWords):
		return fmt.Sprintf(`# %s

In the competitive business environment, %s has become increasingly important for organizational success. Companies that embrace this concept often find themselves better positioned for growth and sustainability.

## Strategic Importance

- Competitive advantage
- Market differentiation
- Revenue optimization
- Operational excellence

## Implementation Considerations

- Resource allocation
- Timeline planning
- Risk assessment
- Performance metrics

## Best Practices

Successful implementation of %s requires careful planning, stakeholder buy-in, and continuous monitoring to ensure desired outcomes.
`, topic, lower, lower)
	default:
		return fmt.Sprintf(`# %s

%s is a fascinating topic that deserves our attention and understanding. This subject encompasses various aspects that can impact different areas of our lives.

## Key Points

- Fundamental concepts and principles
- Practical applications and use cases
- Benefits and potential advantages
- Common challenges and solutions

## Why It Matters

Understanding %s can help us make better decisions and navigate related situations more effectively.

## Conclusion

As we explore %s further, it becomes clear that this topic offers valuable insights that can be applied in various contexts.
`, topic, topic, lower, lower)
	}
}

// FallbackCritique scores content from word count and structure heuristics
// and wraps the result in a fixed report skeleton.
func FallbackCritique(content GeneratedContent) Critique {
	words := WordCount(content.Text)

	score := 5.0
	switch {
	case words >= 150 && words <= 400:
		score += 1.5
	case (words >= 100 && words < 150) || (words > 400 && words <= 600):
		score += 0.5
	}
	hasHeadings := strings.Contains(content.Text, "#")
	if hasHeadings {
		score += 1.0
	}
	multiParagraph := len(strings.Split(content.Text, "\n\n")) >= 3
	if multiParagraph {
		score += 0.5
	}
	if score > 10 {
		score = 10
	}

	metrics := map[string]float64{
		"clarity":      heuristic(words >= 100),
		"structure":    heuristic(hasHeadings),
		"engagement":   heuristic(multiParagraph),
		"depth":        heuristic(words >= 150),
		"completeness": heuristic(words >= 150 && hasHeadings),
	}

	rangeNote := "outside the typical range (100-600 words)"
	if words >= 100 && words <= 600 {
		rangeNote = "appropriate for most posts"
	}

	text := fmt.Sprintf(`## Content Analysis Report

### Overview

The content has been analyzed across multiple dimensions to provide constructive feedback.

### Strengths Identified

- **Word Count**: The content contains %d words, which is %s
- **Structure**: The content appears to have a clear organizational structure
- **Readability**: The writing style seems accessible to readers

### Areas for Improvement

- **Engagement**: Consider adding more specific examples or case studies
- **Depth**: Some sections could benefit from more detailed explanations or supporting evidence
- **Call to Action**: Consider adding a clear call to action for readers

### Specific Recommendations

1. **Introduction**: Strengthen the opening to immediately capture reader attention
2. **Examples**: Include more concrete examples or real-world applications
3. **Conclusion**: Add a stronger concluding statement that reinforces key takeaways
4. **Flow**: Ensure smooth transitions between sections

**QUALITY SCORE: %.1f/10**
`, words, rangeNote, score)

	return Critique{
		Text:    text,
		Source:  SourceFallback,
		Score:   score,
		Scored:  true,
		Metrics: metrics,
	}
}

// FallbackRevision applies deterministic structural touch-ups keyed on the
// criticism text when the revision model call fails.
func FallbackRevision(prev string, criticism string) string {
	lower := strings.ToLower(criticism)
	revised := prev

	if strings.Contains(lower, "structure") || strings.Contains(lower, "organization") {
		revised = fmt.Sprintf("# Introduction\n\n%s\n\n# Conclusion\n\nIn summary, this topic demonstrates important considerations for further exploration.", revised)
	}
	if strings.Contains(lower, "example") || strings.Contains(lower, "specific") {
		revised += "\n\n**Example:** This concept can be applied in real-world scenarios where practical implementation brings measurable benefits."
	}
	if strings.Contains(lower, "engag") {
		revised += "\n\nThese points matter because they directly shape outcomes for readers who act on them."
	}
	return revised
}

func heuristic(ok bool) float64 {
	if ok {
		return 8
	}
	return 5
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
