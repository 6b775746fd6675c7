package pipeline

import (
	"fmt"
	"strings"
)

// Prompt is the message set sent to the model.
type Prompt struct {
	System  string
	User    string
	History []Message
}

// Message carries optional conversation history.
type Message struct {
	Role    string
	Content string
}

// BuildGenerationPrompt embeds the topic and the tier word target.
func BuildGenerationPrompt(req GenerationRequest) Prompt {
	var sb strings.Builder
	sb.WriteString("You are a professional content writer. Output well-structured markdown only, no extra commentary.\n")
	sb.WriteString("Requirements:\n")
	sb.WriteString(fmt.Sprintf("- Target length about %d words.\n", req.Length.Words()))
	sb.WriteString("- Clear introduction, body, and conclusion.\n")
	sb.WriteString("- A level-one heading as the title.\n")
	sb.WriteString("- Professional yet conversational tone.\n")
	sb.WriteString("- Include practical examples or insights where relevant.\n")

	user := fmt.Sprintf("Write a comprehensive and engaging post about: %s. Make it informative, well-structured, and interesting to read.", req.Topic)

	return Prompt{
		System: sb.String(),
		User:   user,
	}
}

// BuildCritiquePrompt embeds the generated content itself and asks for
// structured feedback plus a closing score line the extractor looks for.
func BuildCritiquePrompt(req CritiqueRequest) Prompt {
	var sb strings.Builder
	sb.WriteString("You are an expert content critic and editor. Provide comprehensive, constructive criticism.\n")
	sb.WriteString("Analyze the content across these dimensions:\n")
	for i, m := range RubricMetrics {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, strings.ToUpper(m)))
	}
	sb.WriteString("For each dimension you can score, add a line like \"CLARITY: 7/10\".\n")
	sb.WriteString("End your analysis with an overall line in exactly this form: \"QUALITY SCORE: X/10\".\n")
	sb.WriteString("Be specific and actionable, not just critical.\n")

	user := fmt.Sprintf("Please analyze and critique this content in detail. Provide specific feedback on strengths, weaknesses, and suggestions for improvement:\n\n%s", req.Content.Text)

	return Prompt{
		System: sb.String(),
		User:   user,
	}
}

// BuildRevisionPrompt asks the model to rework the previous draft so the
// criticism is addressed while topic and length stay put.
func BuildRevisionPrompt(prev GeneratedContent, critique Critique, req GenerationRequest) Prompt {
	var sb strings.Builder
	sb.WriteString("You are a professional content editor. Improve existing content based on the criticism provided.\n")
	sb.WriteString("- Address every specific issue the criticism mentions.\n")
	sb.WriteString("- Keep the original topic and intent.\n")
	sb.WriteString(fmt.Sprintf("- Stay close to the target length of about %d words.\n", req.Length.Words()))
	sb.WriteString("- Output the full revised markdown, nothing else.\n")

	user := fmt.Sprintf("ORIGINAL CONTENT:\n%s\n\nCRITICISM TO ADDRESS:\n%s\n\nProvide an improved version that addresses all the points mentioned in the criticism while maintaining the core message.", prev.Text, critique.Text)

	return Prompt{
		System: sb.String(),
		User:   user,
	}
}
