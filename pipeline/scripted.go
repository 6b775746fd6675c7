package pipeline

import (
	"context"
	"strings"
)

// ScriptedModel is a canned ModelClient for tests and local runs without
// credentials. It records every prompt it sees.
type ScriptedModel struct {
	// Replies are consumed in order; when exhausted, Reply is used.
	Replies []string
	Reply   string
	Err     error

	Calls []Prompt
	Opts  []CallOptions

	next int
}

func (m *ScriptedModel) Complete(_ context.Context, prompt Prompt, opts CallOptions) (string, error) {
	m.Calls = append(m.Calls, prompt)
	m.Opts = append(m.Opts, opts)
	if m.Err != nil {
		return "", m.Err
	}
	if m.next < len(m.Replies) {
		r := m.Replies[m.next]
		m.next++
		return r, nil
	}
	if m.Reply != "" {
		return m.Reply, nil
	}
	// Default: echo the user prompt inside a markdown shell.
	var sb strings.Builder
	sb.WriteString("# Scripted reply\n\n")
	sb.WriteString("```\n")
	sb.WriteString(prompt.User)
	sb.WriteString("\n```\n")
	return sb.String(), nil
}
