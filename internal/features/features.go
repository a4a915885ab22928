// Package features holds EduGenie's smart tools: quiz generation, topic
// summarization, and study-plan generation. All three are placeholders
// today: they return fixed text and never call the completion client. The
// injected Provider is the extension point for the real implementations.
package features

import (
	"fmt"

	"github.com/edugenie/edugenie/internal/llm"
)

// Features exposes the smart tools.
type Features struct {
	provider llm.Provider // reserved for the real implementations
}

// New creates the smart-tool set around a completion provider.
func New(provider llm.Provider) *Features {
	return &Features{provider: provider}
}

// GenerateQuiz will eventually produce a five-question multiple-choice quiz
// for the topic. Placeholder: returns a description of the planned output.
func (f *Features) GenerateQuiz(topic string) string {
	return fmt.Sprintf(
		"Quiz generation is coming soon! EduGenie will create a quiz on %q with "+
			"exactly 5 multiple-choice questions, four options (A-D) each, and a "+
			"separate answer key listing the correct option per question.",
		topic,
	)
}

// SummarizeTopic will eventually produce a structured, exam-oriented
// summary of the given text. Placeholder: returns a description of the
// planned output.
func (f *Features) SummarizeTopic(topicText string) string {
	return fmt.Sprintf(
		"Topic summarization is coming soon! EduGenie will condense %q into "+
			"concise bullet points with key concepts, definitions, and a short "+
			"\"Why this matters\" section.",
		topicText,
	)
}

// StudyPlan will eventually produce a day-by-day study plan toward the
// goal. Placeholder: returns a description of the planned output.
func (f *Features) StudyPlan(goal string, durationDays int) string {
	return fmt.Sprintf(
		"Study-plan generation is coming soon! EduGenie will lay out a %d-day "+
			"plan for %q with daily goals, suggested practice tasks, and a "+
			"revision strategy for retention.",
		durationDays, goal,
	)
}
