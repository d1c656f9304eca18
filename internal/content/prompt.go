package content

import (
	"fmt"

	"github.com/abhisek/studyplan/internal/syllabus"
)

const tipsSystemPrompt = `You are a study coach for Indian secondary school students.
Reply in plain text without markdown headings. Keep it concise.`

const quizSystemPrompt = `You are an examiner writing practice questions for Indian secondary school students.

Rules:
- Every question has exactly 4 options and exactly one correct option.
- "answer" is the 0-3 index of the correct option.
- Distractors should reflect common misconceptions, not random values.
- Stay within the named topic and the level of the named class.`

func tipsPrompt(k syllabus.Key) string {
	return fmt.Sprintf("Provide 3 short, high-impact study tips for a %s student learning the topic %q in %s. "+
		"Focus on active recall and visualization. Keep it concise.",
		k.Grade.Label(), k.Topic, k.Subject)
}

func quizPrompt(k syllabus.Key, n int) string {
	return fmt.Sprintf("Generate %d multiple-choice questions for %s %s on the topic %q.\n"+
		`Return an object {"questions": [...]} where each question has keys "question", `+
		`"options" (array of 4 strings) and "answer" (0-3 index of the correct option).`,
		n, k.Grade.Label(), k.Subject, k.Topic)
}
