package quiz

import (
	qz "github.com/abhisek/studyplan/internal/quiz"
)

// quizLoadedMsg is sent when the engine has questions (or gave up).
type quizLoadedMsg struct {
	screenID int64
	Session  qz.Session
	Err      error
}

// quizSubmittedMsg is sent when the answers have been scored and saved.
type quizSubmittedMsg struct {
	screenID int64
	Session  qz.Session
	Err      error
}
