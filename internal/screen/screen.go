package screen

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/studyplan/internal/content"
	"github.com/abhisek/studyplan/internal/progress"
	"github.com/abhisek/studyplan/internal/quiz"
	"github.com/abhisek/studyplan/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Leaver is implemented by screens that must release state when the user
// backs out with esc.
type Leaver interface {
	OnLeave()
}

// InputCapturer is implemented by screens that sometimes need every key,
// including esc, e.g. while a text field has focus.
type InputCapturer interface {
	CapturingInput() bool
}

// Services are the application objects screens act on.
type Services struct {
	Progress *progress.Store
	Quiz     *quiz.Engine
	Content  *content.Adapter
	Logger   *zap.Logger

	// Now is the clock used for "today". Nil means time.Now.
	Now func() time.Time
}

// Today returns the current time from the configured clock.
func (s *Services) Today() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Log returns the logger, never nil.
func (s *Services) Log() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
