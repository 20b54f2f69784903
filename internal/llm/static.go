package llm

import "context"

// StaticName is the backend name reported for fallback replies.
const StaticName = "static"

// StaticBackend always answers with the same text.
type StaticBackend struct {
	text string
}

func NewStaticBackend(text string) *StaticBackend {
	return &StaticBackend{text: text}
}

func (s *StaticBackend) Name() string { return StaticName }

func (s *StaticBackend) Model() string { return "" }

func (s *StaticBackend) Generate(_ context.Context, _ string, _ GenerationParams) (string, UsageInfo, error) {
	return s.text, UsageInfo{}, nil
}
