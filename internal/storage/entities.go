package storage

// Persisted shapes. Dates are RFC3339 strings in UTC and are revived to
// time.Time by the codec on load.

type profileRecord struct {
	ID              string            `json:"id"`
	NeuroProfile    string            `json:"neuroProfile"`
	MotivationStyle string            `json:"motivationStyle"`
	Preferences     preferencesRecord `json:"preferences"`
	CreatedAt       string            `json:"createdAt"`
	LastActive      string            `json:"lastActive"`
}

type preferencesRecord struct {
	VoiceEnabled        bool   `json:"voiceEnabled"`
	ReadingMode         bool   `json:"readingMode"`
	LowSensoryMode      bool   `json:"lowSensoryMode"`
	FocusBubbleDefault  bool   `json:"focusBubbleDefault"`
	CelebrationStyle    string `json:"celebrationStyle"`
	SessionLimitMinutes int    `json:"sessionLimitMinutes"`
	DyslexiaFont        bool   `json:"dyslexiaFont"`
}

type taskRecord struct {
	ID               string       `json:"id"`
	Title            string       `json:"title"`
	Description      string       `json:"description,omitempty"`
	EnergyLevel      string       `json:"energyLevel"`
	EstimatedMinutes int          `json:"estimatedMinutes"`
	Steps            []stepRecord `json:"steps"`
	IsJustStart      bool         `json:"isJustStart"`
	CompletedAt      *string      `json:"completedAt,omitempty"`
	CreatedAt        string       `json:"createdAt"`
	StuckCount       int          `json:"stuckCount"`
	PauseCount       int          `json:"pauseCount"`
	EaseRating       int          `json:"easeRating,omitempty"`
}

type stepRecord struct {
	ID                    string  `json:"id"`
	Description           string  `json:"description"`
	IsComplete            bool    `json:"isComplete"`
	SimplifiedDescription string  `json:"simplifiedDescription,omitempty"`
	VoiceGuidance         string  `json:"voiceGuidance,omitempty"`
	CompletedAt           *string `json:"completedAt,omitempty"`
	StuckAt               *string `json:"stuckAt,omitempty"`
}

type sessionRecord struct {
	ID                  string          `json:"id"`
	TaskID              string          `json:"taskId"`
	StartedAt           string          `json:"startedAt"`
	EndedAt             *string         `json:"endedAt,omitempty"`
	CurrentStepIndex    int             `json:"currentStepIndex"`
	Pauses              []pauseRecord   `json:"pauses"`
	EmotionCheckins     []checkinRecord `json:"emotionCheckins"`
	OverwhelmDetections int             `json:"overwhelmDetections"`
	ElapsedMinutes      int             `json:"elapsedMinutes"`
}

type pauseRecord struct {
	StartedAt string  `json:"startedAt"`
	ResumedAt *string `json:"resumedAt,omitempty"`
	Reason    string  `json:"reason"`
}

type checkinRecord struct {
	Timestamp    string `json:"timestamp"`
	Emotion      string `json:"emotion"`
	AutoDetected bool   `json:"autoDetected"`
}

type microWinRecord struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	TaskID     string `json:"taskId"`
	Timestamp  string `json:"timestamp"`
	Celebrated bool   `json:"celebrated"`
}

type stuckPatternRecord struct {
	TaskID          string `json:"taskId"`
	StepDescription string `json:"stepDescription"`
	Frequency       int    `json:"frequency"`
	LastOccurred    string `json:"lastOccurred"`
	SuggestedHelp   string `json:"suggestedHelp,omitempty"`
}
