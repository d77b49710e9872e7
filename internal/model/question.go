package model

import "gorm.io/datatypes"

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionFillBlank      QuestionType = "fill_blank"
	QuestionTranslation    QuestionType = "translation"
	QuestionListenType     QuestionType = "listen_type"
	QuestionSpeakRecord    QuestionType = "speak_record"
	QuestionMatchPairs     QuestionType = "match_pairs"
	QuestionWordOrder      QuestionType = "word_order"
	QuestionImageSelect    QuestionType = "image_select"
)

// Question is one gradable unit of a quiz lesson. Options and CorrectAnswer
// are JSON whose shape depends on Type: a list of strings for choice, word
// order and image questions, a list of {left,right} objects for match_pairs,
// and a bare string answer for the text types.
// swagger:model Question
type Question struct {
	UUIDBase
	LessonID         string         `gorm:"type:varchar(36);not null;index" json:"lessonId"`
	Type             QuestionType   `gorm:"size:32;not null" json:"type"`
	QuestionText     string         `gorm:"type:text;not null" json:"questionText"`
	QuestionAudioURL string         `gorm:"size:255" json:"questionAudioUrl"`
	QuestionImageURL string         `gorm:"size:255" json:"questionImageUrl"`
	Options          datatypes.JSON `json:"options"`
	CorrectAnswer    datatypes.JSON `gorm:"not null" json:"correctAnswer"`
	Explanation      string         `gorm:"type:text" json:"explanation"`
	XPReward         int            `gorm:"column:xp_reward;default:5" json:"xpReward"`
	OrderIndex       int            `gorm:"default:0;index" json:"orderIndex"`
}

func (Question) TableName() string {
	return "questions"
}

// QuestionAttempt is the append-only log of one answer to one question.
// PronunciationScore stays null until real speech scoring exists.
// swagger:model QuestionAttempt
type QuestionAttempt struct {
	UUIDBase
	UserID             string         `gorm:"type:varchar(36);not null;index" json:"userId"`
	QuestionID         string         `gorm:"type:varchar(36);not null;index" json:"questionId"`
	UserAnswer         datatypes.JSON `json:"userAnswer"`
	IsCorrect          bool           `json:"isCorrect"`
	PronunciationScore *float64       `json:"pronunciationScore"`
	TimeTakenSeconds   *int           `json:"timeTakenSeconds"`
}

func (QuestionAttempt) TableName() string {
	return "question_attempts"
}
