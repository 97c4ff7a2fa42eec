package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

func jsonValue(v any) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func jsonScan(dst any, src any) error {
	if src == nil {
		return nil
	}
	switch data := src.(type) {
	case []byte:
		return json.Unmarshal(data, dst)
	case string:
		return json.Unmarshal([]byte(data), dst)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}
}

// OptionMap holds a question's options keyed by canonical option key
// ("A".."D"). Display order is carried separately, never by map order.
type OptionMap map[string]string

func (m OptionMap) Value() (driver.Value, error) { return jsonValue(m) }
func (m *OptionMap) Scan(src any) error          { return jsonScan(m, src) }

// QuestionRefList is the attempt's frozen presentation order.
type QuestionRefList []QuestionRef

func (l QuestionRefList) Value() (driver.Value, error) { return jsonValue(l) }
func (l *QuestionRefList) Scan(src any) error          { return jsonScan(l, src) }

// OptionOrderMap freezes the shuffled display order of option keys per
// question for the lifetime of an attempt.
type OptionOrderMap map[QuestionRef][]string

func (m OptionOrderMap) Value() (driver.Value, error) { return jsonValue(m) }
func (m *OptionOrderMap) Scan(src any) error          { return jsonScan(m, src) }

// AnswerRecord is one autosaved answer. SavedAtSeconds is the
// server-measured elapsed time at the moment the answer was stored.
type AnswerRecord struct {
	Selected       *string `json:"selected"`
	SavedAtSeconds *int    `json:"saved_at"`
}

type AnswerMap map[QuestionRef]AnswerRecord

func (m AnswerMap) Value() (driver.Value, error) { return jsonValue(m) }
func (m *AnswerMap) Scan(src any) error          { return jsonScan(m, src) }

// AnswerResult is the per-question outcome recorded once, at submission.
type AnswerResult struct {
	Selected      *string `json:"selected"`
	IsCorrect     bool    `json:"is_correct"`
	CorrectOption string  `json:"correct_option"`
	Category      string  `json:"category"`
	Marks         int     `json:"marks"`
}

type ResultMap map[QuestionRef]AnswerResult

func (m ResultMap) Value() (driver.Value, error) { return jsonValue(m) }
func (m *ResultMap) Scan(src any) error          { return jsonScan(m, src) }

// GeneratedQuestion is an AI-authored question embedded in a single
// attempt. It mirrors the bank question shape but is never persisted
// independently.
type GeneratedQuestion struct {
	QuestionText     string          `json:"question_text"`
	Options          OptionMap       `json:"options"`
	CorrectOption    string          `json:"correct_option"`
	Explanation      *string         `json:"explanation,omitempty"`
	Category         string          `json:"category"`
	Difficulty       DifficultyLevel `json:"difficulty"`
	Marks            int             `json:"marks"`
	TimeLimitSeconds *int            `json:"time_limit_seconds,omitempty"`
}

type GeneratedQuestionMap map[QuestionRef]GeneratedQuestion

func (m GeneratedQuestionMap) Value() (driver.Value, error) { return jsonValue(m) }
func (m *GeneratedQuestionMap) Scan(src any) error          { return jsonScan(m, src) }
