package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FlexID holds an identifier that clients and the model emit either as a JSON
// number or a JSON string. It always marshals back as a string.
type FlexID string

func (f *FlexID) UnmarshalJSON(data []byte) error {
	s, err := flexString(data)
	if err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*f = FlexID(s)
	return nil
}

// FlexText is free text the model sometimes writes as a bare number, such as
// a quiz answer given as an option index.
type FlexText string

func (f *FlexText) UnmarshalJSON(data []byte) error {
	s, err := flexString(data)
	if err != nil {
		return fmt.Errorf("text must be a string or number: %w", err)
	}
	*f = FlexText(s)
	return nil
}

func flexString(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return "", nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}

// Percent accepts 90, 90.5, "90" and "90%". Strings that carry no number
// decode as 0. It marshals as a plain JSON number.
type Percent float64

func (p *Percent) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			v = 0
		}
		*p = Percent(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("percentage must be a number or string: %w", err)
	}
	*p = Percent(v)
	return nil
}

// Question is one generated assessment question with lettered options.
type Question struct {
	ID       FlexID            `json:"id"`
	Question string            `json:"question"`
	Options  map[string]string `json:"options"`
}

func (q Question) Validate() error {
	if q.Question == "" {
		return errors.New("question text is empty")
	}
	if len(q.Options) < 2 {
		return errors.New("question has fewer than two options")
	}
	return nil
}

type AssessmentResponse struct {
	QuestionID FlexID `json:"question_id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	AnswerText string `json:"answer_text"`
}

type CareerPath struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	MatchPercentage Percent `json:"match_percentage"`
}

type Analysis struct {
	CareerPaths             []CareerPath `json:"career_paths"`
	Strengths               []string     `json:"strengths"`
	DevelopmentAreas        []string     `json:"development_areas"`
	LearningRecommendations []string     `json:"learning_recommendations"`
}

func (a Analysis) Validate() error {
	if len(a.CareerPaths) == 0 {
		return errors.New("analysis has no career paths")
	}
	for i, p := range a.CareerPaths {
		if p.Title == "" {
			return fmt.Errorf("career path %d has no title", i)
		}
	}
	return nil
}

type Assessment struct {
	UserID      string               `json:"user_id"`
	Responses   []AssessmentResponse `json:"responses"`
	Analysis    Analysis             `json:"analysis"`
	CompletedAt time.Time            `json:"completed_at"`
}

func (a Assessment) Validate() error {
	if a.UserID == "" {
		return errors.New("missing user_id")
	}
	return nil
}

// Module is a generated microlearning module summary.
type Module struct {
	ID          FlexID `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Duration    string `json:"duration"`
	Level       string `json:"level"`
	Icon        string `json:"icon"`
}

func (m Module) Validate() error {
	if m.Title == "" {
		return errors.New("module has no title")
	}
	return nil
}

type LessonSection struct {
	Heading string `json:"heading"`
	Content string `json:"content"`
}

type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer FlexText `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

type Lesson struct {
	Objectives   []string        `json:"objectives"`
	Sections     []LessonSection `json:"sections"`
	Examples     []string        `json:"examples"`
	KeyTakeaways []string        `json:"key_takeaways"`
	Quiz         []QuizQuestion  `json:"quiz"`
}

func (l Lesson) Validate() error {
	if len(l.Sections) == 0 {
		return errors.New("lesson has no sections")
	}
	for i, q := range l.Quiz {
		if q.Question == "" || len(q.Options) == 0 {
			return fmt.Errorf("quiz question %d is incomplete", i)
		}
	}
	return nil
}
