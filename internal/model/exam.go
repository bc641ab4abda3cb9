// internal/model/exam.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type ExamType string

const (
	ExamSynthesis ExamType = "synthesis"
	ExamEssay     ExamType = "essay"
)

// ExamDefinition は試験形式ごとの名称と制限時間
type ExamDefinition struct {
	Type         ExamType `json:"type"`
	Name         string   `json:"name"`
	DurationMin  int      `json:"duration_minutes"`
	Instructions string   `json:"instructions"`
	HasDraft     bool     `json:"has_draft"` // 保存済みの下書きがあるか
}

type ExamDocument struct {
	Title   string `json:"title"`
	Source  string `json:"source"`
	Content string `json:"content"`
}

// ExamContent は出題内容。synthesis は Documents、essay は Question と Hints を使う。
type ExamContent struct {
	Title        string         `json:"title,omitempty"`
	Question     string         `json:"question,omitempty"`
	Hints        []string       `json:"hints,omitempty"`
	Documents    []ExamDocument `json:"documents,omitempty"`
	Instructions string         `json:"instructions,omitempty"`
}

var examCatalog = map[ExamType]ExamDefinition{
	ExamSynthesis: {
		Type:         ExamSynthesis,
		Name:         "Synthèse de documents",
		DurationMin:  180,
		Instructions: "Rédigez une synthèse des documents proposés en 500-600 mots.",
	},
	ExamEssay: {
		Type:         ExamEssay,
		Name:         "Expression écrite",
		DurationMin:  120,
		Instructions: "Rédigez un essai argumenté en réponse au sujet proposé.",
	},
}

// ExamTypes は表示順に並べた試験形式
func ExamTypes() []ExamDefinition {
	return []ExamDefinition{examCatalog[ExamSynthesis], examCatalog[ExamEssay]}
}

func LookupExam(t ExamType) (ExamDefinition, bool) {
	def, ok := examCatalog[t]
	return def, ok
}

// ExamContentFor は試験形式に対応する出題内容を返す
func ExamContentFor(t ExamType) ExamContent {
	if t == ExamSynthesis {
		return ExamContent{
			Documents: []ExamDocument{
				{Title: "The Impact of AI on Modern Society", Source: "The Economist, 2023"},
				{Title: "Ethics in Artificial Intelligence", Source: "MIT Technology Review, 2023"},
				{Title: "AI Regulation Challenges", Source: "Financial Times, 2023"},
			},
			Instructions: "Synthesize these documents focusing on the main challenges and opportunities of AI integration in society.",
		}
	}
	return ExamContent{
		Title:    "Technology and Human Relations",
		Question: "To what extent has modern technology improved or damaged human relationships? Discuss with reference to specific examples.",
		Hints: []string{
			"Consider both positive and negative impacts",
			"Include concrete examples",
			"Discuss both personal and professional relationships",
			"Consider different age groups and contexts",
		},
	}
}

// ExamView は実施中の試験の様子
type ExamView struct {
	ExamID           uuid.UUID   `json:"exam_id"`
	Type             ExamType    `json:"type"`
	Name             string      `json:"name"`
	Content          ExamContent `json:"content"`
	StartedAt        time.Time   `json:"started_at"`
	RemainingSeconds int64       `json:"remaining_seconds"`
	Running          bool        `json:"running"`
	Draft            string      `json:"draft"`
	Finished         bool        `json:"finished"`
	Result           *ExamResult `json:"result,omitempty"`
}

// ExamResult は提出結果
type ExamResult struct {
	Type         ExamType  `json:"type"`
	SubmittedAt  time.Time `json:"submitted_at"`
	DurationUsed int64     `json:"duration_used_seconds"`
	WordCount    int       `json:"word_count"`
	TimeUp       bool      `json:"time_up"`
}

// 試験開始リクエストDTO
type StartExamRequest struct {
	Type ExamType `json:"type" validate:"required,oneof=synthesis essay"`
}

// 下書き保存・提出リクエストDTO
type ExamAnswerRequest struct {
	Answer string `json:"answer" validate:"max=20000"`
}
