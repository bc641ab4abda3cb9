// internal/model/phrase.go
package model

// PhraseSection は作文の構成上の位置
type PhraseSection string

const (
	SectionIntroduction PhraseSection = "introduction"
	SectionDevelopment  PhraseSection = "development"
	SectionConclusion   PhraseSection = "conclusion"
)

// PhraseExample はテンプレートの穴埋め例
type PhraseExample struct {
	Slots map[string]string `json:"slots"`
	Full  string            `json:"full"`
}

// PhraseStructure はひとつの役割に対応するテンプレート群。{topic} などが穴埋め箇所。
type PhraseStructure struct {
	Title     string          `json:"title"`
	Templates []string        `json:"templates"`
	Examples  []PhraseExample `json:"examples,omitempty"`
}

type PhraseStructureGroup struct {
	Section    PhraseSection     `json:"section"`
	Structures []PhraseStructure `json:"structures"`
}

// ExpressionGroup は機能別の接続表現
type ExpressionGroup struct {
	Function    string   `json:"function"`
	Expressions []string `json:"expressions"`
}

type PhraseLibrary struct {
	Structures  []PhraseStructureGroup `json:"structures"`
	Expressions []ExpressionGroup      `json:"expressions"`
}

// PhraseDraft は作文の下書きと語数
type PhraseDraft struct {
	Text      string `json:"text"`
	WordCount int    `json:"word_count"`
}

type SavePhraseDraftRequest struct {
	Text string `json:"text" validate:"max=20000"`
}

// InsertPhraseRequest は Position (文字単位) に Phrase を差し込む。範囲外の位置は末尾扱い。
type InsertPhraseRequest struct {
	Text     string `json:"text" validate:"max=20000"`
	Position *int   `json:"position" validate:"omitempty,min=0"`
	Phrase   string `json:"phrase" validate:"required,max=500"`
}
