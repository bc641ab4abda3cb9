//go:generate mockery --name PhraseService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"strings"

	"go_vocab_srs/internal/config"
	"go_vocab_srs/internal/middleware"
	"go_vocab_srs/internal/model"
	"go_vocab_srs/internal/repository"
)

// PhraseService は作文用の定型表現集と、作文の下書き (1件) を扱う
type PhraseService interface {
	Library(ctx context.Context) *model.PhraseLibrary
	GetDraft(ctx context.Context) (*model.PhraseDraft, error)
	SaveDraft(ctx context.Context, text string) (*model.PhraseDraft, error)
	ClearDraft(ctx context.Context) error
	InsertPhrase(ctx context.Context, text string, position *int, phrase string) *model.PhraseDraft
}

type phraseService struct {
	kv repository.KVStore
}

func NewPhraseService(kv repository.KVStore) PhraseService {
	return &phraseService{kv: kv}
}

var phraseStructures = []model.PhraseStructureGroup{
	{
		Section: model.SectionIntroduction,
		Structures: []model.PhraseStructure{
			{
				Title: "Présenter le sujet",
				Templates: []string{
					"The question of {topic} has become increasingly significant in {context}",
					"In recent years, {topic} has emerged as a crucial issue in {context}",
					"The relationship between {topic} and {context} raises important questions",
				},
				Examples: []model.PhraseExample{
					{
						Slots: map[string]string{"topic": "artificial intelligence", "context": "modern society"},
						Full:  "The question of artificial intelligence has become increasingly significant in modern society.",
					},
				},
			},
			{
				Title: "Annoncer la problématique",
				Templates: []string{
					"This raises the question of whether {statement}",
					"It is worth examining to what extent {statement}",
					"One may wonder how {statement}",
				},
			},
		},
	},
	{
		Section: model.SectionDevelopment,
		Structures: []model.PhraseStructure{
			{
				Title: "Premier argument",
				Templates: []string{
					"First and foremost, {argument}",
					"The primary consideration is that {argument}",
					"One of the main arguments in favor of this view is that {argument}",
				},
			},
			{
				Title: "Argument suivant",
				Templates: []string{
					"Furthermore, it should be noted that {argument}",
					"Moreover, another crucial aspect is {argument}",
					"In addition to this, {argument}",
				},
			},
			{
				Title: "Contraste",
				Templates: []string{
					"However, one must also consider that {argument}",
					"On the other hand, {argument}",
					"Nevertheless, it is important to recognize that {argument}",
				},
			},
		},
	},
	{
		Section: model.SectionConclusion,
		Structures: []model.PhraseStructure{
			{
				Title: "Synthèse",
				Templates: []string{
					"In light of the above arguments, it appears that {conclusion}",
					"Taking all these factors into consideration, one can conclude that {conclusion}",
					"Based on the evidence presented, it is clear that {conclusion}",
				},
			},
			{
				Title: "Ouverture",
				Templates: []string{
					"This leads us to question whether {future_consideration}",
					"Looking ahead, one might wonder if {future_consideration}",
					"The future development of {topic} will likely determine {future_consideration}",
				},
			},
		},
	},
}

var academicExpressions = []model.ExpressionGroup{
	{Function: "comparing", Expressions: []string{
		"Similarly,", "In contrast,", "Whereas", "While", "Unlike",
		"On the other hand,", "Conversely,", "By comparison,",
	}},
	{Function: "emphasizing", Expressions: []string{
		"Indeed,", "Notably,", "Particularly,", "Especially,",
		"It should be emphasized that", "Significantly,",
	}},
	{Function: "exemplifying", Expressions: []string{
		"For instance,", "For example,", "To illustrate this,",
		"A case in point is", "This can be demonstrated by",
	}},
	{Function: "concluding", Expressions: []string{
		"Therefore,", "Consequently,", "As a result,",
		"Thus,", "Hence,", "It follows that",
	}},
	{Function: "cause_effect", Expressions: []string{
		"Because of this,", "This leads to",
		"The reason for this is", "This results in",
		"Due to", "Owing to",
	}},
}

// Library は表現集を返す。呼び出し側が書き換えても元データに影響しないようにコピーする。
func (s *phraseService) Library(ctx context.Context) *model.PhraseLibrary {
	lib := &model.PhraseLibrary{
		Structures:  make([]model.PhraseStructureGroup, len(phraseStructures)),
		Expressions: make([]model.ExpressionGroup, len(academicExpressions)),
	}
	for i, g := range phraseStructures {
		structs := make([]model.PhraseStructure, len(g.Structures))
		for j, st := range g.Structures {
			structs[j] = model.PhraseStructure{
				Title:     st.Title,
				Templates: append([]string(nil), st.Templates...),
				Examples:  append([]model.PhraseExample(nil), st.Examples...),
			}
		}
		lib.Structures[i] = model.PhraseStructureGroup{Section: g.Section, Structures: structs}
	}
	for i, g := range academicExpressions {
		lib.Expressions[i] = model.ExpressionGroup{Function: g.Function, Expressions: append([]string(nil), g.Expressions...)}
	}
	return lib
}

// GetDraft は保存済みの下書きを返す。未保存なら空文字。
func (s *phraseService) GetDraft(ctx context.Context) (*model.PhraseDraft, error) {
	text, _, err := s.kv.Get(ctx, config.PhraseDraftKey)
	if err != nil {
		middleware.GetLogger(ctx).Error("Failed to load phrase draft", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "下書きの取得に失敗しました。", "", err)
	}
	return &model.PhraseDraft{Text: text, WordCount: countWords(text)}, nil
}

func (s *phraseService) SaveDraft(ctx context.Context, text string) (*model.PhraseDraft, error) {
	logger := middleware.GetLogger(ctx)
	if err := s.kv.Set(ctx, config.PhraseDraftKey, text); err != nil {
		logger.Error("Failed to save phrase draft", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "下書きの保存に失敗しました。", "", err)
	}
	draft := &model.PhraseDraft{Text: text, WordCount: countWords(text)}
	logger.Debug("Phrase draft saved", "word_count", draft.WordCount)
	return draft, nil
}

func (s *phraseService) ClearDraft(ctx context.Context) error {
	if err := s.kv.Set(ctx, config.PhraseDraftKey, ""); err != nil {
		middleware.GetLogger(ctx).Error("Failed to clear phrase draft", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "下書きの削除に失敗しました。", "", err)
	}
	return nil
}

// InsertPhrase は position (文字単位) に phrase を差し込む。前後が空白でなければ空白を補う。
// 保存はしない。
func (s *phraseService) InsertPhrase(ctx context.Context, text string, position *int, phrase string) *model.PhraseDraft {
	runes := []rune(text)
	pos := len(runes)
	if position != nil && *position >= 0 && *position < pos {
		pos = *position
	}
	before, after := string(runes[:pos]), string(runes[pos:])

	var b strings.Builder
	b.WriteString(before)
	if pos > 0 && !strings.HasSuffix(before, " ") {
		b.WriteByte(' ')
	}
	b.WriteString(phrase)
	if after != "" && !strings.HasPrefix(after, " ") {
		b.WriteByte(' ')
	}
	b.WriteString(after)

	out := b.String()
	return &model.PhraseDraft{Text: out, WordCount: countWords(out)}
}
