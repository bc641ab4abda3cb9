// Package seed は YAML の単語帳ファイルをカード登録リクエストに変換する
package seed

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"go_vocab_srs/internal/model"
)

var ErrEmptyDeck = errors.New("deck file contains no cards")

// DeckFile はファイル全体。カテゴリごとにデッキを並べる。
type DeckFile struct {
	Decks []Deck `yaml:"decks"`
}

type Deck struct {
	Category   string      `yaml:"category"`
	Difficulty int         `yaml:"difficulty"` // カード側で未指定のときに使う
	Cards      []DeckEntry `yaml:"cards"`
}

type DeckEntry struct {
	Front      string `yaml:"front"`
	Back       string `yaml:"back"`
	Usage      string `yaml:"usage"`
	Difficulty int    `yaml:"difficulty"`
	Category   string `yaml:"category"`
}

// Parse は r から DeckFile を読み、登録リクエストの一覧を返す
func Parse(r io.Reader) ([]model.CreateCardRequest, error) {
	var f DeckFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDeck
		}
		return nil, fmt.Errorf("failed to decode deck file: %w", err)
	}

	var reqs []model.CreateCardRequest
	for di, d := range f.Decks {
		for ci, c := range d.Cards {
			category := strings.TrimSpace(c.Category)
			if category == "" {
				category = strings.TrimSpace(d.Category)
			}
			if category == "" {
				return nil, fmt.Errorf("decks[%d].cards[%d] (%q): category is missing", di, ci, c.Front)
			}
			difficulty := c.Difficulty
			if difficulty == 0 {
				difficulty = d.Difficulty
			}
			reqs = append(reqs, model.CreateCardRequest{
				Front:      strings.TrimSpace(c.Front),
				Back:       strings.TrimSpace(c.Back),
				Category:   category,
				Difficulty: difficulty,
				Usage:      strings.TrimSpace(c.Usage),
			})
		}
	}
	if len(reqs) == 0 {
		return nil, ErrEmptyDeck
	}
	return reqs, nil
}

func LoadFile(path string) ([]model.CreateCardRequest, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	return Parse(fp)
}
