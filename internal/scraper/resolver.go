package scraper

import (
	"fmt"
	"strings"
)

// Strategy is one way of extracting a field. A strategy matches when it
// returns at least one string and no error.
type Strategy struct {
	Name  string
	Match func(q Querier) ([]string, error)
}

// SelectorStrategies turns a priority-ordered selector list into strategies
// that collect the cleaned, non-empty text of every matching element.
func SelectorStrategies(selectors []string, clean func(string) string) []Strategy {
	strategies := make([]Strategy, 0, len(selectors))
	for _, selector := range selectors {
		strategies = append(strategies, allTexts(selector, clean))
	}
	return strategies
}

// FirstMatchStrategies is like SelectorStrategies but each strategy only
// looks at the first element its selector finds.
func FirstMatchStrategies(selectors []string, clean func(string) string) []Strategy {
	strategies := make([]Strategy, 0, len(selectors))
	for _, selector := range selectors {
		strategies = append(strategies, firstText(selector, clean))
	}
	return strategies
}

func allTexts(selector string, clean func(string) string) Strategy {
	return Strategy{
		Name: selector,
		Match: func(q Querier) ([]string, error) {
			elements, err := q.QueryAll(selector)
			if err != nil {
				return nil, err
			}
			texts := make([]string, 0, len(elements))
			for _, el := range elements {
				text, err := el.Text()
				if err != nil {
					return nil, fmt.Errorf("read text: %w", err)
				}
				if text = clean(text); text != "" {
					texts = append(texts, text)
				}
			}
			return texts, nil
		},
	}
}

func firstText(selector string, clean func(string) string) Strategy {
	return Strategy{
		Name: selector,
		Match: func(q Querier) ([]string, error) {
			elements, err := q.QueryAll(selector)
			if err != nil || len(elements) == 0 {
				return nil, err
			}
			text, err := elements[0].Text()
			if err != nil {
				return nil, fmt.Errorf("read text: %w", err)
			}
			if text = clean(text); text == "" {
				return nil, nil
			}
			return []string{text}, nil
		},
	}
}

// Resolve runs the strategies in order and returns the first non-empty
// result together with the name of the strategy that produced it. When
// nothing matches it returns an empty slice and an empty name.
func Resolve(q Querier, strategies []Strategy, onMiss func(name string, err error)) ([]string, string) {
	for _, st := range strategies {
		texts, err := st.Match(q)
		if err != nil || len(texts) == 0 {
			if onMiss != nil {
				onMiss(st.Name, err)
			}
			continue
		}
		return texts, st.Name
	}
	return nil, ""
}

// ResolveField resolves one column of the page from a selector list.
func (s *Scraper) ResolveField(q Querier, selectors []string) (Field, string) {
	texts, matched := Resolve(q, SelectorStrategies(selectors, s.clean), s.logMiss)
	if matched == "" {
		return Field{}, ""
	}
	return FieldOf(texts...), matched
}

// resolveOne ищет одно значение внутри карточки объявления.
func (s *Scraper) resolveOne(q Querier, selectors []string) Value {
	texts, matched := Resolve(q, FirstMatchStrategies(selectors, s.clean), nil)
	if matched == "" {
		return Missing()
	}
	return Text(texts[0])
}

func (s *Scraper) logMiss(selector string, err error) {
	if err != nil {
		s.logger.Debug("Selector failed", "selector", selector, "error", err.Error())
		return
	}
	s.logger.Debug("Selector matched nothing", "selector", selector)
}

func defaultClean(s string) string {
	return strings.TrimSpace(s)
}
