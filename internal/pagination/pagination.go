// Package pagination режет упорядоченные выборки на страницы фиксированного размера.
//
// Номер страницы приходит строкой из query-параметра. Пустой или нечисловой
// номер дает первую страницу, номер меньше 1 - первую, больше последней - последнюю.
// Пустая выборка состоит из одной пустой страницы.
package pagination

import (
	"fmt"
	"strconv"
	"strings"
)

const DefaultSize = 10

// Page - одна страница выборки
type Page[T any] struct {
	Items    []T
	Number   int
	Size     int
	Total    int
	NumPages int
}

// Query отдает окно выборки (limit, offset) и общее количество элементов
type Query[T any] func(limit, offset int) ([]T, int, error)

func (p *Page[T]) HasNext() bool { return p.Number < p.NumPages }
func (p *Page[T]) HasPrev() bool { return p.Number > 1 }

func (p *Page[T]) NextNumber() int {
	if !p.HasNext() {
		return p.Number
	}
	return p.Number + 1
}

func (p *Page[T]) PrevNumber() int {
	if !p.HasPrev() {
		return p.Number
	}
	return p.Number - 1
}

// PageRange - номера всех страниц, для шаблона пагинатора
func (p *Page[T]) PageRange() []int {
	pages := make([]int, p.NumPages)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

func (p *Page[T]) Len() int { return len(p.Items) }

// NumPages - количество страниц для total элементов
func NumPages(total, size int) int {
	if total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// ParseNumber разбирает номер страницы, 1 если он пустой или не число
func ParseNumber(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func clamp(number, numPages int) int {
	if number < 1 {
		return 1
	}
	if number > numPages {
		return numPages
	}
	return number
}

func normalizeSize(size int) int {
	if size <= 0 {
		return DefaultSize
	}
	return size
}

// Paginate режет уже загруженный срез
func Paginate[T any](items []T, raw string, size int) *Page[T] {
	size = normalizeSize(size)
	total := len(items)
	numPages := NumPages(total, size)
	number := clamp(ParseNumber(raw), numPages)

	start := (number - 1) * size
	end := start + size
	if end > total {
		end = total
	}

	return &Page[T]{
		Items:    items[start:end:end],
		Number:   number,
		Size:     size,
		Total:    total,
		NumPages: numPages,
	}
}

// Fetch запрашивает у хранилища нужную страницу. Если страница оказалась
// за концом выборки, запрос повторяется для последней страницы.
func Fetch[T any](raw string, size int, query Query[T]) (*Page[T], error) {
	size = normalizeSize(size)
	number := ParseNumber(raw)

	items, total, err := query(size, (number-1)*size)
	if err != nil {
		return nil, fmt.Errorf("could not fetch page %d: %w", number, err)
	}

	numPages := NumPages(total, size)
	if clamped := clamp(number, numPages); clamped != number {
		number = clamped
		items, total, err = query(size, (number-1)*size)
		if err != nil {
			return nil, fmt.Errorf("could not fetch page %d: %w", number, err)
		}
		numPages = NumPages(total, size)
	}

	if items == nil {
		items = []T{}
	}

	return &Page[T]{
		Items:    items,
		Number:   number,
		Size:     size,
		Total:    total,
		NumPages: numPages,
	}, nil
}
