package importer

import "regexp"

// columnMap holds the resolved column index for each known field.
// -1 means the field is absent from the input.
type columnMap struct {
	date     int
	title    int
	amount   int
	category int
	tags     int
}

// Header names are matched by case-insensitive prefix so that both English
// and Portuguese statement exports resolve ("Date"/"Data", "Description"/
// "Descrição", "Amount"/"Valor", ...).
var headerPatterns = map[string]*regexp.Regexp{
	"date":     regexp.MustCompile(`(?i)^(date|data)`),
	"title":    regexp.MustCompile(`(?i)^(desc|title|t[ií]tulo|hist)`),
	"amount":   regexp.MustCompile(`(?i)^(amount|value|valor)`),
	"category": regexp.MustCompile(`(?i)^(categor)`),
	"tags":     regexp.MustCompile(`(?i)^(tag|etiqueta)`),
}

// positionalColumns is the fallback layout when no header row is detected:
// column 0 = date, 1 = description, 2 = amount.
func positionalColumns() columnMap {
	return columnMap{date: 0, title: 1, amount: 2, category: -1, tags: -1}
}

// detectHeader inspects the first row against the known header names. When
// two or more columns match, the row is treated as a header and a column map
// is built from the matches; otherwise every row is data and the positional
// defaults apply.
func detectHeader(row []string) (columnMap, bool) {
	cols := columnMap{date: -1, title: -1, amount: -1, category: -1, tags: -1}
	matches := 0

	for i, cell := range row {
		switch {
		case cols.date == -1 && headerPatterns["date"].MatchString(cell):
			cols.date = i
			matches++
		case cols.title == -1 && headerPatterns["title"].MatchString(cell):
			cols.title = i
			matches++
		case cols.amount == -1 && headerPatterns["amount"].MatchString(cell):
			cols.amount = i
			matches++
		case cols.category == -1 && headerPatterns["category"].MatchString(cell):
			cols.category = i
			matches++
		case cols.tags == -1 && headerPatterns["tags"].MatchString(cell):
			cols.tags = i
			matches++
		}
	}

	if matches >= 2 {
		return cols, true
	}
	return positionalColumns(), false
}

// cellAt returns the cell at index i, or "" when the row is too short or the
// field is absent.
func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
