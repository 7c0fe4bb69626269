package repository

import (
	"fmt"
	"strings"

	"github.com/handmade-next/internal/constants"

	"gorm.io/gorm"
)

// sqlDialect 区分 sqlite 与 postgres 的 SQL 片段
type sqlDialect string

const (
	dialectSQLite   sqlDialect = "sqlite"
	dialectPostgres sqlDialect = "postgres"
)

func dialectOf(db *gorm.DB) sqlDialect {
	if db == nil || db.Dialector == nil {
		return dialectSQLite
	}
	return parseDialect(db.Dialector.Name())
}

func parseDialect(name string) sqlDialect {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "postgres", "postgresql", "pgx":
		return dialectPostgres
	default:
		return dialectSQLite
	}
}

// jsonText 提取多语言 JSON 列中某个语言的文本
func (d sqlDialect) jsonText(column, locale string) string {
	if d == dialectPostgres {
		return fmt.Sprintf("(%s::jsonb ->> '%s')", column, locale)
	}
	return fmt.Sprintf("json_extract(%s, '$.\"%s\"')", column, locale)
}

func (d sqlDialect) like() string {
	if d == dialectPostgres {
		return "ILIKE"
	}
	return "LIKE"
}

// textSearch 在普通列与多语言 JSON 列上做模糊匹配
type textSearch struct {
	dialect   sqlDialect
	plain     []string
	localized []string
}

func newTextSearch(dialect sqlDialect, plain, localized []string) textSearch {
	return textSearch{dialect: dialect, plain: compactColumns(plain), localized: compactColumns(localized)}
}

// condition 返回 OR 连接的条件与占位符数量
func (s textSearch) condition() (string, int) {
	parts := make([]string, 0, len(s.plain)+len(s.localized)*len(constants.SupportedLocales))
	for _, column := range s.plain {
		parts = append(parts, fmt.Sprintf("%s %s ? ESCAPE '\\'", column, s.dialect.like()))
	}
	for _, column := range s.localized {
		for _, locale := range constants.SupportedLocales {
			parts = append(parts, fmt.Sprintf("%s %s ? ESCAPE '\\'", s.dialect.jsonText(column, locale), s.dialect.like()))
		}
	}
	return strings.Join(parts, " OR "), len(parts)
}

// apply 为查询追加搜索条件，空关键字不做过滤
func (s textSearch) apply(query *gorm.DB, term string) *gorm.DB {
	term = strings.TrimSpace(term)
	if term == "" {
		return query
	}
	condition, count := s.condition()
	if count == 0 {
		return query
	}
	pattern := "%" + escapeLike(term) + "%"
	args := make([]interface{}, count)
	for i := range args {
		args[i] = pattern
	}
	return query.Where("("+condition+")", args...)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

func compactColumns(columns []string) []string {
	out := make([]string, 0, len(columns))
	for _, column := range columns {
		if trimmed := strings.TrimSpace(column); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
