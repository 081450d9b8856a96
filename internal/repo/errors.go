package repo

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"go-gin-gorm-blog/internal/domain"
)

// translate 约束冲突转成 domain 哨兵错误，其余加上操作名
func translate(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey), isDupKey(err):
		return fmt.Errorf("%s: %w", op, domain.ErrDuplicate)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%s: %w", op, domain.ErrInUse)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// isDupKey 兜底：部分驱动版本没有翻译唯一键冲突
func isDupKey(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate entry")
}

// likePattern 转义通配符
func likePattern(s string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return "%" + r.Replace(s) + "%"
}

// searchClause 标题或正文的区分大小写子串匹配。
// sqlite 的 LIKE 对 ASCII 不分大小写，mysql 默认排序规则也不分，所以按方言换写法
func searchClause(dialect string) string {
	switch dialect {
	case "sqlite":
		return "(instr(title, ?) > 0 OR instr(body, ?) > 0)"
	case "postgres":
		return "(strpos(title, ?) > 0 OR strpos(body, ?) > 0)"
	case "mysql":
		return "(title LIKE BINARY ? ESCAPE '!' OR body LIKE BINARY ? ESCAPE '!')"
	}
	return "(title LIKE ? ESCAPE '!' OR body LIKE ? ESCAPE '!')"
}

func searchArgs(dialect, term string) []any {
	if dialect == "sqlite" || dialect == "postgres" {
		return []any{term, term}
	}
	p := likePattern(term)
	return []any{p, p}
}

// countRow 分组计数的扫描目标：SELECT x AS ref_id, COUNT(*) AS n
type countRow struct {
	RefID string
	N     int64
}

func toMap(rows []countRow) map[string]int64 {
	m := make(map[string]int64, len(rows))
	for _, r := range rows {
		m[r.RefID] = r.N
	}
	return m
}
