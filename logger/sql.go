package logger

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
	"unicode"
)

func isPrintable(s []byte) bool {
	for _, r := range s {
		if !unicode.IsPrint(rune(r)) {
			return false
		}
	}
	return true
}

// ExplainSQL interpolates bind vars into sql for log output. The result is
// for humans only and is never sent to the backend.
func ExplainSQL(sql string, escaper string, vars ...interface{}) string {
	replacements := make([]string, len(vars))

	for idx, v := range vars {
		if valuer, ok := v.(driver.Valuer); ok {
			v, _ = valuer.Value()
		}

		switch v := v.(type) {
		case bool:
			replacements[idx] = fmt.Sprint(v)
		case time.Time:
			replacements[idx] = escaper + v.Format("2006-01-02 15:04:05") + escaper
		case *time.Time:
			if v != nil {
				replacements[idx] = escaper + v.Format("2006-01-02 15:04:05") + escaper
			} else {
				replacements[idx] = "NULL"
			}
		case []byte:
			if isPrintable(v) {
				replacements[idx] = escaper + strings.Replace(string(v), escaper, "\\"+escaper, -1) + escaper
			} else {
				replacements[idx] = escaper + "<binary>" + escaper
			}
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			replacements[idx] = fmt.Sprintf("%d", v)
		case float32, float64:
			replacements[idx] = fmt.Sprintf("%.6f", v)
		case string:
			replacements[idx] = escaper + strings.Replace(v, escaper, "\\"+escaper, -1) + escaper
		default:
			if v == nil {
				replacements[idx] = "NULL"
			} else {
				replacements[idx] = escaper + strings.Replace(fmt.Sprint(v), escaper, "\\"+escaper, -1) + escaper
			}
		}
	}

	for _, replacement := range replacements {
		sql = strings.Replace(sql, "?", replacement, 1)
	}

	return sql
}
