package sqlx

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/z-sdk/multisert/lib/logx"
)

// 日志中语句的最大长度，批量语句往往很长
const maxLogLength = 256

// formatQuery 格式查询字符串和参数，仅用于日志
func formatQuery(query string, args ...interface{}) (string, error) {
	argNum := len(args)
	if argNum == 0 {
		return query, nil
	}

	var b strings.Builder
	argIdx := 0
	for _, char := range query {
		if char != '?' {
			b.WriteRune(char)
		} else {
			if argIdx >= argNum {
				return "", fmt.Errorf("错误: 参数个数【少于】问号个数")
			}

			arg := args[argIdx]
			argIdx++

			switch at := arg.(type) {
			case bool:
				if at {
					b.WriteByte('1')
				} else {
					b.WriteByte('0')
				}
			case string:
				b.WriteByte('\'')
				b.WriteString(escape(at))
				b.WriteByte('\'')
			case time.Time:
				b.WriteByte('\'')
				b.WriteString(at.Format(timestampLayout))
				b.WriteByte('\'')
			case nil:
				b.WriteString(nullLiteral)
			default:
				// 其他类型如 interface{} 的字符串形式
				b.WriteString(fmt.Sprint(at))
			}
		}
	}

	if argIdx < argNum {
		return "", fmt.Errorf("错误: 参数个数【多于】问号个数")
	}

	return b.String(), nil
}

// escape 字符串转义
func escape(str string) string {
	var b strings.Builder

	for _, c := range str {
		switch c {
		case '\x00':
			b.WriteString(`\x00`)
		case '\r':
			b.WriteString(`\r`)
		case '\n':
			b.WriteString(`\n`)
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '"':
			b.WriteString(`\"`)
		case '\x1a':
			b.WriteString(`\x1a`)
		default:
			b.WriteRune(c)
		}
	}

	return b.String()
}

// abbr 截断过长的语句
func abbr(stmt string) string {
	if len(stmt) <= maxLogLength {
		return stmt
	}
	return fmt.Sprintf("%s...(共 %d 字节)", stmt[:maxLogLength], len(stmt))
}

// desensitize 隐藏数据源中的密码
func desensitize(dataSourceName string) string {
	cfg, err := mysql.ParseDSN(dataSourceName)
	if err != nil || len(cfg.Passwd) == 0 {
		return dataSourceName
	}

	cfg.Passwd = "******"
	return cfg.FormatDSN()
}

func logSqlError(stmt string, err error) {
	if err != nil {
		logx.Errorf("[SQL] 语句: %s, 错误: %v", abbr(stmt), err)
	}
}
