package sqlx

import (
	"strings"

	_ "github.com/go-sql-driver/mysql"
)

const mysqlDriverName = "mysql"

// NewMySQL 创建 MySQL 数据库实例
func NewMySQL(dataSourceName string, opts ...Option) Conn {
	perfectDSN(&dataSourceName)
	return NewConn(mysqlDriverName, dataSourceName, opts...)
}

// perfectDSN 自动补全连接字符串
func perfectDSN(dataSourceName *string) {
	var args []string
	if !strings.Contains(*dataSourceName, "parseTime=") {
		args = append(args, "parseTime=true")
	}
	if !strings.Contains(*dataSourceName, "loc=") {
		args = append(args, "loc=Local")
	}
	if len(args) == 0 {
		return
	}

	switch {
	case !strings.Contains(*dataSourceName, "?"):
		*dataSourceName += "?"
	case !strings.HasSuffix(*dataSourceName, "?") && !strings.HasSuffix(*dataSourceName, "&"):
		*dataSourceName += "&"
	}
	*dataSourceName += strings.Join(args, "&")
}
