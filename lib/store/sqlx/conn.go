package sqlx

import (
	"database/sql"
	"time"

	"github.com/z-sdk/multisert/lib/logx"
)

// 慢日志阈值
const defaultSlowThreshold = 500 * time.Millisecond

type (
	// Session 提供基于 SQL 的执行
	Session interface {
		Exec(query string, args ...interface{}) (sql.Result, error)
	}

	// Conn 封装数据库会话，底层连接池按数据源复用
	Conn interface {
		Session
		RawDB() (*sql.DB, error)
		// Close 关闭该数据源的连接池，共用同一数据源的 Conn 再次使用时重新建立
		Close() error
	}

	sessionConn interface {
		Exec(query string, args ...interface{}) (sql.Result, error)
	}

	// Option 是一个可选的数据库增强函数
	Option func(c *conn)

	// conn 数据库实例，封装SQL和参数为语句
	conn struct {
		driverName     string        // 驱动名称，支持 mysql/postgres/sqlite3
		dataSourceName string        // 数据源名称 Data Source Name，既数据库连接字符串
		slowThreshold  time.Duration // 超过该耗时的执行记为慢日志
	}
)

// NewConn 创建指定驱动和数据源地址的 Conn 实例
func NewConn(driverName, dataSourceName string, opts ...Option) Conn {
	c := &conn{
		driverName:     driverName,
		dataSourceName: dataSourceName,
		slowThreshold:  defaultSlowThreshold,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithSlowThreshold 自定义慢日志阈值
func WithSlowThreshold(threshold time.Duration) Option {
	return func(c *conn) {
		c.slowThreshold = threshold
	}
}

// ----------------- conn 实现方法 ↓ ----------------- //

func (c *conn) Exec(query string, args ...interface{}) (sql.Result, error) {
	db, err := getConn(c.driverName, c.dataSourceName)
	if err != nil {
		logConnError(c.dataSourceName, err)
		return nil, err
	}

	return doExec(db, c.slowThreshold, query, args...)
}

func (c *conn) RawDB() (*sql.DB, error) {
	return getConn(c.driverName, c.dataSourceName)
}

func (c *conn) Close() error {
	return closeConn(c.driverName, c.dataSourceName)
}

// doExec 执行语句，带有慢执行检测
func doExec(conn sessionConn, slowThreshold time.Duration, query string, args ...interface{}) (sql.Result, error) {
	stmt, err := formatQuery(query, args...)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()
	result, err := conn.Exec(query, args...)
	duration := time.Since(startTime)
	if duration > slowThreshold {
		logx.WithDuration(duration).Slowf("[SQL] 慢执行 - %s", abbr(stmt))
	}
	if err != nil {
		logSqlError(stmt, err)
	}

	return result, err
}

func logConnError(dataSourceName string, err error) {
	logx.Errorf("获取数据库连接失败 %s: %v", desensitize(dataSourceName), err)
}
