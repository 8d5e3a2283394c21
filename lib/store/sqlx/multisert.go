package sqlx

import (
	"database/sql"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/z-sdk/multisert/lib/logx"
)

// 默认最大缓冲行数
const defaultMaxBufferCount = 10000

type (
	// Sink 批量语句的执行者，Conn 和 RedisSink 均满足
	Sink interface {
		Exec(query string, args ...interface{}) (sql.Result, error)
	}

	// MultisertConf 批量插入配置
	MultisertConf struct {
		Namespace      string   `yaml:"namespace"` // 库名
		Table          string   `yaml:"table"`
		Fields         []string `yaml:"fields"` // 决定列顺序和每行值的个数
		Strategy       Strategy `yaml:"strategy"`
		MaxBufferCount int      `yaml:"max_buffer_count"` // 小于等于 0 时取默认值 10000
	}

	// Multisert 缓冲待插入的行，达到阈值或显式刷写时合并为一条多行插入语句。
	// 非并发安全，多个 goroutine 共用时需由调用方串行化。
	Multisert struct {
		sink           Sink
		namespace      string
		table          string
		fields         []string
		strategy       Strategy
		maxBufferCount int
		entries        []Entry
	}
)

// NewMultisert 创建批量插入器，库名、表名、字段和执行者必须设置
func NewMultisert(sink Sink, c MultisertConf) (*Multisert, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if sink == nil {
		return nil, ErrSinkNotSet
	}

	maxBufferCount := c.MaxBufferCount
	if maxBufferCount <= 0 {
		maxBufferCount = defaultMaxBufferCount
	}

	return &Multisert{
		sink:           sink,
		namespace:      c.Namespace,
		table:          c.Table,
		fields:         append([]string(nil), c.Fields...),
		strategy:       c.Strategy,
		maxBufferCount: maxBufferCount,
	}, nil
}

// Validate 校验必填配置，插入策略在刷写时才校验
func (c MultisertConf) Validate() error {
	switch {
	case len(c.Namespace) == 0:
		return ErrNamespaceNotSet
	case len(c.Table) == 0:
		return ErrTableNotSet
	case len(c.Fields) == 0:
		return ErrFieldsNotSet
	default:
		return nil
	}
}

// Append 追加一行，缓冲行数达到阈值时立即同步刷写。
// 返回传入的行；值个数与字段个数不一致的行不会被缓冲。
// 调用方在该行被刷写前不应修改它。
func (m *Multisert) Append(entry Entry) (Entry, error) {
	if len(entry) != len(m.fields) {
		return entry, errors.Wrapf(ErrFieldsMismatch, "字段 %d 个，值 %d 个", len(m.fields), len(entry))
	}

	m.entries = append(m.entries, entry)
	if len(m.entries) >= m.maxBufferCount {
		if err := m.Flush(); err != nil {
			return entry, err
		}
	}

	return entry, nil
}

// AppendValues 将 Go 原生值转换为一行后追加
func (m *Multisert) AppendValues(args ...interface{}) (Entry, error) {
	entry, err := Values(args...)
	if err != nil {
		return nil, err
	}

	return m.Append(entry)
}

// Flush 将缓冲的所有行合并为一条语句执行，成功后清空缓冲。
// 缓冲为空时不执行任何语句；执行失败时错误原样返回，缓冲保持不变以便重试。
func (m *Multisert) Flush() error {
	if len(m.entries) == 0 {
		return nil
	}

	query, err := m.SQL()
	if err != nil {
		return err
	}

	target := m.target()
	startTime := time.Now()
	if _, err = m.sink.Exec(query); err != nil {
		flushTotal.WithLabelValues(target, failureValue).Inc()
		logx.Errorf("[MULTISERT] 写入 %s 失败，%d 行保留待重试: %v", target, len(m.entries), err)
		return err
	}
	duration := time.Since(startTime)

	rows := len(m.entries)
	m.entries = nil

	flushTotal.WithLabelValues(target, successValue).Inc()
	flushedRowsTotal.WithLabelValues(target).Add(float64(rows))
	flushSeconds.WithLabelValues(target).Observe(duration.Seconds())
	logx.WithDuration(duration).Infof("[MULTISERT] 写入 %s %s 行，语句 %s", target,
		humanize.Comma(int64(rows)), humanize.Bytes(uint64(len(query))))

	return nil
}

// Write 等同于 Flush
func (m *Multisert) Write() error {
	return m.Flush()
}

// WithBuffering 执行 fn 期间追加的行在 fn 正常返回后统一刷写一次；
// fn 返回错误时不刷写，已缓冲的行留给调用方处理
func (m *Multisert) WithBuffering(fn func(m *Multisert) error) error {
	if err := fn(m); err != nil {
		return err
	}

	return m.Flush()
}

// SQL 渲染当前缓冲对应的批量语句，不执行
func (m *Multisert) SQL() (string, error) {
	verb, err := m.strategy.Verb()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(verb)
	b.WriteByte(' ')
	b.WriteString(m.target())
	b.WriteString(" (")
	b.WriteString(strings.Join(m.fields, ","))
	b.WriteString(") VALUES ")
	for i, entry := range m.entries {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('(')
		for j, value := range entry {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(literalOf(value))
		}
		b.WriteByte(')')
	}

	return b.String(), nil
}

// Entries 返回当前缓冲行的副本
func (m *Multisert) Entries() []Entry {
	return append([]Entry(nil), m.entries...)
}

// Len 返回当前缓冲行数
func (m *Multisert) Len() int {
	return len(m.entries)
}

// MaxBufferCount 返回生效的最大缓冲行数
func (m *Multisert) MaxBufferCount() int {
	return m.maxBufferCount
}

// SetMaxBufferCount 修改最大缓冲行数，下次追加时生效；小于等于 0 时每次追加都会刷写
func (m *Multisert) SetMaxBufferCount(n int) {
	m.maxBufferCount = n
}

// Strategy 返回当前插入策略
func (m *Multisert) Strategy() Strategy {
	return m.strategy
}

// SetStrategy 修改插入策略，下次刷写时生效
func (m *Multisert) SetStrategy(strategy Strategy) {
	m.strategy = strategy
}

func (m *Multisert) target() string {
	return m.namespace + "." + m.table
}
