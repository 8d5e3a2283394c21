package sqlx

import (
	"math"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
	nullLiteral     = "NULL"
)

type (
	// Value 一个可写入批量语句的标量值，每种类型决定自己的 SQL 字面量形式
	Value interface {
		literal() string
	}

	// Entry 一行待写入的值，顺序与配置的字段顺序一致
	Entry []Value

	Int       int64
	Float     float64 // NaN 和 ±Inf 不是合法的 SQL 字面量，Values 会拒绝
	String    string // 原样加单引号，不做转义
	Date      time.Time
	Timestamp time.Time
	Raw       string // 原样输出，如 NOW()、DEFAULT

	null struct{}
)

// Null SQL 空值
var Null Value = null{}

// literalOf 返回值的字面量，nil 视为 NULL
func literalOf(v Value) string {
	if v == nil {
		return nullLiteral
	}
	return v.literal()
}

func (v Int) literal() string {
	return strconv.FormatInt(int64(v), 10)
}

func (v Float) literal() string {
	return strconv.FormatFloat(float64(v), 'f', -1, 64)
}

func (v String) literal() string {
	return "'" + string(v) + "'"
}

func (v Date) literal() string {
	return "'" + time.Time(v).Format(dateLayout) + "'"
}

func (v Timestamp) literal() string {
	return "'" + time.Time(v).Format(timestampLayout) + "'"
}

func (v Raw) literal() string {
	return string(v)
}

func (null) literal() string {
	return nullLiteral
}

// DateOf 返回指定日期
func DateOf(year int, month time.Month, day int) Date {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.Local))
}

// Values 将 Go 原生值转换为一行 Entry：
// 整数 -> Int，浮点 -> Float，字符串和 []byte -> String，bool -> 1/0，
// time.Time -> Timestamp，nil -> Null，Value 原样保留
func Values(args ...interface{}) (Entry, error) {
	entry := make(Entry, 0, len(args))
	for _, arg := range args {
		v, err := toValue(arg)
		if err != nil {
			return nil, err
		}
		entry = append(entry, v)
	}

	return entry, nil
}

func toValue(arg interface{}) (Value, error) {
	switch v := arg.(type) {
	case nil:
		return Null, nil
	case Value:
		return v, nil
	case int:
		return Int(v), nil
	case int8:
		return Int(v), nil
	case int16:
		return Int(v), nil
	case int32:
		return Int(v), nil
	case int64:
		return Int(v), nil
	case uint:
		return Raw(strconv.FormatUint(uint64(v), 10)), nil
	case uint8:
		return Int(v), nil
	case uint16:
		return Int(v), nil
	case uint32:
		return Int(v), nil
	case uint64:
		return Raw(strconv.FormatUint(v, 10)), nil
	case float32:
		if err := checkFloat(float64(v)); err != nil {
			return nil, err
		}
		// 按 32 位精度输出，避免 0.1 变成 0.10000000149011612
		return Raw(strconv.FormatFloat(float64(v), 'f', -1, 32)), nil
	case float64:
		if err := checkFloat(v); err != nil {
			return nil, err
		}
		return Float(v), nil
	case string:
		return String(v), nil
	case []byte:
		return String(v), nil
	case bool:
		if v {
			return Int(1), nil
		}
		return Int(0), nil
	case time.Time:
		return Timestamp(v), nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedValueType, "%T", arg)
	}
}

func checkFloat(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return errors.Wrapf(ErrInvalidFloat, "%v", f)
	}
	return nil
}
