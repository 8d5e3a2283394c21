package sqlx

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

const (
	DefaultStrategy Strategy = ""        // INSERT INTO
	ReplaceStrategy Strategy = "replace" // REPLACE INTO
	IgnoreStrategy  Strategy = "ignore"  // INSERT IGNORE

	defaultStrategyName = "default"
)

type (
	// Strategy 插入策略，决定遇到主键或唯一键冲突时的语句动词，不区分大小写
	Strategy string

	// StrategyError 无法识别的插入策略
	StrategyError struct {
		Strategy Strategy
	}
)

func (e *StrategyError) Error() string {
	return fmt.Sprintf("no operation for strategy `%s`", string(e.Strategy))
}

// Verb 返回策略对应的语句动词，每次刷写时求值
func (s Strategy) Verb() (string, error) {
	switch strings.ToLower(string(s)) {
	case string(DefaultStrategy), defaultStrategyName:
		return "INSERT INTO", nil
	case string(ReplaceStrategy):
		return "REPLACE INTO", nil
	case string(IgnoreStrategy):
		return "INSERT IGNORE", nil
	default:
		return "", errors.WithStack(&StrategyError{Strategy: s})
	}
}
