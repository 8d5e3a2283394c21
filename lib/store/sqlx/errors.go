package sqlx

import "errors"

var (
	ErrSinkNotSet           = errors.New("未设置执行者")
	ErrNamespaceNotSet      = errors.New("未设置库名")
	ErrTableNotSet          = errors.New("未设置表名")
	ErrFieldsNotSet         = errors.New("未设置字段")
	ErrFieldsMismatch       = errors.New("值个数与字段个数不一致")
	ErrUnsupportedValueType = errors.New("不支持的值类型")
	ErrInvalidFloat         = errors.New("浮点数不能是 NaN 或无穷大")
	ErrNoRedisNode          = errors.New("至少需要一个 redis 节点")
)
