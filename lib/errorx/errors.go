package errorx

import "bytes"

type (
	// Errors 收集多个错误，合并为一个错误返回
	Errors struct {
		errs errorArray
	}

	errorArray []error
)

// Append 添加一个非空错误
func (e *Errors) Append(err error) {
	if err != nil {
		e.errs = append(e.errs, err)
	}
}

// Err 没有错误时返回 nil，只有一个错误时原样返回
func (e *Errors) Err() error {
	switch len(e.errs) {
	case 0:
		return nil
	case 1:
		return e.errs[0]
	default:
		return e.errs
	}
}

// NotNil 是否收集到了错误
func (e *Errors) NotNil() bool {
	return len(e.errs) > 0
}

func (ea errorArray) Error() string {
	var buf bytes.Buffer

	for i := range ea {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(ea[i].Error())
	}

	return buf.String()
}
