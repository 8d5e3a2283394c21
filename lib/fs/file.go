package fs

import (
	"os"
	"syscall"
)

// CloseOnExec 标记文件在 exec 子进程时自动关闭
func CloseOnExec(file *os.File) {
	if file != nil {
		syscall.CloseOnExec(int(file.Fd()))
	}
}
