//go:build unix

package symbols

import (
	"os"
	"syscall"
)

type stat struct {
	dev uint64
	ino uint64
}

func statFromFileInfo(fi os.FileInfo) stat {
	sysStat, ok := fi.Sys().(*syscall.Stat_t)
	if !ok || sysStat == nil {
		return stat{}
	}
	return stat{
		dev: uint64(sysStat.Dev),
		ino: sysStat.Ino,
	}
}
